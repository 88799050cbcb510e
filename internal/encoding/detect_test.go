package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/encoding"
)

func TestToUTF8(t *testing.T) {
	const want = "name,description\nCrème Brûlée & Co.,Desserts\n"

	tests := []struct {
		name        string
		input       []byte
		wantCharset string
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte(want),
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, want...),
			wantCharset: encoding.UTF8,
		},
		{
			name: "UTF16LE",
			input: func() []byte {
				b := []byte{0xFF, 0xFE}
				for _, r := range want {
					b = append(b, byte(r), byte(r>>8))
				}
				return b
			}(),
			wantCharset: encoding.UTF16LE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.ToUTF8(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, want, string(got))
			assert.Equal(t, tt.wantCharset, charset)
		})
	}
}

func TestToUTF8_Latin1(t *testing.T) {
	// "Crème Brûlée" in Windows-1252: è = 0xE8, û = 0xFB, é = 0xE9.
	input := []byte{
		'C', 'r', 0xE8, 'm', 'e', ' ', 'B', 'r', 0xFB, 'l', 0xE9, 'e', ',', 'x', '\n',
	}

	r, charset, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Crème Brûlée,x\n", string(got))
	assert.NotEqual(t, encoding.UTF8, charset)
}

func TestToUTF8_Empty(t *testing.T) {
	r, charset, err := encoding.ToUTF8(bytes.NewReader(nil))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}
