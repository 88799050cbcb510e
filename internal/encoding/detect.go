// Package encoding normalises uploaded text files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const sniffLen = 4096

// Charset names reported by ToUTF8.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
	ISO885915   = "ISO-8859-15"
)

var boms = []struct {
	prefix  []byte
	charset string
	dec     textenc.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8, nil},
	{[]byte{0xFF, 0xFE}, UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// ToUTF8 wraps r so that it yields UTF-8 and reports the charset it decoded
// from. A byte order mark wins; valid UTF-8 passes through untouched;
// anything else is guessed with chardet, defaulting to Windows-1252, which
// is what spreadsheet exports on Windows produce.
func ToUTF8(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing encoding: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		if b.dec == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, b.charset, nil
		}

		return b.dec.NewDecoder().Reader(br), b.charset, nil
	}

	if utf8.Valid(head) {
		return br, UTF8, nil
	}

	charset, dec := guess(head)
	if dec == nil {
		return br, charset, nil
	}

	return dec.NewDecoder().Reader(br), charset, nil
}

func guess(head []byte) (string, textenc.Encoding) {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return Windows1252, charmap.Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8, nil
	case "ISO-8859-9":
		return ISO88599, charmap.ISO8859_9
	case "ISO-8859-15":
		return ISO885915, charmap.ISO8859_15
	default:
		return Windows1252, charmap.Windows1252
	}
}
