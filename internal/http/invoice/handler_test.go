package invoice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	handler "github.com/MrJamesThe3rd/biztime/internal/http/invoice"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

var (
	invoiceID = uuid.MustParse("0b6d8a3e-4f1c-4a8e-9a59-3c2f3b7c1d10")
	addDate   = time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
)

type mocks struct {
	repo *invoice.MockRepository
	utx  *invoice.MockUpdateTx
}

func newServer(t *testing.T, setupMock func(m mocks), opts ...invoice.Option) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo: invoice.NewMockRepository(ctrl),
		utx:  invoice.NewMockUpdateTx(ctrl),
	}

	if setupMock != nil {
		setupMock(m)
	}

	router := chi.NewRouter()
	router.Route("/invoices", handler.NewHandler(invoice.NewService(m.repo, opts...)).Routes)

	return router
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())

	return rec.Code, decoded
}

func TestHandler_List(t *testing.T) {
	t.Run("PaidFilter", func(t *testing.T) {
		srv := newServer(t, func(m mocks) {
			m.repo.EXPECT().
				ListInvoices(gomock.Any(), invoice.ListFilter{Paid: new(false)}).
				Return([]*invoice.Invoice{
					{ID: invoiceID, CompanyCode: "apple", Amount: decimal.RequireFromString("100.50"), AddDate: addDate},
				}, nil)
		})

		status, body := do(t, srv, http.MethodGet, "/invoices?paid=false", "")

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []any{map[string]any{
			"id":        invoiceID.String(),
			"comp_code": "apple",
			"amt":       100.5,
			"paid":      false,
			"add_date":  "2024-04-01T09:30:00Z",
			"paid_date": nil,
		}}, body["invoices"])
	})

	t.Run("BadFilter", func(t *testing.T) {
		srv := newServer(t, nil)

		status, _ := do(t, srv, http.MethodGet, "/invoices?paid=maybe", "")

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestHandler_Get(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		srv := newServer(t, nil)

		status, body := do(t, srv, http.MethodGet, "/invoices/42", "")

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid invoice id", body["error"].(map[string]any)["message"])
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := newServer(t, func(m mocks) {
			m.repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(nil, invoice.ErrNotFound)
		})

		status, _ := do(t, srv, http.MethodGet, "/invoices/"+invoiceID.String(), "")

		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
	}{
		{
			name: "Success",
			body: `{"comp_code":"apple","amt":200}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().CompanyExists(gomock.Any(), "apple").Return(true, nil)
				m.repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = invoiceID
						inv.AddDate = addDate
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingAmount",
			body:       `{"comp_code":"apple"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeAmount",
			body:       `{"comp_code":"apple","amt":-3}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "SubCentAmount",
			body:       `{"comp_code":"apple","amt":0.001}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ThreeDecimalPlaces",
			body:       `{"comp_code":"apple","amt":100.005}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "AmountOverflowsColumn",
			body:       `{"comp_code":"apple","amt":123456789012.5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "PaidIsNotAccepted",
			body:       `{"comp_code":"apple","amt":10,"paid":true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "UnknownCompany",
			body: `{"comp_code":"ghost","amt":10}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().CompanyExists(gomock.Any(), "ghost").Return(false, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.setupMock)

			status, body := do(t, srv, http.MethodPost, "/invoices", tt.body)

			assert.Equal(t, tt.wantStatus, status)

			if tt.wantStatus == http.StatusCreated {
				got := body["invoice"].(map[string]any)
				assert.Equal(t, invoiceID.String(), got["id"])
				assert.Equal(t, float64(200), got["amt"])
				assert.Equal(t, false, got["paid"])
				assert.Nil(t, got["paid_date"])
			}
		})
	}
}

func TestHandler_Update_ImmutableFields(t *testing.T) {
	for _, field := range []string{"id", "comp_code", "add_date", "paid_date"} {
		t.Run(field, func(t *testing.T) {
			srv := newServer(t, nil)

			body := `{"amt":100,"paid":true,"` + field + `":"x"}`
			status, resp := do(t, srv, http.MethodPatch, "/invoices/"+invoiceID.String(), body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, resp["error"].(map[string]any)["message"], field)
		})
	}
}

func TestHandler_Update_MissingPaid(t *testing.T) {
	srv := newServer(t, nil)

	status, resp := do(t, srv, http.MethodPatch, "/invoices/"+invoiceID.String(), `{"amt":100}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "paid is required", resp["error"].(map[string]any)["message"])
}

func TestHandler_Update_RejectsUnstorableAmount(t *testing.T) {
	tests := []struct {
		amt     string
		message string
	}{
		{amt: "0.001", message: "amount must have at most 2 decimal places"},
		{amt: "100.005", message: "amount must have at most 2 decimal places"},
		{amt: "10000000000", message: "amount must be less than 10000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.amt, func(t *testing.T) {
			srv := newServer(t, nil)

			status, resp := do(t, srv, http.MethodPatch, "/invoices/"+invoiceID.String(), `{"amt":`+tt.amt+`,"paid":true}`)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, resp["error"].(map[string]any)["message"])
		})
	}
}

// The response carries the amount the store read back, not the request echo.
func TestHandler_Create_ReturnsStoredAmount(t *testing.T) {
	srv := newServer(t, func(m mocks) {
		m.repo.EXPECT().CompanyExists(gomock.Any(), "apple").Return(true, nil)
		m.repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
				inv.ID = invoiceID
				inv.Amount = decimal.RequireFromString("100.50")
				inv.AddDate = addDate
				return nil
			})
	})

	status, body := do(t, srv, http.MethodPost, "/invoices", `{"comp_code":"apple","amt":100.500}`)

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 100.5, body["invoice"].(map[string]any)["amt"])
}

func TestHandler_Update_NotFound(t *testing.T) {
	srv := newServer(t, func(m mocks) {
		m.repo.EXPECT().BeginUpdate(gomock.Any()).Return(m.utx, nil)
		m.utx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(nil, invoice.ErrNotFound)
		m.utx.EXPECT().Rollback().Return(nil)
	})

	status, _ := do(t, srv, http.MethodPatch, "/invoices/"+invoiceID.String(), `{"amt":100,"paid":true}`)

	assert.Equal(t, http.StatusNotFound, status)
}

// Pay, repay with a corrected amount, unpay, then pay again.
func TestHandler_Update_PaymentLifecycle(t *testing.T) {
	stored := &invoice.Invoice{
		ID:          invoiceID,
		CompanyCode: "apple",
		Amount:      decimal.NewFromInt(200),
		AddDate:     addDate,
	}

	clock := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tick := invoice.WithClock(func() time.Time {
		clock = clock.Add(24 * time.Hour)
		return clock
	})

	srv := newServer(t, func(m mocks) {
		m.repo.EXPECT().BeginUpdate(gomock.Any()).Return(m.utx, nil).AnyTimes()
		m.utx.EXPECT().
			LockInvoice(gomock.Any(), invoiceID).
			DoAndReturn(func(context.Context, uuid.UUID) (*invoice.Invoice, error) {
				cp := *stored
				return &cp, nil
			}).
			AnyTimes()
		m.utx.EXPECT().
			SavePayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
				*stored = *inv
				return nil
			}).
			AnyTimes()
		m.utx.EXPECT().Commit().Return(nil).AnyTimes()
		m.utx.EXPECT().Rollback().Return(nil).AnyTimes()
	}, tick)

	patch := func(body string) map[string]any {
		status, resp := do(t, srv, http.MethodPatch, "/invoices/"+invoiceID.String(), body)
		require.Equal(t, http.StatusOK, status, resp)

		return resp["invoice"].(map[string]any)
	}

	paid := patch(`{"amt":200,"paid":true}`)
	assert.Equal(t, "2024-05-02T08:00:00Z", paid["paid_date"])

	repaid := patch(`{"amt":250,"paid":true}`)
	assert.Equal(t, paid["paid_date"], repaid["paid_date"])
	assert.Equal(t, float64(250), repaid["amt"])

	unpaid := patch(`{"amt":250,"paid":false}`)
	assert.Equal(t, false, unpaid["paid"])
	assert.Nil(t, unpaid["paid_date"])

	again := patch(`{"amt":250,"paid":true}`)
	assert.Equal(t, "2024-05-05T08:00:00Z", again["paid_date"])
}

func TestHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := newServer(t, func(m mocks) {
			m.repo.EXPECT().DeleteInvoice(gomock.Any(), invoiceID).Return(nil)
		})

		status, body := do(t, srv, http.MethodDelete, "/invoices/"+invoiceID.String(), "")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"status": "deleted"}, body)
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := newServer(t, func(m mocks) {
			m.repo.EXPECT().DeleteInvoice(gomock.Any(), invoiceID).Return(invoice.ErrNotFound)
		})

		status, body := do(t, srv, http.MethodDelete, "/invoices/"+invoiceID.String(), "")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, float64(404), body["error"].(map[string]any)["status"])
	})
}
