package invoice

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createInvoiceRequest struct {
	CompanyCode string           `json:"comp_code" validate:"required"`
	Amount      *decimal.Decimal `json:"amt" validate:"required"`
}

// updateInvoiceRequest carries only what a client may change. The id,
// company, creation date and paid date are rejected by the decoder.
type updateInvoiceRequest struct {
	Amount *decimal.Decimal `json:"amt" validate:"required"`
	Paid   *bool            `json:"paid" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("paid"); s != "" {
		paid, err := strconv.ParseBool(s)
		if err != nil {
			render.BadRequest(w, r, "paid must be true or false")
			return
		}

		filter.Paid = new(paid)
	}

	filter.CompanyCode = r.URL.Query().Get("comp_code")

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Envelope{"invoices": toResponseList(invoices)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Envelope{"invoice": toResponse(inv)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		CompanyCode: req.CompanyCode,
		Amount:      *req.Amount,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, render.Envelope{"invoice": toResponse(inv)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Update(r.Context(), id, invoice.PaymentRequest{
		Amount: *req.Amount,
		Paid:   *req.Paid,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Envelope{"invoice": toResponse(inv)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Deleted)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.BadRequest(w, r, "invalid invoice id")
		return uuid.Nil, false
	}

	return id, true
}
