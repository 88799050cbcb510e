package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/biztime/internal/export"
	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/invoices", h.invoicesCSV)
	r.Get("/statement", h.statement)
}

type companyTotalsResponse struct {
	CompanyCode string      `json:"comp_code"`
	Count       int         `json:"count"`
	Billed      json.Number `json:"billed"`
	Outstanding json.Number `json:"outstanding"`
}

type statementResponse struct {
	Count       int                     `json:"count"`
	Billed      json.Number             `json:"billed"`
	Paid        json.Number             `json:"paid"`
	Outstanding json.Number             `json:"outstanding"`
	Companies   []companyTotalsResponse `json:"companies"`
	Text        string                  `json:"text"`
}

func parseFilter(r *http.Request) (invoice.ListFilter, error) {
	filter := invoice.ListFilter{CompanyCode: r.URL.Query().Get("comp_code")}

	if s := r.URL.Query().Get("paid"); s != "" {
		paid, err := strconv.ParseBool(s)
		if err != nil {
			return filter, errors.New("paid must be true or false")
		}

		filter.Paid = new(paid)
	}

	return filter, nil
}

func (h *Handler) invoicesCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	// Buffered so a failure can still be reported as a JSON error.
	var buf bytes.Buffer

	n, err := h.svc.WriteCSV(r.Context(), &buf, filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	filename := fmt.Sprintf("invoices_%s.csv", time.Now().Format("20060102"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Invoice-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	st, err := h.svc.Statement(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	companies := make([]companyTotalsResponse, 0, len(st.Companies))
	for _, ct := range st.Companies {
		companies = append(companies, companyTotalsResponse{
			CompanyCode: ct.CompanyCode,
			Count:       ct.Count,
			Billed:      json.Number(ct.Billed.StringFixed(2)),
			Outstanding: json.Number(ct.Outstanding.StringFixed(2)),
		})
	}

	render.JSON(w, http.StatusOK, render.Envelope{"statement": statementResponse{
		Count:       st.Count,
		Billed:      json.Number(st.Billed.StringFixed(2)),
		Paid:        json.Number(st.Paid.StringFixed(2)),
		Outstanding: json.Number(st.Outstanding.StringFixed(2)),
		Companies:   companies,
		Text:        st.Text(),
	}})
}
