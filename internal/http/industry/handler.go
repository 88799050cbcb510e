package industry

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
)

type Handler struct {
	svc *industry.Service
}

func NewHandler(svc *industry.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/company", h.associate)
}

type createIndustryRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	Industry string `json:"industry" validate:"required,max=255"`
}

type associateRequest struct {
	IndustryCode string `json:"industry_code" validate:"required"`
	CompanyCode  string `json:"company_code" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	industries, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Envelope{"industries": toResponseList(industries)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createIndustryRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	ind, err := h.svc.Create(r.Context(), industry.CreateParams{
		Code:     req.Code,
		Industry: req.Industry,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, render.Envelope{"industry": toResponse(ind)})
}

func (h *Handler) associate(w http.ResponseWriter, r *http.Request) {
	var req associateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	link, err := h.svc.Associate(r.Context(), industry.Link{
		IndustryCode: req.IndustryCode,
		CompanyCode:  req.CompanyCode,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, render.Envelope{"association": associationResponse{
		IndustryCode: link.IndustryCode,
		CompanyCode:  link.CompanyCode,
	}})
}
