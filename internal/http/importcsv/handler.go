package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importDirectory)
}

type issueResponse struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type reportResponse struct {
	Charset string          `json:"charset"`
	Created []string        `json:"created"`
	Linked  int             `json:"linked"`
	Skipped []issueResponse `json:"skipped"`
	Failed  []issueResponse `json:"failed"`
}

// importDirectory creates companies from an uploaded CSV in the "file" form field.
func (h *Handler) importDirectory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Fail(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}

		render.BadRequest(w, r, "failed to parse form: "+err.Error())

		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		// Rows before the failure are already committed, so report them.
		if report != nil {
			render.ErrorWith(w, r, err, render.Envelope{"import": toReportResponse(report)})
			return
		}

		render.Error(w, r, err)

		return
	}

	status := http.StatusOK
	if len(report.Created) > 0 {
		status = http.StatusCreated
	}

	render.JSON(w, status, render.Envelope{"import": toReportResponse(report)})
}

func toReportResponse(report *importer.Report) reportResponse {
	return reportResponse{
		Charset: report.Charset,
		Created: report.Created,
		Linked:  report.Linked,
		Skipped: toIssues(report.Skipped),
		Failed:  toIssues(report.Failed),
	}
}

func toIssues(issues []importer.Issue) []issueResponse {
	resp := make([]issueResponse, 0, len(issues))
	for _, issue := range issues {
		resp = append(resp, issueResponse{Line: issue.Line, Name: issue.Name, Reason: issue.Reason})
	}

	return resp
}
