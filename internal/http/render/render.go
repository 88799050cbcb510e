package render

import (
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
)

// Envelope wraps a result under a named key, e.g. {"invoice": {...}}.
type Envelope map[string]any

// Deleted is the body returned by successful deletes.
var Deleted = Envelope{"status": "deleted"}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error translates err into its HTTP status once and writes it as JSON.
// Details of server-side failures are logged, not returned.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ErrorWith(w, r, err, nil)
}

// ErrorWith writes the error envelope next to the keys of extra, e.g. the
// partial result of an operation that stopped half way.
func ErrorWith(w http.ResponseWriter, r *http.Request, err error, extra Envelope) {
	status := apperrors.StatusCode(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)

		message = apperrors.ErrStoreFailure.Error()
	}

	if len(extra) == 0 {
		Fail(w, status, message)
		return
	}

	body := Envelope{}
	maps.Copy(body, extra)
	body["error"] = errorDetail{Message: message, Status: status}

	JSON(w, status, body)
}

// Fail writes the error envelope with an explicit status.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: errorDetail{Message: message, Status: status}})
}

// BadRequest reports a client error that has no taxonomy error behind it.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, apperrors.New(apperrors.ErrInvalidRequest, message))
}
