package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "club-fixtures"
)

// googleResponseEnvelope follows the Google JSON style guide: data on
// success, error on failure. A rejected import carries both.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalErrorMapping = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

// errorMappings is checked in order; the first sentinel matched wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{usecase.ErrImportRejected, mappedError{http.StatusUnprocessableEntity, "importRejected", "FAILED_PRECONDITION"}},
	{errRequestTooLarge, mappedError{http.StatusRequestEntityTooLarge, "requestTooLarge", "INVALID_ARGUMENT"}},
}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalErrorMapping
}

func newErrorBody(mapped mappedError, message string, items ...googleErrorItem) *googleErrorBody {
	if len(items) == 0 {
		items = []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	}
	return &googleErrorBody{
		Code:    mapped.HTTPStatus,
		Message: message,
		Status:  mapped.Status,
		Errors:  items,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload googleResponseEnvelope) {
	payload.APIVersion = googleAPIVersion
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	_, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(w, status, googleResponseEnvelope{Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	_, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{Error: newErrorBody(mapped, err.Error())})
}

// writeRejectedReport answers a batch with no valid records. The report
// travels in data so clients can show every per-record error.
func writeRejectedReport(ctx context.Context, w http.ResponseWriter, report fixture.ValidationReport) {
	_, span := startSpan(ctx, "httpapi.writeRejectedReport")
	defer span.End()

	mapped := mapError(usecase.ErrImportRejected)
	items := make([]googleErrorItem, 0, len(report.Errors))
	for _, e := range report.Errors {
		items = append(items, googleErrorItem{Domain: errorDomain, Reason: "invalidFixture", Message: e.Error()})
	}
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		Data:  report,
		Error: newErrorBody(mapped, report.Message, items...),
	})
}

// writeInternalError hides the cause from the client.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	_, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(w, internalErrorMapping.HTTPStatus, googleResponseEnvelope{
		Error: newErrorBody(internalErrorMapping, "internal server error"),
	})
}
