package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
	"github.com/riskibarqy/club-fixtures/internal/usecase"
)

const maxUploadBytes = 10 << 20

var errRequestTooLarge = errors.New("request body too large")

type Handler struct {
	fixtureService *usecase.FixtureService
	importService  *usecase.ImportService
	scrapeService  *usecase.ScrapeService
	logger         *logging.Logger
	validator      *validator.Validate
}

// NewHandler wires the fixture services. scrapeService may be nil when
// scraping is disabled.
func NewHandler(
	fixtureService *usecase.FixtureService,
	importService *usecase.ImportService,
	scrapeService *usecase.ScrapeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		fixtureService: fixtureService,
		importService:  importService,
		scrapeService:  scrapeService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
