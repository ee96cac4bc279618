package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/usecase"
)

func (h *Handler) ValidateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateFixtures")
	defer span.End()

	payload, _, err := readFixturePayload(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.importService.Preview(ctx, payload))
}

func (h *Handler) ImportFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportFixtures")
	defer span.End()

	payload, fromFile, err := readFixturePayload(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := importQuery{
		Source:   strings.ToLower(strings.TrimSpace(r.URL.Query().Get("source"))),
		SourceID: strings.TrimSpace(r.URL.Query().Get("source_id")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	if query.Source == "" {
		query.Source = fixture.ImportSourceManual
		if fromFile {
			query.Source = fixture.ImportSourceFile
		}
	}
	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))

	report, err := h.importService.ImportJSON(ctx, payload, usecase.ImportOptions{
		ImportSource: query.Source,
		SourceID:     query.SourceID,
		DryRun:       dryRun,
	})
	h.writeImportResult(ctx, w, report, err)
}

func (h *Handler) ScrapeFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScrapeFixtures")
	defer span.End()

	if h.scrapeService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scraping is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	var req scrapeRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON body", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scrapeService.Scrape(ctx, usecase.ScrapeInput{
		Sources:  req.Sources,
		SourceID: req.SourceID,
		DryRun:   req.DryRun,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrImportRejected) {
			writeRejectedReport(ctx, w, result.Report)
			return
		}
		h.logger.WarnContext(ctx, "scrape fixtures failed", "sources", len(req.Sources), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ExportFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportFixtures")
	defer span.End()

	query := listFixturesQuery{
		Season:      strings.TrimSpace(r.URL.Query().Get("season")),
		Competition: strings.TrimSpace(r.URL.Query().Get("competition")),
		Status:      strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	payload, err := h.fixtureService.Export(ctx, fixture.Filter{
		Season:      query.Season,
		Competition: query.Competition,
		Status:      query.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "export fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	filename := "fixtures-" + time.Now().UTC().Format("20060102") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) ListAdminFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdminFixtures")
	defer span.End()

	query := listFixturesQuery{
		Season:      strings.TrimSpace(r.URL.Query().Get("season")),
		Competition: strings.TrimSpace(r.URL.Query().Get("competition")),
		Status:      strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.fixtureService.List(ctx, fixture.Filter{
		Season:      query.Season,
		Competition: query.Competition,
		Status:      query.Status,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	club := h.fixtureService.Club()
	out := make([]adminFixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, adminFixtureToDTO(club, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFixture")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	if err := h.fixtureService.Delete(ctx, fixtureID); err != nil {
		h.logger.WarnContext(ctx, "delete fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fixture deleted", "fixture_id", fixtureID, "client_ip", resolveClientIP(r))
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": fixtureID, "status": "deleted"})
}

func (h *Handler) writeImportResult(ctx context.Context, w http.ResponseWriter, report fixture.ValidationReport, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrImportRejected) {
			writeRejectedReport(ctx, w, report)
			return
		}
		h.logger.ErrorContext(ctx, "import fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, report)
}

// readFixturePayload returns the raw JSON from either a multipart "file"
// field or the request body.
func readFixturePayload(w http.ResponseWriter, r *http.Request) ([]byte, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, true, payloadReadError(err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, true, fmt.Errorf("%w: multipart field \"file\" is required", usecase.ErrInvalidInput)
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			return nil, true, payloadReadError(err)
		}
		return payload, true, nil
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false, payloadReadError(err)
	}
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil, false, fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
	}
	return payload, false, nil
}

func payloadReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", errRequestTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
}
