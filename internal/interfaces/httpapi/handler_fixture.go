package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
)

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
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
		h.logger.WarnContext(ctx, "list fixtures failed", "status", query.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	club := h.fixtureService.Club()
	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(club, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	item, err := h.fixtureService.Get(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(h.fixtureService.Club(), item))
}

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	query := leagueTableQuery{
		Season:      strings.TrimSpace(r.URL.Query().Get("season")),
		Competition: strings.TrimSpace(r.URL.Query().Get("competition")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.fixtureService.LeagueTable(ctx, query.Season, query.Competition)
	if err != nil {
		h.logger.WarnContext(ctx, "build league table failed", "competition", query.Competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, table)
}
