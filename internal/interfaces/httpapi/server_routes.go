package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
	mux.HandleFunc("GET /v1/league-table", handler.GetLeagueTable)
}

func registerAdminFixtureRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("GET /v1/admin/fixtures", admin(handler.ListAdminFixtures))
	mux.Handle("POST /v1/admin/fixtures/validate", admin(handler.ValidateFixtures))
	mux.Handle("POST /v1/admin/fixtures/import", admin(handler.ImportFixtures))
	mux.Handle("POST /v1/admin/fixtures/scrape", admin(handler.ScrapeFixtures))
	mux.Handle("GET /v1/admin/fixtures/export", admin(handler.ExportFixtures))
	mux.Handle("DELETE /v1/admin/fixtures/{fixtureID}", admin(handler.DeleteFixture))
}
