package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-fixtures/external/scraper"
	"github.com/riskibarqy/club-fixtures/internal/config"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-fixtures/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-fixtures/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-fixtures/internal/interfaces/httpapi"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
	"github.com/riskibarqy/club-fixtures/internal/usecase"
)

// Container holds the services shared by the API server and the CLI.
type Container struct {
	Club     fixture.ClubProfile
	Fixtures *usecase.FixtureService
	Import   *usecase.ImportService
	// Scrape is nil unless SCRAPER_ENABLED=true.
	Scrape *usecase.ScrapeService

	db *sqlx.DB
}

func NewContainer(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	club := fixture.ClubProfile{
		Name:      cfg.ClubName,
		HomeVenue: cfg.ClubHomeVenue,
		AwayVenue: cfg.ClubAwayVenue,
	}.WithDefaults()

	repo, db, err := newFixtureRepository(cfg, club)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		repo = cache.NewFixtureRepository(repo, cfg.CacheTTL)
	}

	validator := fixture.NewValidator(fixture.NewReconciler(club))

	importSvc := usecase.NewImportService(repo, validator, nil, usecase.ImportConfig{
		ChunkSize: cfg.ImportChunkSize,
		Workers:   cfg.ImportWorkers,
	}, logger.Named("import"))

	c := &Container{
		Club:     club,
		Fixtures: usecase.NewFixtureService(repo, club),
		Import:   importSvc,
		db:       db,
	}

	if cfg.ScraperEnabled {
		client := scraper.NewClient(scraper.ClientConfig{
			BaseURL:           cfg.ScraperBaseURL,
			Token:             cfg.ScraperToken,
			Timeout:           cfg.ScraperTimeout,
			MaxRetries:        cfg.ScraperMaxRetries,
			RequestsPerMinute: cfg.ScraperRequestsPerMinute,
			CircuitBreaker:    cfg.ScraperCircuit,
			Logger:            logger.Named("scraper"),
		})
		c.Scrape = usecase.NewScrapeService(client, importSvc, cfg.ScraperConcurrency, logger.Named("scrape"))
	}

	logger.Info("fixture services ready",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"scraper_enabled", cfg.ScraperEnabled,
		"club", club.Name,
	)
	return c, nil
}

func newFixtureRepository(cfg config.Config, club fixture.ClubProfile) (fixture.Repository, *sqlx.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		var seed []fixture.StoredFixture
		if cfg.SeedDemo {
			seed = memory.SeedFixtures(club, time.Now())
		}
		return memory.NewFixtureRepository(seed), nil, nil
	case config.StorageDriverPostgres:
		db, err := openDB(cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewFixtureRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Close releases the database pool, if any.
func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Fixtures, c.Import, c.Scrape, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AdminToken:         cfg.AdminToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
