// Command fixturectl validates, imports, exports and scrapes club fixtures
// against the configured storage.
//
// Usage:
//
//	fixturectl validate fixtures.json
//	fixturectl import fixtures.json --source file
//	fixturectl export --season 2025/26 --out fixtures.json
//	fixturectl scrape https://club.example.com/fixtures --dry-run
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/club-fixtures/internal/app"
	"github.com/riskibarqy/club-fixtures/internal/config"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(openContainer)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// openContainer builds the services from the environment. Logs go to stderr
// so stdout stays machine-readable.
func openContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Output:  os.Stderr,
		Console: true,
		Service: "fixturectl",
		Env:     cfg.AppEnv,
	})
	logging.SetDefault(logger)

	return app.NewContainer(cfg, logger)
}
