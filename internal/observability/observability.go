// Package observability starts the optional tracing, profiling and pprof
// sidecars for the API process.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/config"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
)

// Runtime holds whatever Start brought up. Close stops it in reverse order.
type Runtime struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprof           *http.Server
}

// Start brings up Uptrace, Pyroscope and pprof as configured. On error
// anything already started is stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	shutdownTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	rt.shutdownTracing = shutdownTracing

	if rt.stopProfiler, err = InitPyroscope(cfg, logger); err != nil {
		_ = rt.Close(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	if rt.pprof, err = StartPprofServer(cfg, logger); err != nil {
		_ = rt.Close(context.Background())
		return nil, fmt.Errorf("start pprof: %w", err)
	}
	return rt, nil
}

func (rt *Runtime) Close(ctx context.Context) error {
	if rt == nil {
		return nil
	}

	var errs []error
	if rt.pprof != nil {
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		errs = append(errs, StopPprofServer(rt.pprof, rt.logger, timeout))
	}
	if rt.stopProfiler != nil {
		errs = append(errs, rt.stopProfiler())
	}
	if rt.shutdownTracing != nil {
		errs = append(errs, rt.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}
