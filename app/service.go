// Package app wires configuration, storage, metrics and the session manager
// into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/dispatch-trainer/api/rounds"
	"github.com/kilianp07/dispatch-trainer/config"
	"github.com/kilianp07/dispatch-trainer/core/gamelog"
	coremetrics "github.com/kilianp07/dispatch-trainer/core/metrics"
	"github.com/kilianp07/dispatch-trainer/core/model"
	"github.com/kilianp07/dispatch-trainer/core/session"
	"github.com/kilianp07/dispatch-trainer/infra/logger"
	inframetrics "github.com/kilianp07/dispatch-trainer/infra/metrics"
	"github.com/kilianp07/dispatch-trainer/internal/eventbus"
	"github.com/kilianp07/dispatch-trainer/metrics"
)

// Service orchestrates the session manager, log store and API server.
type Service struct {
	Sessions *session.Manager

	catalog     map[string]*model.Scenario
	store       gamelog.Store
	bus         eventbus.EventBus
	sink        coremetrics.MetricsSink
	log         logger.Logger
	addr        string
	apiToken    string
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, err := cfg.GameLog.NewStore()
	if err != nil {
		return nil, fmt.Errorf("gamelog store: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := inframetrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := inframetrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = inframetrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	mgr, err := session.NewManager(cfg.Scoring, store, bus, sink, logger.New("sessions"))
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}

	catalog, err := loadScenarioDir(cfg.Rounds, logg)
	if err != nil {
		return nil, fmt.Errorf("scenario catalog: %w", err)
	}
	logg.Infof("loaded %d scenarios from %s", len(catalog), cfg.Rounds.ScenarioDir)

	return &Service{
		Sessions:    mgr,
		catalog:     catalog,
		store:       store,
		bus:         bus,
		sink:        sink,
		log:         logg,
		addr:        cfg.Server.Addr,
		apiToken:    cfg.Server.APIToken,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run starts the API server and metrics collector and blocks until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	inframetrics.StartEventCollector(ctx, s.bus, s.sink)

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/rounds/logs", rounds.NewLogHandler(s.store, s.apiToken))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
	}()
	s.log.Infof("api server listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return s.store.Close()
}
