package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kilianp07/tutorgrid/api/runs"
	"github.com/kilianp07/tutorgrid/api/tutors"
	"github.com/kilianp07/tutorgrid/auth"
	"github.com/kilianp07/tutorgrid/config"
	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/assign/logging"
	coremetrics "github.com/kilianp07/tutorgrid/core/metrics"
	"github.com/kilianp07/tutorgrid/core/model"
	"github.com/kilianp07/tutorgrid/core/monitoring"
	coremqtt "github.com/kilianp07/tutorgrid/core/mqtt"
	"github.com/kilianp07/tutorgrid/core/registry"
	"github.com/kilianp07/tutorgrid/infra/logger"
	"github.com/kilianp07/tutorgrid/infra/metrics"
	inframonitoring "github.com/kilianp07/tutorgrid/infra/monitoring"
	"github.com/kilianp07/tutorgrid/infra/mqtt"
	"github.com/kilianp07/tutorgrid/infra/objectstore"
	"github.com/kilianp07/tutorgrid/internal/eventbus"
	"github.com/kilianp07/tutorgrid/pkg/export"
)

// Uploader stores an encoded schedule and returns its object key.
type Uploader interface {
	Put(ctx context.Context, runID, ext, contentType string, body []byte) (string, error)
}

// Option customises a Service before its collaborators are created.
type Option func(*Service)

// WithPublisher replaces the MQTT roster publisher.
func WithPublisher(p coremqtt.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithUploader replaces the S3 uploader.
func WithUploader(u Uploader) Option {
	return func(s *Service) { s.uploader = u }
}

// Service wires the assignment manager to its stores, sinks and exporters.
type Service struct {
	Manager *assign.Manager

	cfg       *config.Config
	assigner  *assign.GreedyAssigner
	bus       eventbus.EventBus
	store     logging.Store
	sink      coremetrics.MetricsSink
	publisher coremqtt.Publisher
	uploader  Uploader
	log       logger.Logger
	closers   []func()
}

// New creates a Service from the configuration. ctx bounds the event
// collector and the creation of remote clients.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	logger.Configure(cfg.Logging.Level, cfg.Logging.Console)
	s := &Service{cfg: cfg, log: logger.New("service")}
	for _, opt := range opts {
		opt(s)
	}

	mon, err := inframonitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)

	a, err := assign.NewGreedyAssigner(cfg.Engine)
	if err != nil {
		return nil, err
	}
	s.assigner = a

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	s.sink = sink

	store, err := cfg.RunLog.Open()
	if err != nil {
		return nil, fmt.Errorf("run log: %w", err)
	}
	s.store = store

	if s.publisher == nil && cfg.MQTT.Broker != "" {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			s.closeStore()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.publisher = client
		s.closers = append(s.closers, client.Disconnect)
	}
	if s.uploader == nil && cfg.Export.S3.Enabled() {
		up, err := objectstore.New(ctx, cfg.Export.S3)
		if err != nil {
			s.closeStore()
			return nil, fmt.Errorf("object store: %w", err)
		}
		s.uploader = up
	}

	s.bus = eventbus.New()
	metrics.StartEventCollector(ctx, s.bus, sink)

	manager, err := assign.NewManager(a, logger.New("assign_manager"), sink, s.bus)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("assign manager: %w", err)
	}
	if store != nil {
		manager.SetRunStore(store)
	}
	if s.publisher != nil {
		manager.SetPublisher(s.publisher)
	}
	s.Manager = manager
	return s, nil
}

func (s *Service) closeStore() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// Store returns the configured run log, nil when disabled.
func (s *Service) Store() logging.Store { return s.store }

// Periods returns the engine period vocabulary.
func (s *Service) Periods() model.PeriodSet { return s.assigner.Periods() }

// Days returns the configured day vocabulary, empty for free-form days.
func (s *Service) Days() []string { return s.assigner.Days() }

// LoadRegistry reads the configured party document, fetching it over HTTP
// when a URL is set.
func (s *Service) LoadRegistry(ctx context.Context) (model.Registry, error) {
	rc := s.cfg.Registry
	if rc.URL == "" {
		if rc.Path == "" {
			return model.Registry{}, fmt.Errorf("no party document configured")
		}
		return registry.Load(rc.Path)
	}
	client := http.DefaultClient
	if rc.Auth.Enabled() {
		client = auth.NewClientCred(rc.Auth).HTTPClient(ctx)
	}
	return registry.Fetch(ctx, client, rc.URL)
}

// AssignFile loads the party file at path and assigns it.
func (s *Service) AssignFile(ctx context.Context, path string) (assign.RunResult, error) {
	reg, err := registry.Load(path)
	if err != nil {
		return assign.RunResult{}, err
	}
	return s.Assign(ctx, reg)
}

// Assign runs the manager on reg and exports the schedule. The result is
// returned even when a collaborator failed.
func (s *Service) Assign(ctx context.Context, reg model.Registry) (assign.RunResult, error) {
	run, err := s.Manager.Run(ctx, reg)
	if run.Grid == nil {
		return run, err
	}
	if xerr := s.export(ctx, run); xerr != nil {
		s.log.Errorf("export failed: %v", xerr)
		err = errors.Join(err, xerr)
	}
	return run, err
}

func (s *Service) assignConfigured(ctx context.Context) error {
	reg, err := s.LoadRegistry(ctx)
	if err != nil {
		return err
	}
	_, err = s.Assign(ctx, reg)
	return err
}

func (s *Service) export(ctx context.Context, run assign.RunResult) error {
	xc := s.cfg.Export
	if xc.Path == "" && s.uploader == nil {
		return nil
	}
	body, ext, contentType, err := export.Encode(xc.Format, run.ID, run.Result, s.Periods(), s.Days())
	if err != nil {
		return err
	}
	var errs []error
	if xc.Path != "" {
		if err := os.MkdirAll(filepath.Dir(xc.Path), 0o755); err != nil {
			errs = append(errs, err)
		} else if err := os.WriteFile(xc.Path, body, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write export: %w", err))
		}
	}
	if s.uploader != nil {
		key, err := s.uploader.Put(ctx, run.ID, ext, contentType, body)
		if err != nil {
			errs = append(errs, fmt.Errorf("upload export: %w", err))
		} else {
			s.log.Infof("schedule %s uploaded to %s", run.ID, key)
		}
	}
	return errors.Join(errs...)
}

// Handler returns the HTTP API: /metrics, run logs, run history and tutor rosters.
func (s *Service) Handler() http.Handler {
	token := s.cfg.Server.Token
	handlers := map[string]http.Handler{
		"/api/runs/history": runs.NewHistoryHandler(s.Manager, token),
		"/api/tutors/":      tutors.NewRosterHandler(s.Manager),
	}
	if s.store != nil {
		handlers["/api/runs"] = runs.NewLogHandler(s.store, token)
	}
	return metrics.NewServeMux(handlers)
}

// Run assigns the configured party document when one is set, then serves
// the HTTP API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Registry.Path != "" || s.cfg.Registry.URL != "" {
		if err := s.assignConfigured(ctx); err != nil {
			s.log.Errorf("initial assignment: %v", err)
		}
	}
	addr := s.cfg.Server.Addr
	if s.cfg.Metrics.PrometheusAddr != "" && s.cfg.Metrics.PrometheusAddr != addr {
		go func() {
			if err := metrics.Serve(ctx, s.cfg.Metrics.PrometheusAddr, metrics.NewServeMux(nil)); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	s.log.Infof("listening on %s", addr)
	return metrics.Serve(ctx, addr, s.Handler())
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	defer monitoring.Flush(2 * time.Second)
	for _, c := range s.closers {
		c()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return s.Manager.Close()
}
