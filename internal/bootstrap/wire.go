package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/scms-platform/identity-service/internal/application/identity"
	"github.com/scms-platform/identity-service/internal/config"
	"github.com/scms-platform/identity-service/internal/infrastructure/jsonfile"
	"github.com/scms-platform/identity-service/internal/infrastructure/memory"
	"github.com/scms-platform/identity-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/scms-platform/identity-service/internal/infrastructure/postgres"
	"github.com/scms-platform/identity-service/internal/infrastructure/security"
	"github.com/scms-platform/identity-service/internal/transport/http/middleware"
	"github.com/scms-platform/identity-service/internal/transport/http/router"
)

const serviceName = "identity-service"

// Deps are the factory hooks the wiring uses for external resources, so
// tests can assemble a server without a database or a broker.
type Deps struct {
	LoadConfig   func() (*config.Config, error)
	OpenDB       func(dsn string) (*sql.DB, error)
	NewPublisher func(url string) (identity.EventPublisher, func() error, error)
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		OpenDB:     config.NewDB,
		NewPublisher: func(url string) (identity.EventPublisher, func() error, error) {
			pub, err := rabbitmq.NewPublisher(url)
			if err != nil {
				return nil, nil, err
			}
			return pub, pub.Close, nil
		},
	}
}

// Server bundles the configured HTTP server with the shutdown hooks for the
// resources behind it.
type Server struct {
	HTTP    *http.Server
	cleanup []func() error
}

// Close releases the server's backing resources (db pool, broker
// connection). Call after the HTTP listener has stopped.
func (s *Server) Close() error {
	var first error
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		if err := s.cleanup[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewServer wires the production server from the environment.
func NewServer(lg zerolog.Logger) (*Server, error) {
	return NewServerWithDeps(lg, defaultDeps())
}

func NewServerWithDeps(lg zerolog.Logger, deps Deps) (*Server, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	srv := &Server{}

	store, err := buildStore(cfg, deps, srv)
	if err != nil {
		return nil, err
	}

	pub := buildPublisher(cfg, deps, srv, lg)

	hasher := security.NewPBKDF2Hasher(0) // 0 selects the default iteration count
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	svc := identity.NewService(store, hasher, signer, pub, identity.Config{TokenTTL: cfg.TokenTTL}).
		WithAudit(func(action string, fields map[string]string) {
			evt := lg.Info().Str("audit", action)
			for k, v := range fields {
				evt = evt.Str(k, v)
			}
			evt.Msg("audit event")
		})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	handler := router.New(router.Deps{
		Service:        svc,
		Verifier:       signer,
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ServiceName:    serviceName,
	})

	srv.HTTP = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	lg.Info().
		Str("addr", cfg.HTTPAddr).
		Str("store_driver", cfg.StoreDriver).
		Str("env", cfg.Env).
		Msg("server wired")

	return srv, nil
}

func buildStore(cfg *config.Config, deps Deps, srv *Server) (identity.UserStore, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		store, err := jsonfile.New(cfg.UserDataFile)
		if err != nil {
			return nil, fmt.Errorf("open user data file: %w", err)
		}
		return store, nil

	case config.StoreDriverMemory:
		return memory.NewUserStore(), nil

	case config.StoreDriverPostgres:
		db, err := deps.OpenDB(cfg.DBAddr)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		srv.cleanup = append(srv.cleanup, db.Close)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return postgres.NewUserStore(db), nil

	default:
		return nil, fmt.Errorf("invalid store driver: %q", cfg.StoreDriver)
	}
}

// buildPublisher connects to the broker when configured. Outside prod a
// broker failure degrades to the noop publisher so local development does
// not require RabbitMQ.
func buildPublisher(cfg *config.Config, deps Deps, srv *Server, lg zerolog.Logger) identity.EventPublisher {
	if cfg.RabbitURL == "" {
		lg.Debug().Msg("no broker configured, registration events disabled")
		return memory.NewNoopPublisher()
	}

	pub, closeFn, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		lg.Warn().Err(err).Msg("broker unavailable, registration events disabled")
		return memory.NewNoopPublisher()
	}

	if p, ok := pub.(*rabbitmq.Publisher); ok && cfg.RabbitExchange != "" {
		p.SetExchange(cfg.RabbitExchange)
	}
	srv.cleanup = append(srv.cleanup, closeFn)
	return pub
}
