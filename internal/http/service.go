package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/config"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http/apierr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http/graph"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http/metric"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http/middleware"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http/playground"
	"github.com/tuanvumaihuynh/crm-graphql/internal/service"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
)

const GraphQLPath = "/graphql"

var tracer = otel.Tracer("github.com/tuanvumaihuynh/crm-graphql/internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg      config.HTTP
	logger   *slog.Logger
	metrics    *metric.Metrics
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	health     db.HealthChecker

	customerSvc service.CustomerService
	productSvc  service.ProductService
	orderSvc    service.OrderService
}

type CleanupFunc func(ctx context.Context) error

type Option func(*Service)

// WithRegistry registers the HTTP metrics with reg and serves reg on
// /metrics instead of the default registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Service) {
		s.registerer = reg
		s.gatherer = reg
	}
}

func New(
	cfg config.HTTP,
	log *slog.Logger,
	health db.HealthChecker,
	customerSvc service.CustomerService,
	productSvc service.ProductService,
	orderSvc service.OrderService,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:         cfg,
		logger:      log.With(slog.String("service", "http")),
		registerer:  prometheus.DefaultRegisterer,
		gatherer:    prometheus.DefaultGatherer,
		health:      health,
		customerSvc: customerSvc,
		productSvc:  productSvc,
		orderSvc:    orderSvc,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = metric.New(s.registerer)

	return s
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r, err := s.Router()
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, r)
}

// Router builds the complete handler: middlewares, GraphQL, playground,
// health and metrics routes.
func (s *Service) Router() (chi.Router, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Playground {
		playground.Register(r, GraphQLPath)
	}

	if err := s.RegisterHandlers(r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.CorrelationID(),
		middleware.Trace(tracer, GraphQLPath, playground.SchemaPath),
		middleware.Metrics(s.metrics),
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) error {
	schema, err := graph.NewSchema(
		graph.NewResolver(s.logger, s.customerSvc, s.productSvc, s.orderSvc),
		s.cfg.GraphQLMaxDepth,
	)
	if err != nil {
		return err
	}

	r.Post(GraphQLPath, s.graphQLHandler(schema).ServeHTTP)
	r.Get(middleware.HealthPath, s.handleHealth)
	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.handleResponseError(w, r, apperr.RouteNotFoundErr)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.handleResponseError(w, r, apperr.MethodNotAllowedErr)
	})

	return nil
}

func (s *Service) graphQLHandler(schema *graphql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if ok, err := s.health.IsHealthy(r.Context()); !ok || err != nil {
		s.handleResponseError(w, r, apperr.DatabaseUnavailableErr.WrapParent(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
