package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerFile = "carrental.swagger.json"

// Handler registers its routes under /api/v1.
type Handler interface {
	Register(router *gin.RouterGroup)
}

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
}

// Run starts the HTTP server and, when grpc.address is set, a gRPC health
// server. It blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, handlers ...Handler) error {
	log = logger.OrNop(log)
	s := newServers(cfg, log, handlers...)

	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		log.Info("grpc health server listening", zap.String("address", cfg.GRPC.Address))
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	log.Info("http server listening", zap.String("address", cfg.HTTP.Address))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if s.grpcServer != nil {
			s.health.Shutdown()
			s.grpcServer.GracefulStop()
		}
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, log *zap.Logger, handlers ...Handler) *Servers {
	s := &Servers{
		httpServer: &http.Server{
			Addr:    cfg.HTTP.Address,
			Handler: NewRouter(cfg.HTTP.SwaggerDir, log, handlers...),
		},
	}

	if cfg.GRPC.Address != "" {
		s.grpcServer = grpc.NewServer()
		s.health = health.NewServer()
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(s.grpcServer, s.health)
	}
	return s
}

// NewRouter builds the gin engine with the API routes, /healthz, /metrics
// and, when swaggerDir is set, the swagger UI.
func NewRouter(swaggerDir string, log *zap.Logger, handlers ...Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger.OrNop(log)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if swaggerDir != "" {
		router.StaticFile("/docs/"+swaggerFile, filepath.Join(swaggerDir, swaggerFile))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/"+swaggerFile))))
	}

	v1 := router.Group("/api/v1")
	for _, h := range handlers {
		h.Register(v1)
	}
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
