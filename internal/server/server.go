package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aman-churiwal/influx-monitor/internal/config"
	"github.com/aman-churiwal/influx-monitor/internal/middleware"
	"github.com/aman-churiwal/influx-monitor/internal/monitor"
)

const (
	ServiceName = "influxdb-monitor"
	Version     = "1.0.0"
)

type Server struct {
	router     *gin.Engine
	config     *config.Config
	aggregator monitor.Source
	log        *logrus.Logger
	startTime  time.Time
	httpServer *http.Server
}

func New(cfg *config.Config, aggregator monitor.Source, log *logrus.Logger, startTime time.Time) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		router:     router,
		config:     cfg,
		aggregator: aggregator,
		log:        log,
		startTime:  startTime,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.log))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", s.metrics)
	s.router.GET("/status", s.status)
}

// health reports the daemon's own liveness, not the monitored service's. It
// never invokes probes.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// metrics runs a fresh aggregation per request rather than serving the
// loop's last report. Probe failures are payload data: the route stays 200
// as long as the daemon itself is up.
func (s *Server) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.aggregator.Run(c.Request.Context()))
}

// status returns daemon identity, uptime and a read-only view of the
// configuration. The auth token is deliberately omitted.
func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": ServiceName,
		"version": Version,
		"uptime":  time.Since(s.startTime).Seconds(),
		"config": gin.H{
			"influxdb_url":   s.config.InfluxDB.URL,
			"org":            s.config.InfluxDB.Org,
			"bucket":         s.config.InfluxDB.Bucket,
			"check_interval": int(s.config.Monitoring.CheckInterval / time.Second),
		},
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	s.log.Infof("Starting monitor HTTP surface on %s", addr)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
