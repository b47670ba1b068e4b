// Package server hosts the wasm build of the deck and a small read-only API
// over the bundled content.
package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/config"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/snapshot"
)

const shutdownTimeout = 5 * time.Second

// Server serves the web bundle and the content API.
type Server struct {
	content *content.Portfolio
	cfg     config.Config
	log     *game_log.Logger
	router  *gin.Engine
}

func New(p *content.Portfolio, cfg config.Config, logger *game_log.Logger) *Server {
	s := &Server{content: p, cfg: cfg, log: logger.Tag("SERVER")}
	s.router = s.routes()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *gin.Engine {
	if s.log.Level() > game_log.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.LoggerWithWriter(s.log.Writer()), gin.Recovery())

	web := s.cfg.Server.WebDir
	r.Static("/assets", web)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(web, "index.html"))
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": len(s.content.Timeline())})
	})

	api := r.Group("/api")
	api.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content)
	})
	api.GET("/timeline", s.timeline)
	api.GET("/snapshot.svg", s.snapshot)
	return r
}

type timelineNode struct {
	Index int     `json:"index"`
	Year  int     `json:"year"`
	Title string  `json:"title"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// timeline returns the entries with their laid out scene positions.
func (s *Server) timeline(c *gin.Context) {
	entries := s.content.Timeline()
	nodes := flight.Layout(entries, s.cfg.Flight)
	out := make([]timelineNode, len(nodes))
	for i, n := range nodes {
		out[i] = timelineNode{Index: n.Index, Year: n.Year, Title: entries[i].Title, X: n.X, Y: n.Y, Z: n.Z}
	}
	c.JSON(http.StatusOK, gin.H{
		"spacing":     s.cfg.Flight.Spacing,
		"perspective": s.cfg.Flight.Perspective,
		"near_plane":  s.cfg.Flight.NearPlane,
		"nodes":       out,
	})
}

// snapshot renders one frame. Query: progress in [0,1], pin as a year,
// theme, w and h.
func (s *Server) snapshot(c *gin.Context) {
	opts := snapshot.Options{Theme: c.DefaultQuery("theme", s.cfg.Theme)}
	var err error
	if v := c.Query("progress"); v != "" {
		if opts.Progress, err = strconv.ParseFloat(v, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "progress must be a number"})
			return
		}
	}
	if v := c.Query("pin"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pin must be a year"})
			return
		}
		i := s.content.IndexOfYear(year)
		if i < 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no milestone for " + v})
			return
		}
		opts.Pin, opts.Pinned = i, true
	}
	opts.Width, _ = strconv.Atoi(c.Query("w"))
	opts.Height, _ = strconv.Atoi(c.Query("h"))

	b, err := snapshot.Frame(s.content.Timeline(), s.cfg.Flight, opts, s.log)
	if err != nil {
		s.log.Warnf("snapshot: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", b)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s (web %s)", srv.Addr, s.cfg.Server.WebDir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.log.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return nil
}
