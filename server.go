package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Barrsum/portfolio/internal/config"
	"github.com/Barrsum/portfolio/internal/content"
	"github.com/Barrsum/portfolio/internal/logger"
	"github.com/Barrsum/portfolio/internal/metrics"
	"github.com/Barrsum/portfolio/internal/reveal"
	"github.com/Barrsum/portfolio/internal/typeface"
)

//go:embed templates/*.html static/*
var assets embed.FS

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = 10 * time.Minute
	fontPrefix      = "/fonts"
)

type server struct {
	cfg       *config.Config
	log       *logger.Logger
	metrics   *metrics.Metrics
	tracker   *reveal.Tracker
	font      *typeface.Loader
	portfolio *content.Portfolio
}

func newServer(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, store reveal.Store, font *typeface.Loader, portfolio *content.Portfolio) *server {
	s := &server{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		font:      font,
		portfolio: portfolio,
	}
	s.tracker = reveal.NewTracker(store,
		reveal.WithLogger(log),
		reveal.WithTTL(cfg.RevealTTL),
		reveal.WithRevealHook(func(section reveal.Section) {
			m.Reveals.WithLabelValues(section.String()).Inc()
		}),
	)
	return s
}

// serve runs the HTTP server until ctx is cancelled, then drains it.
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	portfolio := content.Default()
	if cfg.ContentFile != "" {
		p, err := content.LoadFile(cfg.ContentFile)
		if err != nil {
			return err
		}
		portfolio = p
	}

	store, err := reveal.OpenStore(ctx, reveal.StoreConfig{RedisURL: cfg.RedisURL, TTL: cfg.RevealTTL})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(err, "error closing reveal store")
		}
	}()

	font := typeface.NewLoader(cfg.FontPath, log)
	s := newServer(cfg, log, metrics.New(), store, font, portfolio)

	engine, err := s.routes()
	if err != nil {
		return err
	}

	font.Start(ctx)
	go s.watchTypeface(ctx)
	go s.tracker.RunPruner(ctx, pruneInterval)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]any{"addr": srv.Addr, "mode": cfg.Mode}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *server) routes() (*gin.Engine, error) {
	gin.SetMode(s.cfg.Mode)

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log), pageViews(s.metrics))
	r.SetHTMLTemplate(tmpl)

	if s.cfg.StaticDir != "" {
		r.Static("/static", s.cfg.StaticDir)
	} else {
		static, err := fs.Sub(assets, "static")
		if err != nil {
			return nil, fmt.Errorf("embedded static: %w", err)
		}
		r.StaticFS("/static", http.FS(static))
	}

	// Page and fragments
	r.GET("/", s.handleIndex)
	r.POST("/theme", s.handleTheme)
	r.GET("/sections/:name", s.handleSection)
	r.POST("/sections/:name/reveal", s.handleReveal)

	// Scene data and assets
	r.GET("/scene.json", s.handleScene)
	r.GET(fontPrefix+"/:file", s.handleFont)

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	return r, nil
}

// watchTypeface mirrors the loader state into the typeface gauge.
func (s *server) watchTypeface(ctx context.Context) {
	all := []string{typeface.Pending.String(), typeface.Ready.String(), typeface.Failed.String()}
	s.metrics.SetTypefaceStatus(s.font.Status().String(), all...)

	select {
	case <-ctx.Done():
		return
	case <-s.font.Done():
	}
	s.metrics.SetTypefaceStatus(s.font.Status().String(), all...)

	if face, err := s.font.Face(); err == nil && !face.Covers(s.portfolio.Hero.Title) {
		s.log.WithFields(map[string]any{"family": face.FamilyName, "text": s.portfolio.Hero.Title}).
			Warn("typeface lacks glyphs for the hero title; keeping the HTML heading")
	}
}

var templateFuncs = template.FuncMap{
	// hxVals renders the hx-vals payload that ties a fragment request to its mount.
	"hxVals": func(mount string, seed uint64, extra ...any) (string, error) {
		vals := map[string]any{"mount": mount, "seed": strconv.FormatUint(seed, 10)}
		for i := 0; i+1 < len(extra); i += 2 {
			key, ok := extra[i].(string)
			if !ok {
				return "", fmt.Errorf("hxVals: key %v is not a string", extra[i])
			}
			vals[key] = extra[i+1]
		}
		b, err := json.Marshal(vals)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	// contactHref lets the mailto and tel links through the template URL filter.
	"contactHref": func(e content.ContactEntry) template.URL {
		switch e.Scheme() {
		case "mailto", "tel", "http", "https":
			return template.URL(e.Link)
		default:
			return "#"
		}
	},
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
