package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Barrsum/portfolio/internal/reveal"
	"github.com/Barrsum/portfolio/internal/scene"
	"github.com/Barrsum/portfolio/internal/theme"
	"github.com/Barrsum/portfolio/internal/typeface"
	"github.com/Barrsum/portfolio/internal/view"
)

const (
	themeCookie       = "theme"
	themeCookieMaxAge = 365 * 24 * 60 * 60
)

// requestTheme reads the theme from the cookie, then ?theme=, falling back to dark.
func requestTheme(c *gin.Context) theme.Theme {
	if v, err := c.Cookie(themeCookie); err == nil {
		if t, err := theme.Parse(v); err == nil {
			return t
		}
	}
	return theme.ParseOr(c.Query("theme"), theme.Default)
}

// mountOrNew keeps a well-formed mount id and replaces anything else.
func mountOrNew(v string) string {
	if _, err := uuid.Parse(v); err != nil {
		return uuid.NewString()
	}
	return v
}

// seedOrNew keeps a non-zero seed and replaces anything else.
func seedOrNew(v string) uint64 {
	seed, err := strconv.ParseUint(v, 10, 64)
	if err != nil || seed == 0 {
		return scene.NewSeed()
	}
	return seed
}

func (s *server) page(ctx context.Context, t theme.Theme, mount string, seed uint64) (view.Page, error) {
	states, err := s.tracker.States(ctx, mount)
	if err != nil {
		return view.Page{}, err
	}
	return view.NewPage(view.Input{
		Theme:     t,
		Mount:     mount,
		Seed:      seed,
		States:    states,
		Portfolio: s.portfolio,
		FontURL:   s.heroFontURL(),
	}), nil
}

// heroFontURL is the typeface URL once the loaded face can draw the hero title, and empty
// while it cannot, so the page keeps the HTML heading.
func (s *server) heroFontURL() string {
	face, err := s.font.Face()
	if err != nil || !face.Covers(s.portfolio.Hero.Title) {
		return ""
	}
	return s.font.URL(fontPrefix)
}

func (s *server) handleIndex(c *gin.Context) {
	page, err := s.page(c.Request.Context(), requestTheme(c), uuid.NewString(), scene.NewSeed())
	if err != nil {
		s.fail(c, err, "error building page")
		return
	}
	c.HTML(http.StatusOK, "layout", page)
}

// handleTheme advances the theme, or sets it with ?set=, and re-renders the app for the
// same mount and seed so revealed sections and the scene layout survive the switch.
func (s *server) handleTheme(c *gin.Context) {
	next := theme.Cycle(requestTheme(c))
	if set, ok := c.GetQuery("set"); ok {
		t, err := theme.Parse(set)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		next = t
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, next.String(), themeCookieMaxAge, "/", "", false, false)
	s.metrics.ThemeChanges.WithLabelValues(next.String()).Inc()

	// Plain form posts without htmx just reload the page
	if c.GetHeader("HX-Request") != "true" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	trigger, err := json.Marshal(map[string]any{"themeChanged": map[string]string{"theme": next.String()}})
	if err != nil {
		s.fail(c, err, "error encoding HX-Trigger")
		return
	}
	c.Header("HX-Trigger", string(trigger))

	page, err := s.page(c.Request.Context(), next, mountOrNew(c.PostForm("mount")), seedOrNew(c.PostForm("seed")))
	if err != nil {
		s.fail(c, err, "error building page")
		return
	}
	c.HTML(http.StatusOK, "app", page)
}

func (s *server) handleScene(c *gin.Context) {
	t := requestTheme(c)
	if q := c.Query("theme"); q != "" {
		parsed, err := theme.Parse(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t = parsed
	}

	var seed uint64
	if q := c.Query("seed"); q != "" {
		parsed, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an unsigned integer"})
			return
		}
		seed = parsed
	}

	count := s.cfg.SceneCount
	if q := c.Query("count"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be an integer"})
			return
		}
		count = parsed
	}

	d := scene.Describe(scene.Options{
		Theme:    t,
		Seed:     seed,
		Count:    count,
		HeroText: s.portfolio.Hero.Title,
		FontURL:  s.heroFontURL(),
	})
	s.metrics.Scenes.WithLabelValues(t.String()).Inc()

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, d)
}

func (s *server) handleSection(c *gin.Context) {
	section, err := reveal.ParseSection(c.Param("name"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	s.renderSection(c, section, c.Query("mount"), seedOrNew(c.Query("seed")))
}

// handleReveal feeds one intersection observation into the tracker and answers with the
// section in its resulting state.
func (s *server) handleReveal(c *gin.Context) {
	section, err := reveal.ParseSection(c.Param("name"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	ratio, err := strconv.ParseFloat(c.PostForm("ratio"), 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	mount := c.PostForm("mount")
	if _, err := s.tracker.Observe(c.Request.Context(), mount, section.String(), ratio); err != nil {
		s.fail(c, err, "error recording reveal")
		return
	}
	s.renderSection(c, section, mount, seedOrNew(c.PostForm("seed")))
}

func (s *server) renderSection(c *gin.Context, section reveal.Section, mount string, seed uint64) {
	page, err := s.page(c.Request.Context(), requestTheme(c), mount, seed)
	if err != nil {
		s.fail(c, err, "error building section")
		return
	}
	v, ok := page.Section(section)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.HTML(http.StatusOK, v.Template(), v)
}

// handleFont serves the hero typeface once it has loaded.
func (s *server) handleFont(c *gin.Context) {
	if c.Param("file") != s.font.Name() || s.font.Status() != typeface.Ready {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(s.font.File())
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"typeface": s.font.Status().String(),
	})
}

func (s *server) fail(c *gin.Context, err error, msg string) {
	requestLog(c, s.log).Error(err, msg)
	c.Status(http.StatusInternalServerError)
}
