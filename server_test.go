package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barrsum/portfolio/internal/config"
	"github.com/Barrsum/portfolio/internal/content"
	"github.com/Barrsum/portfolio/internal/logger"
	"github.com/Barrsum/portfolio/internal/metrics"
	"github.com/Barrsum/portfolio/internal/reveal"
	"github.com/Barrsum/portfolio/internal/theme"
	"github.com/Barrsum/portfolio/internal/typeface"
)

const testFont = `{"familyName":"Test Sans","resolution":1000,"glyphs":{"A":{"ha":700},"B":{"ha":690},"M":{"ha":820},"P":{"ha":650},"R":{"ha":680},"T":{"ha":610}}}`

// partialFont has no R, so it cannot draw the hero title.
const partialFont = `{"familyName":"Partial Sans","resolution":1000,"glyphs":{"A":{"ha":700},"B":{"ha":690}}}`

func newTestServer(t *testing.T, fontPath string) (*server, *gin.Engine) {
	t.Helper()

	if fontPath == "" {
		fontPath = filepath.Join(t.TempDir(), "missing.typeface.json")
	}
	cfg := &config.Config{
		Port:       8080,
		Mode:       gin.TestMode,
		LogLevel:   "info",
		LogFormat:  "json",
		FontPath:   fontPath,
		SceneCount: 15,
		RevealTTL:  time.Hour,
	}

	store, err := reveal.NewSQLiteStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	font := typeface.NewLoader(cfg.FontPath, logger.Nop())
	s := newServer(cfg, logger.Nop(), metrics.New(), store, font, content.Default())

	r, err := s.routes()
	require.NoError(t, err)
	return s, r
}

func serveRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func htmxRequest(target string, form url.Values, current theme.Theme) *http.Request {
	req := formRequest(http.MethodPost, target, form)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: themeCookie, Value: current.String()})
	return req
}

func postReveal(t *testing.T, r http.Handler, mount, section, ratio string) string {
	t.Helper()
	rec := serveRequest(r, formRequest(http.MethodPost, "/sections/"+section+"/reveal", url.Values{
		"mount": {mount},
		"ratio": {ratio},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestIndexRendersSectionsInOrder(t *testing.T) {
	_, r := newTestServer(t, "")

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	last := -1
	for _, id := range []string{`id="hero"`, `id="about"`, `id="challenge"`, `id="projects"`, `id="contact"`} {
		idx := strings.Index(body, id)
		require.Greater(t, idx, last, "%s out of order", id)
		last = idx
	}

	assert.Contains(t, body, "Pure Dark")
	assert.Contains(t, body, `class="bg-black min-h-screen`)
	assert.Contains(t, body, "<body>")
	assert.Contains(t, body, `hx-trigger="intersect once threshold:0.3"`)
	assert.Contains(t, body, `hx-post="/sections/hero/reveal"`)
	assert.Contains(t, body, "reveal-pending")
	assert.NotContains(t, body, "reveal-in")
	// typeface missing: the heading is drawn as HTML
	assert.Contains(t, body, ">RAM BAPAT</h1>")
	assert.NotContains(t, body, "sr-only")
	assert.Contains(t, body, `href="tel:`)
	assert.Contains(t, body, `href="mailto:mugdharam89@gmail.com"`)
	assert.Contains(t, body, `rel="noopener noreferrer"`)
}

func TestIndexReadsThemeCookieThenQuery(t *testing.T) {
	_, r := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/?theme=light", nil)
	req.AddCookie(&http.Cookie{Name: themeCookie, Value: "blue"})
	body := serveRequest(r, req).Body.String()
	assert.Contains(t, body, "Blue Dark")
	assert.Contains(t, body, `data-theme="blue"`)

	body = serveRequest(r, httptest.NewRequest(http.MethodGet, "/?theme=light", nil)).Body.String()
	assert.Contains(t, body, `data-theme="light"`)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: themeCookie, Value: "purple"})
	body = serveRequest(r, req).Body.String()
	assert.Contains(t, body, `data-theme="dark"`)
}

func TestThemeToggleCycles(t *testing.T) {
	_, r := newTestServer(t, "")
	mount := uuid.NewString()

	current := theme.Dark
	for _, want := range []theme.Theme{theme.Blue, theme.Light, theme.Dark} {
		rec := serveRequest(r, htmxRequest("/theme", url.Values{"mount": {mount}, "seed": {"99"}}, current))
		require.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, themeCookie, c.Name)
		assert.Equal(t, want.String(), c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, themeCookieMaxAge, c.MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.HttpOnly)

		assert.JSONEq(t, `{"themeChanged":{"theme":"`+want.String()+`"}}`, rec.Header().Get("HX-Trigger"))

		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(strings.TrimSpace(body), `<div id="app"`))
		assert.Contains(t, body, want.DisplayName())
		assert.Contains(t, body, "seed=99")
		assert.Contains(t, body, mount)

		current = want
	}
}

func TestThemeToggleSet(t *testing.T) {
	_, r := newTestServer(t, "")

	rec := serveRequest(r, htmxRequest("/theme?set=light", nil, theme.Dark))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", rec.Result().Cookies()[0].Value)

	rec = serveRequest(r, htmxRequest("/theme?set=sepia", nil, theme.Dark))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestThemeToggleWithoutHTMXRedirects(t *testing.T) {
	_, r := newTestServer(t, "")

	rec := serveRequest(r, formRequest(http.MethodPost, "/theme", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "blue", rec.Result().Cookies()[0].Value)
}

func TestThemeTogglePreservesReveals(t *testing.T) {
	_, r := newTestServer(t, "")
	mount := uuid.NewString()

	postReveal(t, r, mount, "about", "0.5")

	rec := serveRequest(r, htmxRequest("/theme", url.Values{"mount": {mount}, "seed": {"5"}}, theme.Dark))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.NotContains(t, body, `hx-post="/sections/about/reveal"`)
	assert.Contains(t, body, `hx-post="/sections/hero/reveal"`)
	assert.Contains(t, body, "reveal-in")
}

func TestRevealIsMonotonic(t *testing.T) {
	s, r := newTestServer(t, "")
	mount := uuid.NewString()

	body := postReveal(t, r, mount, "about", "0.1")
	assert.Contains(t, body, "reveal-pending")
	assert.Contains(t, body, `hx-post="/sections/about/reveal"`)

	body = postReveal(t, r, mount, "about", "0.3")
	assert.Contains(t, body, "reveal-in")
	assert.NotContains(t, body, "hx-post")

	body = postReveal(t, r, mount, "about", "0")
	assert.Contains(t, body, "reveal-in")

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/sections/about?mount="+mount, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reveal-in")

	// other sections and mounts are untouched
	assert.Contains(t, postReveal(t, r, mount, "contact", "0.2"), "reveal-pending")
	assert.Contains(t, postReveal(t, r, uuid.NewString(), "about", "0.1"), "reveal-pending")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Reveals.WithLabelValues("about")))
}

func TestRevealWithoutMountNeverReveals(t *testing.T) {
	_, r := newTestServer(t, "")
	assert.Contains(t, postReveal(t, r, "", "projects", "1"), "reveal-pending")
}

func TestRevealRejectsBadInput(t *testing.T) {
	_, r := newTestServer(t, "")
	form := url.Values{"mount": {uuid.NewString()}, "ratio": {"1"}}

	rec := serveRequest(r, formRequest(http.MethodPost, "/sections/footer/reveal", form))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serveRequest(r, httptest.NewRequest(http.MethodGet, "/sections/footer", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	form.Set("ratio", "lots")
	rec = serveRequest(r, formRequest(http.MethodPost, "/sections/about/reveal", form))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type sceneResponse struct {
	Theme   string `json:"theme"`
	Seed    string `json:"seed"`
	Objects []struct {
		Index    int        `json:"index"`
		Shape    string     `json:"shape"`
		Position [3]float64 `json:"position"`
		Color    string     `json:"color"`
	} `json:"objects"`
	Hero *struct {
		Text string `json:"text"`
		Font string `json:"font"`
	} `json:"hero"`
}

func getScene(t *testing.T, r http.Handler, query string) sceneResponse {
	t.Helper()
	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/scene.json?"+query, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sceneResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSceneJSON(t *testing.T) {
	_, r := newTestServer(t, "")

	blue := getScene(t, r, "seed=42&theme=blue")
	assert.Equal(t, "blue", blue.Theme)
	assert.Equal(t, "42", blue.Seed)
	require.Len(t, blue.Objects, 15)
	assert.Nil(t, blue.Hero)

	palette := theme.ScenePalette(theme.Blue)
	shapes := []string{"cube", "sphere", "octahedron"}
	for i, o := range blue.Objects {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, shapes[i%3], o.Shape)
		assert.Equal(t, palette[i%3], o.Color)
	}
	assert.Equal(t, "sphere", blue.Objects[7].Shape)
	assert.Equal(t, "#00d4ff", blue.Objects[7].Color)

	light := getScene(t, r, "seed=42&theme=light")
	for i := range blue.Objects {
		assert.Equal(t, blue.Objects[i].Position, light.Objects[i].Position)
	}
}

func TestSceneParams(t *testing.T) {
	_, r := newTestServer(t, "")

	assert.Len(t, getScene(t, r, "count=1000").Objects, 64)
	assert.Empty(t, getScene(t, r, "count=-3").Objects)
	assert.NotEqual(t, "0", getScene(t, r, "").Seed)

	for _, q := range []string{"theme=purple", "seed=-1", "count=many"} {
		rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/scene.json?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestTypefaceServedOnceReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.typeface.json")
	require.NoError(t, os.WriteFile(path, []byte(testFont), 0o600))

	s, r := newTestServer(t, path)

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/fonts/test.typeface.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, s.font.Load(context.Background()))

	rec = serveRequest(r, httptest.NewRequest(http.MethodGet, "/fonts/test.typeface.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, testFont, rec.Body.String())

	rec = serveRequest(r, httptest.NewRequest(http.MethodGet, "/fonts/other.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := getScene(t, r, "seed=1")
	require.NotNil(t, resp.Hero)
	assert.Equal(t, "RAM BAPAT", resp.Hero.Text)
	assert.Equal(t, "/fonts/test.typeface.json", resp.Hero.Font)

	body := serveRequest(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Contains(t, body, `<h1 class="sr-only">RAM BAPAT</h1>`)
}

func TestTypefaceWithoutTitleGlyphsKeepsPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.typeface.json")
	require.NoError(t, os.WriteFile(path, []byte(partialFont), 0o600))

	s, r := newTestServer(t, path)
	require.NoError(t, s.font.Load(context.Background()))
	require.Equal(t, typeface.Ready, s.font.Status())

	assert.Nil(t, getScene(t, r, "seed=1").Hero)

	body := serveRequest(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Contains(t, body, ">RAM BAPAT</h1>")
	assert.NotContains(t, body, "sr-only")
	assert.NotContains(t, body, "partial.typeface.json")
}

func TestTypefaceFailureKeepsPlaceholder(t *testing.T) {
	s, r := newTestServer(t, "")

	require.Error(t, s.font.Load(context.Background()))
	assert.Equal(t, typeface.Failed, s.font.Status())

	body := serveRequest(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Contains(t, body, ">RAM BAPAT</h1>")
	assert.NotContains(t, body, "sr-only")

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","typeface":"failed"}`, rec.Body.String())
}

func TestWatchTypefaceUpdatesGauge(t *testing.T) {
	s, _ := newTestServer(t, "")

	done := make(chan struct{})
	go func() {
		s.watchTypeface(context.Background())
		close(done)
	}()
	_ = s.font.Load(context.Background())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchTypeface did not return")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Typeface.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.Typeface.WithLabelValues("pending")))
}

func TestPageViewsSkipAssetsAndDNT(t *testing.T) {
	s, r := newTestServer(t, "")

	serveRequest(r, httptest.NewRequest(http.MethodGet, "/", nil))

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	serveRequest(r, dnt)

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	serveRequest(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	serveRequest(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.PageViews.WithLabelValues("/")))
	assert.Equal(t, 1, testutil.CollectAndCount(s.metrics.PageViews))

	rec = serveRequest(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	metricsBody, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), `portfolio_page_views_total{route="/"} 1`)
}

func TestRequestIDHeader(t *testing.T) {
	_, r := newTestServer(t, "")

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rec = serveRequest(r, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not-an-id")
	rec = serveRequest(r, req)
	assert.NotEqual(t, "not-an-id", rec.Header().Get(requestIDHeader))
}

func TestStaticDirOverridesEmbeddedAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.css"), []byte("body{}"), 0o600))

	s, _ := newTestServer(t, "")
	s.cfg.StaticDir = dir
	r, err := s.routes()
	require.NoError(t, err)

	rec := serveRequest(r, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}
