package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Nicolas0016/impostor/internal/models"
	"github.com/Nicolas0016/impostor/internal/monitor"
	"github.com/Nicolas0016/impostor/internal/store"
)

// testMetrics is shared across tests since prometheus collectors can
// only be registered once per process.
var (
	testMetrics     *monitor.Monitor
	testMetricsOnce sync.Once
)

func sharedMetrics() *monitor.Monitor {
	testMetricsOnce.Do(func() {
		testMetrics = monitor.New("impostor_test")
	})
	return testMetrics
}

// testTemplates covers every page the handlers render without needing
// the real template files on disk.
const testTemplates = `
{{define "index.html"}}index{{end}}
{{define "session.html"}}session {{.Code}} {{.Phase}}{{end}}
{{define "turn.html"}}turn {{.Player}}{{end}}
{{define "voting.html"}}voting {{.Code}}{{end}}
{{define "results.html"}}results {{.Result}}{{end}}
{{define "impostors.html"}}impostors{{end}}
{{define "categories.html"}}categories{{end}}
`

func newTestContext(t *testing.T) *Context {
	t.Helper()
	dir := t.TempDir()
	categories, err := store.NewCategoryStore(filepath.Join(dir, "categories.json"))
	if err != nil {
		t.Fatalf("NewCategoryStore() error = %v", err)
	}
	setups, err := store.NewSetupStore(filepath.Join(dir, "setup.json"))
	if err != nil {
		t.Fatalf("NewSetupStore() error = %v", err)
	}
	return &Context{
		Sessions:   store.NewSessionStore(),
		Categories: categories,
		Setups:     setups,
		Templates:  template.Must(template.New("").Parse(testTemplates)),
		Metrics:    sharedMetrics(),
		BaseURL:    "http://example.test",
	}
}

func newTestRouter(ctx *Context) http.Handler {
	r := chi.NewRouter()
	r.Get("/", ctx.HandleIndex)
	r.Post("/sessions", ctx.HandleCreateSession)
	r.Route("/session/{code}", func(r chi.Router) {
		r.Get("/", ctx.HandleSession)
		r.Get("/qr", ctx.HandleSessionQR)
		r.Post("/round", ctx.HandleStartRound)
		r.Get("/turn", ctx.HandleTurn)
		r.Post("/advance", ctx.HandleAdvanceTurn)
		r.Get("/voting", ctx.HandleVoting)
		r.Post("/eliminate", ctx.HandleEliminate)
		r.Get("/results", ctx.HandleResults)
		r.Post("/reset", ctx.HandleReset)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", ctx.HandleCategories)
		r.Post("/", ctx.HandleCreateCategory)
		r.Post("/{id}", ctx.HandleUpdateCategory)
		r.Post("/{id}/delete", ctx.HandleDeleteCategory)
	})
	return r
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, ctx *Context, h http.Handler) string {
	t.Helper()
	w := postForm(t, h, "/sessions", url.Values{
		"players":       {"Ana\nLuis\nPedro\nSofía"},
		"max_impostors": {"2"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create session status = %d, body = %s", w.Code, w.Body.String())
	}
	redirect := w.Header().Get("HX-Redirect")
	code := strings.TrimPrefix(redirect, "/session/")
	if code == "" || code == redirect {
		t.Fatalf("unexpected redirect %q", redirect)
	}
	return code
}

func TestCreateSessionStoresSetupAndSession(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)

	code := createSession(t, ctx, h)
	session, exists := ctx.Sessions.Get(code)
	if !exists {
		t.Fatalf("session %q not stored", code)
	}
	if session.Phase != models.PhaseConfig {
		t.Errorf("phase = %q, want config", session.Phase)
	}
	if got := len(session.Engine.ActivePlayers()); got != 4 {
		t.Errorf("active players = %d, want 4", got)
	}

	setup := ctx.Setups.Get()
	if setup == nil || len(setup.Players) != 4 {
		t.Errorf("setup not persisted: %+v", setup)
	}
}

func TestCreateSessionRejectsTooFewPlayers(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)

	w := postForm(t, h, "/sessions", url.Values{
		"players": {"Ana\nLuis"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateSessionClampsImpostorCeiling(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)

	// Four players allow at most one impostor regardless of the form value
	w := postForm(t, h, "/sessions", url.Values{
		"players":       {"Ana\nLuis\nPedro\nSofía"},
		"max_impostors": {"4"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	code := strings.TrimPrefix(w.Header().Get("HX-Redirect"), "/session/")

	postForm(t, h, "/session/"+code+"/round", nil)
	postForm(t, h, "/session/"+code+"/round", nil)

	session, _ := ctx.Sessions.Get(code)
	if got := session.LastRound.ImpostorCount; got != 1 {
		t.Errorf("round 2 impostors = %d, want 1 with a 4-player roster", got)
	}
}

func TestStartRoundMovesSessionToPlaying(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)

	w := postForm(t, h, "/session/"+code+"/round", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	session, _ := ctx.Sessions.Get(code)
	if session.Phase != models.PhasePlaying {
		t.Errorf("phase = %q, want playing", session.Phase)
	}
	if session.LastRound.Round != 1 {
		t.Errorf("round = %d, want 1", session.LastRound.Round)
	}
}

func TestFullRoundReachesVoting(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)

	postForm(t, h, "/session/"+code+"/round", nil)

	// One advance per player completes the round
	for range 4 {
		w := postForm(t, h, "/session/"+code+"/advance", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("advance status = %d", w.Code)
		}
	}

	session, _ := ctx.Sessions.Get(code)
	if session.Phase != models.PhaseVoting {
		t.Errorf("phase = %q, want voting", session.Phase)
	}
}

func TestEliminateUnknownPlayerReturns400(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)
	postForm(t, h, "/session/"+code+"/round", nil)

	w := postForm(t, h, "/session/"+code+"/eliminate", url.Values{
		"player": {"Nadie"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestEliminateImpostorFinishesGame(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)
	postForm(t, h, "/session/"+code+"/round", nil)

	session, _ := ctx.Sessions.Get(code)
	impostors := session.LastRound.Impostors
	if len(impostors) != 1 {
		t.Fatalf("round one impostors = %v, want exactly one", impostors)
	}

	w := postForm(t, h, "/session/"+code+"/eliminate", url.Values{
		"player": {impostors[0]},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("HX-Redirect"); !strings.HasSuffix(got, "/results") {
		t.Errorf("redirect = %q, want results page", got)
	}

	if session.Phase != models.PhaseFinished {
		t.Errorf("phase = %q, want finished", session.Phase)
	}
	if session.Result == "" {
		t.Error("result not recorded")
	}
}

func TestStartRoundAfterFinishedContinuesGame(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)
	postForm(t, h, "/session/"+code+"/round", nil)

	session, _ := ctx.Sessions.Get(code)
	impostors := session.LastRound.Impostors
	postForm(t, h, "/session/"+code+"/eliminate", url.Values{
		"player": {impostors[0]},
	})
	if session.Phase != models.PhaseFinished {
		t.Fatalf("phase = %q, want finished before restart", session.Phase)
	}

	w := postForm(t, h, "/session/"+code+"/round", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start after finish status = %d", w.Code)
	}
	if session.Phase != models.PhasePlaying {
		t.Errorf("phase = %q, want playing", session.Phase)
	}
	if session.Result != "" {
		t.Errorf("result = %q, want cleared", session.Result)
	}
	if session.LastRound.Round != 2 {
		t.Errorf("round = %d, want 2 (same game continues)", session.LastRound.Round)
	}
}

func TestResetRestoresConfigPhase(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)
	postForm(t, h, "/session/"+code+"/round", nil)

	w := postForm(t, h, "/session/"+code+"/reset", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	session, _ := ctx.Sessions.Get(code)
	if session.Phase != models.PhaseConfig {
		t.Errorf("phase = %q, want config", session.Phase)
	}
	if session.Engine.Round() != 0 {
		t.Errorf("round = %d, want 0", session.Engine.Round())
	}
	// The saved setup reapplies, so the configured roster survives reset
	if got := len(session.Engine.ActivePlayers()); got != 4 {
		t.Errorf("active players after reset = %d, want 4", got)
	}
}

func TestUnknownSessionRedirectsHome(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)

	w := get(t, h, "/session/ZZZZZZ/")
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Errorf("location = %q, want /", got)
	}
}

func TestSessionQRServesPNG(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)
	code := createSession(t, ctx, h)

	w := get(t, h, "/session/"+code+"/qr")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("content type = %q, want image/png", got)
	}
	if w.Body.Len() == 0 {
		t.Error("empty PNG body")
	}
}

func TestCategoryCRUDThroughHandlers(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)

	w := postForm(t, h, "/categories", url.Values{
		"name":  {"Oficios"},
		"type":  {"single"},
		"words": {"médico\nbombero"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var id string
	for _, cat := range ctx.Categories.All() {
		if cat.Name == "Oficios" {
			id = cat.ID
		}
	}
	if id == "" {
		t.Fatal("created category not found")
	}

	w = postForm(t, h, "/categories/"+id, url.Values{
		"name":  {"Oficios y más"},
		"type":  {"mixed"},
		"words": {"médico"},
		"pairs": {"bombero=policía"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	cat, _ := ctx.Categories.Get(id)
	if cat.Name != "Oficios y más" || len(cat.Pairs) != 1 {
		t.Errorf("update not applied: %+v", cat)
	}

	w = postForm(t, h, "/categories/"+id+"/delete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if _, ok := ctx.Categories.Get(id); ok {
		t.Error("category still present after delete")
	}
}

func TestCreateCategoryRejectsBadPairFormat(t *testing.T) {
	ctx := newTestContext(t)
	h := newTestRouter(ctx)

	w := postForm(t, h, "/categories", url.Values{
		"name":  {"Rotas"},
		"type":  {"mixed"},
		"pairs": {"sin-igual"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSplitPlayers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"newlines", "Ana\nLuis\nPedro", 3},
		{"commas", "Ana, Luis, Pedro", 3},
		{"mixed with blanks", "Ana\n\n Luis ,\nPedro", 3},
		{"empty", "  \n ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitPlayers(tt.raw); len(got) != tt.want {
				t.Errorf("splitPlayers(%q) = %v, want %d names", tt.raw, got, tt.want)
			}
		})
	}
}
