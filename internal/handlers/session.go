package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/Nicolas0016/impostor/internal/game"
	"github.com/Nicolas0016/impostor/internal/models"
)

// HandleCreateSession builds a session from the setup form and
// redirects the device to it.
func (ctx *Context) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	players := splitPlayers(r.FormValue("players"))
	maxImpostors, _ := strconv.Atoi(r.FormValue("max_impostors"))
	timePerRound, _ := strconv.Atoi(r.FormValue("time_per_round"))

	// The roster size caps how many impostors make a playable game
	if ceiling := game.MaxImpostorsFor(len(players)); maxImpostors > ceiling {
		maxImpostors = ceiling
	}

	setup := models.GameSetup{
		Players:           players,
		MaxImpostors:      maxImpostors,
		Modes:             r.Form["modes"],
		Restrictions:      r.Form["restrictions"],
		CategoryIDs:       r.Form["categories"],
		CarryEliminations: r.FormValue("carry_eliminations") != "",
		TimePerRound:      timePerRound,
	}

	engine := game.New()
	if err := engine.Configure(game.Config{
		Players:           setup.Players,
		MaxImpostors:      setup.MaxImpostors,
		Modes:             setup.Modes,
		Restrictions:      setup.Restrictions,
		Categories:        ctx.Categories.ByIDs(setup.CategoryIDs),
		CarryEliminations: setup.CarryEliminations,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := ctx.Setups.Set(setup); err != nil {
		zap.S().Warnw("failed to persist setup", "error", err)
	}

	code := ctx.Sessions.UniqueCode()
	session := &models.Session{
		Code:      code,
		Engine:    engine,
		Setup:     setup,
		Phase:     models.PhaseConfig,
		CreatedAt: time.Now(),
	}
	ctx.Sessions.Set(code, session)
	ctx.Metrics.SetActiveSessions(ctx.Sessions.Count())

	zap.S().Infow("session created", "code", code, "players", len(players))

	w.Header().Set("HX-Redirect", "/session/"+code)
	w.WriteHeader(http.StatusOK)
}

// HandleSession displays the session page for its current phase
func (ctx *Context) HandleSession(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.RLock()
	defer session.RUnlock()

	data := sessionPage(ctx, session)
	ctx.Templates.ExecuteTemplate(w, "session.html", data)
}

// SessionView is the template payload for the session page.
type SessionView struct {
	Code        string
	Phase       models.SessionPhase
	Round       int
	RoundActive bool
	Message     string
	TurnOrder   []string
	Current     string
	Players     []string
	Eliminated  []string
	Result      string
	ShareURL    string
	TimeLimit   int
}

func sessionPage(ctx *Context, session *models.Session) SessionView {
	e := session.Engine
	return SessionView{
		Code:        session.Code,
		Phase:       session.Phase,
		Round:       e.Round(),
		RoundActive: e.IsRoundActive(),
		Message:     session.LastRound.Message,
		TurnOrder:   e.TurnOrderNames(),
		Current:     e.CurrentPlayer(),
		Players:     e.ActivePlayers(),
		Eliminated:  session.Eliminated,
		Result:      session.Result,
		ShareURL:    ctx.shareURL(session.Code),
		TimeLimit:   session.Setup.TimePerRound,
	}
}

func (ctx *Context) shareURL(code string) string {
	base := strings.TrimSuffix(ctx.BaseURL, "/")
	return base + "/session/" + code
}

// HandleSessionQR serves a QR code PNG pointing at the session page so
// other phones can follow along.
func (ctx *Context) HandleSessionQR(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(ctx.shareURL(session.Code), qrcode.Medium, 256)
	if err != nil {
		zap.S().Errorw("failed to encode QR", "code", session.Code, "error", err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Write(png)
}

// HandleRedirect serves the client-side navigation target for HTMX
func (ctx *Context) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if to == "" || !strings.HasPrefix(to, "/") {
		to = "/"
	}
	w.Header().Set("HX-Redirect", to)
	w.WriteHeader(http.StatusOK)
}

// getSession resolves the session from the URL, redirecting home when
// it does not exist.
func (ctx *Context) getSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	session, exists := ctx.Sessions.Get(code)
	if !exists {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return session, true
}

// splitPlayers parses the players textarea, one name per line, commas
// allowed too.
func splitPlayers(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	players := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			players = append(players, name)
		}
	}
	return players
}
