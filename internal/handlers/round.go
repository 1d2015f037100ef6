package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Nicolas0016/impostor/internal/game"
	"github.com/Nicolas0016/impostor/internal/models"
	"github.com/Nicolas0016/impostor/internal/render"
	"github.com/Nicolas0016/impostor/internal/sse"
)

// HandleStartRound starts the next round and moves the session into the
// playing phase.
func (ctx *Context) HandleStartRound(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	// Starting a round from the results screen continues the same game,
	// so the previous verdict is cleared.
	session.Lock()
	info := session.Engine.StartRound()
	session.LastRound = info
	session.Phase = models.PhasePlaying
	session.Result = ""
	if !session.Setup.CarryEliminations {
		session.Eliminated = nil
	}
	session.Unlock()

	ctx.Metrics.IncRoundsStarted()
	if err := ctx.Categories.Save(); err != nil {
		zap.S().Warnw("failed to persist category usage", "error", err)
	}

	zap.S().Infow("round started",
		"code", session.Code, "round", info.Round, "impostors", info.ImpostorCount)

	sse.Broadcast(session, sse.EventRoundUpdate, render.RoundBanner(info))
	sse.Broadcast(session, sse.EventNavRedirect,
		render.RedirectSnippet(session.Code, "/session/"+session.Code))

	w.Header().Set("HX-Redirect", "/session/"+session.Code+"/turn")
	w.WriteHeader(http.StatusOK)
}

// HandleTurn shows the word card for the player holding the phone
func (ctx *Context) HandleTurn(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.RLock()
	defer session.RUnlock()

	if !session.Engine.IsRoundActive() {
		http.Redirect(w, r, "/session/"+session.Code, http.StatusSeeOther)
		return
	}

	info := session.Engine.CurrentPlayerInfo()
	data := struct {
		Code     string
		Player   string
		Round    int
		Category string
		CardHTML template.HTML
	}{
		Code:     session.Code,
		Player:   info.Player,
		Round:    info.Round,
		Category: info.Category,
		CardHTML: template.HTML(render.WordCard(info)),
	}
	ctx.Templates.ExecuteTemplate(w, "turn.html", data)
}

// HandleAdvanceTurn passes the phone to the next player. When the round
// completes the session moves into voting.
func (ctx *Context) HandleAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.Lock()
	result := session.Engine.AdvanceTurn()
	order := session.Engine.TurnOrderNames()
	if result.RoundComplete {
		session.Phase = models.PhaseVoting
	}
	session.Unlock()

	if result.RoundComplete {
		sse.Broadcast(session, sse.EventPhaseUpdate,
			render.RedirectSnippet(session.Code, "/session/"+session.Code+"/voting"))
		w.Header().Set("HX-Redirect", "/session/"+session.Code+"/voting")
	} else {
		sse.Broadcast(session, sse.EventTurnUpdate,
			render.TurnOrder(order, result.NextPlayer))
		w.Header().Set("HX-Redirect", "/session/"+session.Code+"/turn")
	}
	w.WriteHeader(http.StatusOK)
}

// HandleVoting displays the voting page
func (ctx *Context) HandleVoting(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.RLock()
	defer session.RUnlock()

	data := struct {
		Code        string
		Players     []string
		ButtonsHTML template.HTML
		TimeLimit   int
	}{
		Code:        session.Code,
		Players:     session.Engine.ActivePlayers(),
		ButtonsHTML: template.HTML(render.VoteButtons(session.Code, session.Engine.ActivePlayers())),
		TimeLimit:   session.Setup.TimePerRound,
	}
	ctx.Templates.ExecuteTemplate(w, "voting.html", data)
}

// HandleEliminate removes the voted player and evaluates victory
func (ctx *Context) HandleEliminate(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	r.ParseForm()
	name := strings.TrimSpace(r.FormValue("player"))
	if name == "" {
		http.Error(w, "Player is required", http.StatusBadRequest)
		return
	}

	session.Lock()
	result := session.Engine.Eliminate(name)
	if result.Found {
		session.MarkEliminated(name)
		if result.GameResult != "" {
			session.Phase = models.PhaseFinished
			session.Result = result.GameResult
		}
	}
	session.Unlock()

	if !result.Found {
		http.Error(w, "Unknown player", http.StatusBadRequest)
		return
	}

	ctx.Metrics.IncEliminations()
	zap.S().Infow("player eliminated",
		"code", session.Code, "player", name, "impostor", result.WasImpostor,
		"result", result.GameResult)

	if result.GameResult != "" {
		ctx.Metrics.IncGamesFinished(result.GameResult)
		sse.Broadcast(session, sse.EventNavRedirect,
			render.RedirectSnippet(session.Code, "/session/"+session.Code+"/results"))
		w.Header().Set("HX-Redirect", "/session/"+session.Code+"/results")
		w.WriteHeader(http.StatusOK)
		return
	}

	notice := render.EliminationNotice(result)
	sse.Broadcast(session, sse.EventPhaseUpdate, notice)
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(notice))
}

// HandleReset restores the session for a fresh game, keeping the saved
// setup when one exists.
func (ctx *Context) HandleReset(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.Lock()
	session.Engine.Reset()
	if setup := ctx.Setups.Get(); setup != nil {
		err := session.Engine.Configure(game.Config{
			Players:           setup.Players,
			MaxImpostors:      setup.MaxImpostors,
			Modes:             setup.Modes,
			Restrictions:      setup.Restrictions,
			Categories:        ctx.Categories.ByIDs(setup.CategoryIDs),
			CarryEliminations: setup.CarryEliminations,
		})
		if err != nil {
			zap.S().Warnw("saved setup no longer valid", "error", err)
		} else {
			session.Setup = *setup
		}
	}
	session.Phase = models.PhaseConfig
	session.Eliminated = nil
	session.Result = ""
	session.LastRound = game.RoundInfo{}
	session.Unlock()

	zap.S().Infow("session reset", "code", session.Code)

	sse.Broadcast(session, sse.EventNavRedirect,
		render.RedirectSnippet(session.Code, "/session/"+session.Code))
	w.Header().Set("HX-Redirect", "/session/"+session.Code)
	w.WriteHeader(http.StatusOK)
}
