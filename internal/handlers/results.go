package handlers

import (
	"html/template"
	"net/http"

	"github.com/Nicolas0016/impostor/internal/game"
	"github.com/Nicolas0016/impostor/internal/render"
)

// HandleResults displays the end-of-game page with the full round
// history.
func (ctx *Context) HandleResults(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.RLock()
	defer session.RUnlock()

	data := struct {
		Code        string
		Result      string
		CrewWon     bool
		Eliminated  []string
		HistoryHTML template.HTML
	}{
		Code:        session.Code,
		Result:      session.Result,
		CrewWon:     session.Result == game.ResultCrewWins,
		Eliminated:  session.Eliminated,
		HistoryHTML: template.HTML(render.HistoryTable(session.Engine.History())),
	}
	ctx.Templates.ExecuteTemplate(w, "results.html", data)
}

// HandleImpostors reveals who the impostors were in each round
func (ctx *Context) HandleImpostors(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.getSession(w, r)
	if !ok {
		return
	}

	session.RLock()
	defer session.RUnlock()

	data := struct {
		Code    string
		History []game.RoundRecord
	}{
		Code:    session.Code,
		History: session.Engine.History(),
	}
	ctx.Templates.ExecuteTemplate(w, "impostors.html", data)
}
