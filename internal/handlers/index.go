package handlers

import (
	"html/template"
	"net/http"

	"github.com/Nicolas0016/impostor/internal/game"
	"github.com/Nicolas0016/impostor/internal/models"
	"github.com/Nicolas0016/impostor/internal/monitor"
	"github.com/Nicolas0016/impostor/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Sessions   *store.SessionStore
	Categories *store.CategoryStore
	Setups     *store.SetupStore
	Templates  *template.Template
	Metrics    *monitor.Monitor
	BaseURL    string
}

// HandleIndex serves the landing page with the setup wizard, prefilled
// from the last saved setup.
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Setup      *models.GameSetup
		Categories []*game.Category
	}{
		Setup:      ctx.Setups.Get(),
		Categories: ctx.Categories.All(),
	}
	ctx.Templates.ExecuteTemplate(w, "index.html", data)
}
