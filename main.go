package main

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Nicolas0016/impostor/internal/config"
	"github.com/Nicolas0016/impostor/internal/handlers"
	"github.com/Nicolas0016/impostor/internal/logger"
	"github.com/Nicolas0016/impostor/internal/monitor"
	"github.com/Nicolas0016/impostor/internal/store"
)

func main() {
	// .env is optional, real env vars win either way
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.LogLevel)
	defer zap.L().Sync()

	categories, err := store.NewCategoryStore(filepath.Join(cfg.DataDir, "categories.json"))
	if err != nil {
		zap.S().Fatalw("failed to load categories", "error", err)
	}
	setups, err := store.NewSetupStore(filepath.Join(cfg.DataDir, "setup.json"))
	if err != nil {
		zap.S().Fatalw("failed to load setup", "error", err)
	}

	templates, err := template.ParseGlob("templates/*.html")
	if err != nil {
		zap.S().Fatalw("failed to parse templates", "error", err)
	}

	ctx := &handlers.Context{
		Sessions:   store.NewSessionStore(),
		Categories: categories,
		Setups:     setups,
		Templates:  templates,
		Metrics:    monitor.New("impostor"),
		BaseURL:    cfg.BaseURL,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", ctx.HandleIndex)
	r.Post("/sessions", ctx.HandleCreateSession)

	r.Route("/session/{code}", func(r chi.Router) {
		r.Get("/", ctx.HandleSession)
		r.Get("/qr", ctx.HandleSessionQR)
		r.Get("/redirect", ctx.HandleRedirect)
		r.Post("/round", ctx.HandleStartRound)
		r.Get("/turn", ctx.HandleTurn)
		r.Post("/advance", ctx.HandleAdvanceTurn)
		r.Get("/voting", ctx.HandleVoting)
		r.Post("/eliminate", ctx.HandleEliminate)
		r.Get("/results", ctx.HandleResults)
		r.Get("/impostors", ctx.HandleImpostors)
		r.Post("/reset", ctx.HandleReset)
		r.Get("/events", ctx.HandleSSE)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", ctx.HandleCategories)
		r.Post("/", ctx.HandleCreateCategory)
		r.Post("/{id}", ctx.HandleUpdateCategory)
		r.Post("/{id}/delete", ctx.HandleDeleteCategory)
	})

	r.Handle("/metrics", ctx.Metrics.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	zap.S().Infow("server starting", "addr", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		zap.S().Fatalw("server stopped", "error", err)
	}
}
