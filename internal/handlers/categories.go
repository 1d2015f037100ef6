package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nicolas0016/impostor/internal/game"
	"github.com/Nicolas0016/impostor/internal/store"
)

// HandleCategories displays the category editor
func (ctx *Context) HandleCategories(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Categories []*game.Category
	}{
		Categories: ctx.Categories.All(),
	}
	ctx.Templates.ExecuteTemplate(w, "categories.html", data)
}

// HandleCreateCategory creates a category from the editor form
func (ctx *Context) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	name, typ, words, pairs, err := parseCategoryForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cat, err := ctx.Categories.Create(name, typ, words, pairs)
	if err != nil {
		zap.S().Errorw("failed to create category", "error", err)
		http.Error(w, "Could not save category", http.StatusInternalServerError)
		return
	}
	zap.S().Infow("category created", "id", cat.ID, "name", cat.Name)

	w.Header().Set("HX-Redirect", "/categories")
	w.WriteHeader(http.StatusOK)
}

// HandleUpdateCategory updates an existing category
func (ctx *Context) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name, typ, words, pairs, err := parseCategoryForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := ctx.Categories.Update(id, name, typ, words, pairs); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			http.NotFound(w, r)
			return
		}
		zap.S().Errorw("failed to update category", "id", id, "error", err)
		http.Error(w, "Could not save category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Redirect", "/categories")
	w.WriteHeader(http.StatusOK)
}

// HandleDeleteCategory removes a category
func (ctx *Context) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := ctx.Categories.Delete(id); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			http.NotFound(w, r)
			return
		}
		zap.S().Errorw("failed to delete category", "id", id, "error", err)
		http.Error(w, "Could not delete category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Redirect", "/categories")
	w.WriteHeader(http.StatusOK)
}

// parseCategoryForm reads the shared create/update form. Words come one
// per line; pairs as "word=related" lines.
func parseCategoryForm(r *http.Request) (string, game.CategoryType, []string, []game.WordPair, error) {
	r.ParseForm()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return "", "", nil, nil, errors.New("name is required")
	}

	typ := game.CategoryType(r.FormValue("type"))
	if typ != game.CategorySingle && typ != game.CategoryMixed {
		return "", "", nil, nil, errors.New("invalid category type")
	}

	var words []string
	for _, line := range strings.Split(r.FormValue("words"), "\n") {
		if w := strings.TrimSpace(line); w != "" {
			words = append(words, w)
		}
	}

	var pairs []game.WordPair
	for _, line := range strings.Split(r.FormValue("pairs"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word, related, found := strings.Cut(line, "=")
		if !found {
			return "", "", nil, nil, errors.New("pairs must use word=related format")
		}
		pairs = append(pairs, game.WordPair{
			Word:    strings.TrimSpace(word),
			Related: strings.TrimSpace(related),
		})
	}

	if len(words) == 0 && len(pairs) == 0 {
		return "", "", nil, nil, errors.New("category needs at least one word or pair")
	}
	return name, typ, words, pairs, nil
}
