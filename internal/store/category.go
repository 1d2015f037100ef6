package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nicolas0016/impostor/internal/game"
)

// ErrCategoryNotFound is returned when a category ID is unknown.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryStore manages word categories backed by a JSON file. All
// mutations are flushed to disk before they return.
type CategoryStore struct {
	path       string
	categories map[string]*game.Category
	mu         sync.RWMutex
}

// NewCategoryStore loads categories from path, seeding the default set
// when the file does not exist yet.
func NewCategoryStore(path string) (*CategoryStore, error) {
	s := &CategoryStore{
		path:       path,
		categories: make(map[string]*game.Category),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CategoryStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		for _, cat := range defaultCategories() {
			s.categories[cat.ID] = cat
		}
		return s.flush()
	}
	if err != nil {
		return fmt.Errorf("reading categories: %w", err)
	}
	var list []*game.Category
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parsing categories: %w", err)
	}
	for _, cat := range list {
		s.categories[cat.ID] = cat
	}
	return nil
}

// flush writes all categories to disk. Callers must hold the write lock
// or be the only goroutine with access.
func (s *CategoryStore) flush() error {
	list := make([]*game.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		list = append(list, cat)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

// All returns every category sorted by name.
func (s *CategoryStore) All() []*game.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*game.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		list = append(list, cat)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Get retrieves a category by ID
func (s *CategoryStore) Get(id string) (*game.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, exists := s.categories[id]
	return cat, exists
}

// ByIDs resolves a list of category IDs, skipping unknown ones.
func (s *CategoryStore) ByIDs(ids []string) []*game.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*game.Category, 0, len(ids))
	for _, id := range ids {
		if cat, ok := s.categories[id]; ok {
			list = append(list, cat)
		}
	}
	return list
}

// Create adds a new category and persists it.
func (s *CategoryStore) Create(name string, typ game.CategoryType, words []string, pairs []game.WordPair) (*game.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := &game.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		Words:     words,
		Pairs:     pairs,
		CreatedAt: time.Now(),
	}
	s.categories[cat.ID] = cat
	if err := s.flush(); err != nil {
		delete(s.categories, cat.ID)
		return nil, err
	}
	return cat, nil
}

// Update replaces the editable fields of an existing category.
func (s *CategoryStore) Update(id, name string, typ game.CategoryType, words []string, pairs []game.WordPair) (*game.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, exists := s.categories[id]
	if !exists {
		return nil, ErrCategoryNotFound
	}
	cat.Name = name
	cat.Type = typ
	cat.Words = words
	cat.Pairs = pairs
	if err := s.flush(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Delete removes a category and persists the change.
func (s *CategoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.categories[id]; !exists {
		return ErrCategoryNotFound
	}
	delete(s.categories, id)
	return s.flush()
}

// Save persists usage counters that the round engine bumps in place.
func (s *CategoryStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func defaultCategories() []*game.Category {
	now := time.Now()
	return []*game.Category{
		{
			ID:   uuid.NewString(),
			Name: "Animales",
			Type: game.CategoryMixed,
			Words: []string{
				"elefante", "jirafa", "delfín", "águila", "tortuga",
			},
			Pairs: []game.WordPair{
				{Word: "gato", Related: "perro"},
				{Word: "león", Related: "tigre"},
				{Word: "caballo", Related: "burro"},
			},
			CreatedAt: now,
		},
		{
			ID:   uuid.NewString(),
			Name: "Comida",
			Type: game.CategoryMixed,
			Words: []string{
				"paella", "tortilla", "gazpacho", "croqueta", "empanada",
			},
			Pairs: []game.WordPair{
				{Word: "pizza", Related: "pasta"},
				{Word: "taco", Related: "burrito"},
				{Word: "sopa", Related: "caldo"},
			},
			CreatedAt: now,
		},
		{
			ID:   uuid.NewString(),
			Name: "Lugares",
			Type: game.CategorySingle,
			Words: []string{
				"playa", "montaña", "bosque", "desierto", "ciudad",
				"pueblo", "isla", "río",
			},
			CreatedAt: now,
		},
		{
			ID:   uuid.NewString(),
			Name: "Deportes",
			Type: game.CategorySingle,
			Words: []string{
				"fútbol", "baloncesto", "tenis", "natación", "ciclismo",
				"atletismo", "boxeo",
			},
			CreatedAt: now,
		},
	}
}
