package assoc

import (
	"context"
	"sync"

	"shopcat/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Engine owns the in-memory association map and its persistence.
//
// Store failures never propagate to callers: a failed load degrades to an
// empty map and a failed save keeps the in-memory state — both are logged.
// The map is client-derived convenience data with no authoritative source,
// so there is nothing to recover from anyway.
//
// The mutex replaces the event-loop serialization the original dashboard
// relied on; handlers and the reconcile cron touch the map concurrently.
type Engine struct {
	store Store

	mu sync.Mutex
	m  Map
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, m: make(Map)}
}

// Load replaces the in-memory map with the persisted one. On read failure
// the engine starts from an empty map.
func (e *Engine) Load(ctx context.Context) {
	m, err := e.store.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("assoc: load failed, starting with empty map")
		m = make(Map)
	}
	e.mu.Lock()
	e.m = m
	e.mu.Unlock()
}

// Snapshot returns a copy of the current map.
func (e *Engine) Snapshot() Map {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.Clone()
}

// Link records a manual association, overwriting whatever was there.
func (e *Engine) Link(ctx context.Context, categoryID, brandID uuid.UUID) {
	e.mu.Lock()
	e.m[categoryID] = brandID
	e.persistLocked(ctx)
	e.mu.Unlock()
}

// LinkIfAbsent records an inherited association (category created under an
// active brand context) without displacing an existing entry.
func (e *Engine) LinkIfAbsent(ctx context.Context, categoryID, brandID uuid.UUID) {
	e.mu.Lock()
	if _, ok := e.m[categoryID]; !ok {
		e.m[categoryID] = brandID
		e.persistLocked(ctx)
	}
	e.mu.Unlock()
}

// Unlink removes a single association by explicit user action.
func (e *Engine) Unlink(ctx context.Context, categoryID uuid.UUID) {
	e.mu.Lock()
	if _, ok := e.m[categoryID]; ok {
		delete(e.m, categoryID)
		e.persistLocked(ctx)
	}
	e.mu.Unlock()
}

// RemoveBrand cascades a brand deletion: every category pointing at the
// brand loses its association. Returns the number of entries removed.
func (e *Engine) RemoveBrand(ctx context.Context, brandID uuid.UUID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := 0
	for cat, b := range e.m {
		if b == brandID {
			delete(e.m, cat)
			removed++
		}
	}
	if removed > 0 {
		e.persistLocked(ctx)
	}
	return removed
}

// Recompute runs the inference pass over the current collections and merges
// the result into empty slots only. Called after every category or product
// mutation and by the periodic reconciler. Returns entries added.
func (e *Engine) Recompute(ctx context.Context, products []model.Product) int {
	inferred := Infer(products)
	e.mu.Lock()
	defer e.mu.Unlock()
	added := e.m.MergeMissing(inferred)
	if added > 0 {
		e.persistLocked(ctx)
	}
	return added
}

// CategorySet answers the closure membership query against the live map.
func (e *Engine) CategorySet(brandID uuid.UUID, categories []model.Category, products []model.Product) map[uuid.UUID]bool {
	return CategorySetForBrand(e.Snapshot(), brandID, categories, products)
}

// TopLevelByBrand lists top-level categories for a brand (with the
// all-top-level fallback).
func (e *Engine) TopLevelByBrand(brandID uuid.UUID, categories []model.Category, products []model.Product) []model.Category {
	return CategoriesByBrand(e.Snapshot(), brandID, categories, products)
}

// Children lists the subcategories of parentID, brand-filtered.
func (e *Engine) Children(parentID, brandID uuid.UUID, categories []model.Category, products []model.Product) []model.Category {
	return Subcategories(e.Snapshot(), parentID, brandID, categories, products)
}

// persistLocked writes through to the store. Callers hold e.mu.
func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.store.Save(ctx, e.m); err != nil {
		log.Error().Err(err).Int("entries", len(e.m)).Msg("assoc: save failed")
	}
}
