// Package memdb implementa los repositorios del API de desarrollo en memoria.
package memdb

import (
	"fmt"
	"sync"

	"github.com/jhoicas/bau-portal/internal/domain"
)

// table filas indexadas por id que conservan el orden de alta. Guarda y
// devuelve copias.
type table[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]*T
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: map[string]*T{}, clone: clone}
}

func (t *table[T]) insert(id string, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("id duplicado %q", id)
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id string) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return t.clone(row)
}

func (t *table[T]) replace(id string, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.rows[id] = t.clone(row)
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.drop(id)
	return nil
}

// removeWhere borra las filas que cumplen match.
func (t *table[T]) removeWhere(match func(*T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ids []string
	for _, id := range t.order {
		if match(t.rows[id]) {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		t.drop(id)
	}
	return len(ids)
}

// drop requiere el lock de escritura.
func (t *table[T]) drop(id string) {
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// scan copias de las filas que cumplen match, en orden de alta.
func (t *table[T]) scan(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}
