package usecase

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/bau-portal/internal/application/dto"
)

// Límites de paginación.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest página pedida (base 0) y orden "campo" o "campo,asc|desc".
type PageRequest struct {
	Page int
	Size int
	Sort string
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// comparator orden ascendente de un campo.
type comparator[T any] func(a, b T) int

// paginate ordena items según p.Sort (campos permitidos en fields) y recorta la página.
func paginate[T any](items []T, p PageRequest, fields map[string]comparator[T]) (*dto.Page[T], error) {
	p = p.normalize()
	sorted := false
	if p.Sort != "" {
		field, dir, _ := strings.Cut(p.Sort, ",")
		less, ok := fields[strings.TrimSpace(field)]
		if !ok {
			var errs fieldErrors
			errs.add("sort", p.Sort, fmt.Sprintf("Unbekanntes Sortierfeld %q", field))
			return nil, errs.err()
		}
		desc := strings.EqualFold(strings.TrimSpace(dir), "desc")
		slices.SortStableFunc(items, func(a, b T) int {
			if desc {
				return less(b, a)
			}
			return less(a, b)
		})
		sorted = true
	}

	total := len(items)
	from := min(p.Page*p.Size, total)
	to := min(from+p.Size, total)
	page := dto.NewPage(items[from:to], p.Page, p.Size, int64(total))
	if sorted {
		page.Sort = dto.SortInfo{Sorted: true}
		page.Pageable.Sort = page.Sort
	}
	return &page, nil
}

func byString[T any](get func(T) string) comparator[T] {
	return func(a, b T) int { return cmp.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))) }
}
