package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

func pageRequest(c *fiber.Ctx) usecase.PageRequest {
	return usecase.PageRequest{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", usecase.DefaultPageSize),
		Sort: c.Query("sort"),
	}
}

// bedarfFilter lee los filtros del listado; qualifikationen puede repetirse.
func bedarfFilter(c *fiber.Ctx) (repository.BedarfFilter, []dto.FieldError) {
	f := repository.BedarfFilter{
		Titel:    c.Query("titel"),
		Standort: c.Query("standort"),
		Status:   entity.BedarfStatus(c.Query("status")),
	}
	for _, q := range c.Context().QueryArgs().PeekMulti("qualifikationen") {
		f.Qualifikationen = append(f.Qualifikationen, string(q))
	}
	var fields []dto.FieldError
	f.MinStundenlohn = queryDecimal(c, "minStundenlohn", &fields)
	f.MaxStundenlohn = queryDecimal(c, "maxStundenlohn", &fields)
	return f, fields
}

func betriebFilter(c *fiber.Ctx) repository.BetriebFilter {
	return repository.BetriebFilter{
		Name:   c.Query("name"),
		Status: entity.BetriebStatus(c.Query("status")),
	}
}

func queryDecimal(c *fiber.Ctx, key string, fields *[]dto.FieldError) *decimal.Decimal {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*fields = append(*fields, dto.FieldError{Field: key, RejectedValue: raw, Message: "Keine gültige Zahl"})
		return nil
	}
	return &d
}
