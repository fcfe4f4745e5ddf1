package dto

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// queryBuilder agrega parámetros omitiendo los ausentes.
type queryBuilder struct {
	v url.Values
}

func (q queryBuilder) str(key, val string) {
	if val != "" {
		q.v.Set(key, val)
	}
}

func (q queryBuilder) int(key string, val *int) {
	if val != nil {
		q.v.Set(key, strconv.Itoa(*val))
	}
}

func (q queryBuilder) decimal(key string, val *decimal.Decimal) {
	if val != nil {
		q.v.Set(key, val.String())
	}
}

func (q queryBuilder) list(key string, vals []string) {
	for _, s := range vals {
		q.v.Add(key, s)
	}
}
