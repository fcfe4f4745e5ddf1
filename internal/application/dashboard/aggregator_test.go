package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bau-portal/internal/application/dashboard"
	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// Los fakes embeben la interfaz: solo List se implementa.

type bedarfLister struct {
	ports.BedarfAPI
	items []dto.Bedarf
	err   error
}

func (b bedarfLister) List(context.Context, *dto.BedarfSearchParams) (*dto.Page[dto.Bedarf], error) {
	if b.err != nil {
		return nil, b.err
	}
	p := dto.NewPage(b.items, 0, len(b.items), int64(len(b.items)))
	return &p, nil
}

type betriebLister struct {
	ports.BetriebAPI
	items []dto.Betrieb
	err   error
}

func (b betriebLister) List(context.Context, *dto.BetriebSearchParams) (*dto.Page[dto.Betrieb], error) {
	if b.err != nil {
		return nil, b.err
	}
	p := dto.NewPage(b.items, 0, len(b.items), int64(len(b.items)))
	return &p, nil
}

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func bedarf(status entity.BedarfStatus, created time.Time) dto.Bedarf {
	return dto.Bedarf{Status: status, CreatedAt: dto.Timestamp{Time: created}}
}

func TestStats_CuentaActivosTotalesYMensuales(t *testing.T) {
	items := []dto.Bedarf{
		bedarf(entity.BedarfAktiv, now.Add(-24*time.Hour)),
		bedarf(entity.BedarfAktiv, now.Add(-40*24*time.Hour)),
		bedarf(entity.BedarfInaktiv, now.Add(-29*24*time.Hour)),
		bedarf(entity.BedarfAbgeschlossen, time.Time{}),
	}
	agg := dashboard.NewAggregator(
		bedarfLister{items: items},
		betriebLister{items: make([]dto.Betrieb, 3)},
		nil,
	).WithClock(func() time.Time { return now })

	got := agg.Stats(context.Background())

	assert.Equal(t, dto.DashboardStats{
		ActiveBedarfe:  2,
		TotalBedarfe:   4,
		TotalBetriebe:  3,
		MonthlyBedarfe: 2,
	}, got)
}

func TestStats_LimiteDe30DiasInclusivo(t *testing.T) {
	items := []dto.Bedarf{bedarf(entity.BedarfAktiv, now.Add(-30*24*time.Hour))}
	got := dashboard.Compute(items, nil, now)
	assert.Equal(t, 1, got.MonthlyBedarfe)
}

func TestStats_FalloBedarfe_ValoresDeReserva(t *testing.T) {
	agg := dashboard.NewAggregator(bedarfLister{err: errors.New("503")}, betriebLister{}, nil)
	got := agg.Stats(context.Background())

	assert.Equal(t, dashboard.Fallback, got)
	assert.Equal(t, 12, got.ActiveBedarfe)
	assert.Equal(t, 28, got.TotalBedarfe)
	assert.Equal(t, 8, got.TotalBetriebe)
	assert.Equal(t, 8, got.MonthlyBedarfe)
	assert.True(t, got.Fallback)
}

func TestStats_FalloBetriebe_ValoresDeReserva(t *testing.T) {
	agg := dashboard.NewAggregator(bedarfLister{}, betriebLister{err: errors.New("timeout")}, nil)
	assert.Equal(t, dashboard.Fallback, agg.Stats(context.Background()))
}

func TestStats_ListasVacias(t *testing.T) {
	agg := dashboard.NewAggregator(bedarfLister{}, betriebLister{}, nil)
	assert.Equal(t, dto.DashboardStats{}, agg.Stats(context.Background()))
}
