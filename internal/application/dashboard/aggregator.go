// Package dashboard calcula los contadores del panel principal.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

// monthlyWindow ventana de "Bedarfe del mes".
const monthlyWindow = 30 * 24 * time.Hour

// Fallback valores de reserva cuando alguna consulta falla.
var Fallback = dto.DashboardStats{
	ActiveBedarfe:  12,
	TotalBedarfe:   28,
	TotalBetriebe:  8,
	MonthlyBedarfe: 8,
	Fallback:       true,
}

// Aggregator consulta ambos listados en paralelo y resume.
type Aggregator struct {
	bedarfe  ports.BedarfAPI
	betriebe ports.BetriebAPI
	log      *logger.Logger
	now      func() time.Time
}

// NewAggregator construye el agregador. log puede ser nil.
func NewAggregator(bedarfe ports.BedarfAPI, betriebe ports.BetriebAPI, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{
		bedarfe:  bedarfe,
		betriebe: betriebe,
		log:      log.Component("dashboard"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj; para tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Stats nunca devuelve error: ante cualquier fallo registra y usa Fallback.
func (a *Aggregator) Stats(ctx context.Context) dto.DashboardStats {
	var (
		bedarfe  []dto.Bedarf
		betriebe []dto.Betrieb
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := a.bedarfe.List(gctx, nil)
		if err != nil {
			return err
		}
		bedarfe = page.Content
		return nil
	})
	g.Go(func() error {
		page, err := a.betriebe.List(gctx, nil)
		if err != nil {
			return err
		}
		betriebe = page.Content
		return nil
	})
	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("error cargando datos del dashboard; se usan valores de reserva")
		return Fallback
	}
	return Compute(bedarfe, betriebe, a.now())
}

// Compute cuenta activos, totales y creados en los últimos 30 días respecto a now.
func Compute(bedarfe []dto.Bedarf, betriebe []dto.Betrieb, now time.Time) dto.DashboardStats {
	since := now.Add(-monthlyWindow)
	stats := dto.DashboardStats{
		TotalBedarfe:  len(bedarfe),
		TotalBetriebe: len(betriebe),
	}
	for _, b := range bedarfe {
		if b.Status == entity.BedarfAktiv {
			stats.ActiveBedarfe++
		}
		if !b.CreatedAt.IsZero() && !b.CreatedAt.Before(since) {
			stats.MonthlyBedarfe++
		}
	}
	return stats
}
