package http_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bau-portal/internal/application/dashboard"
	"github.com/jhoicas/bau-portal/internal/application/forms"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/application/session"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/infrastructure/api"
	"github.com/jhoicas/bau-portal/internal/infrastructure/storage"
)

type e2eNotifier struct{ got []ports.Notification }

func (n *e2eNotifier) Notify(x ports.Notification) { n.got = append(n.got, x) }

type yes struct{}

func (yes) Confirm(context.Context, string) bool { return true }

// e2eClient levanta la app en un puerto libre y arma sesión de producción + servicios.
func e2eClient(t *testing.T) (*session.Store, *api.BedarfService, *api.BetriebService) {
	t.Helper()
	f := newFixture(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = f.app.Listener(ln) }()
	t.Cleanup(func() { _ = f.app.Shutdown() })

	var store *session.Store
	tokens := api.TokenFunc(func(ctx context.Context) (string, error) { return store.Token(ctx) })
	client, err := api.NewClient("http://"+ln.Addr().String()+"/api/v1", 5*time.Second, tokens, nil)
	require.NoError(t, err)

	store, err = session.NewStore(context.Background(), session.Options{
		Storage: storage.NewMemoryStore(),
		Auth:    api.NewAuthService(client),
	})
	require.NoError(t, err)
	return store, api.NewBedarfService(client), api.NewBetriebService(client)
}

func TestE2E_LoginCrearBedarfYDashboard(t *testing.T) {
	ctx := context.Background()
	store, bedarfe, betriebe := e2eClient(t)

	require.NoError(t, store.Login(ctx, "holz@betrieb.ch", testPassword))
	require.True(t, store.IsBetrieb())
	assert.Equal(t, betriebA, store.Identity().BetriebID)

	notes := &e2eNotifier{}
	ctrl := forms.NewBedarfController(bedarfe, store, forms.Options{Notifier: notes, Confirmer: yes{}})
	require.NoError(t, ctrl.OpenCreate())
	form := ctrl.Form()
	form.Titel = "Zimmermann gesucht"
	form.Beschreibung = "Dachstuhl, Schalung"
	form.Adresse = "Bahnhofstrasse 1, Chur"
	form.DatumVon = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	form.DatumBis = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	form.ZimmermannAnzahl = 2
	require.NoError(t, ctrl.Submit(ctx))

	require.Len(t, ctrl.Items(), 1)
	created := ctrl.Items()[0]
	assert.Equal(t, "Holzbau Keller AG", created.BetriebName)
	assert.Equal(t, []string{"Dachstuhl", "Schalung"}, created.Qualifikationen)
	assert.Equal(t, "Bedarf erfolgreich erstellt", notes.got[len(notes.got)-1].Message)

	require.NoError(t, ctrl.ToggleStatus(ctx, created))
	assert.Equal(t, entity.BedarfInaktiv, ctrl.Items()[0].Status)

	stats := dashboard.NewAggregator(bedarfe, betriebe, nil).Stats(ctx)
	assert.False(t, stats.Fallback)
	assert.Equal(t, 1, stats.TotalBedarfe)
	assert.Equal(t, 0, stats.ActiveBedarfe)
	assert.Equal(t, 2, stats.TotalBetriebe)
	assert.Equal(t, 1, stats.MonthlyBedarfe)
}

func TestE2E_BetriebNoPuedeCrearBetriebeEnElServidor(t *testing.T) {
	ctx := context.Background()
	store, _, betriebe := e2eClient(t)
	require.NoError(t, store.Login(ctx, "holz@betrieb.ch", testPassword))

	// El controlador lo rechaza localmente; la llamada directa la rechaza el servidor.
	form := forms.BetriebForm{Name: "Neu AG", Email: "neu@ag.ch", Adresse: "Thusis"}
	_, err := betriebe.Create(ctx, form.CreateRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestE2E_LoginFallido_NoGuardaSesion(t *testing.T) {
	ctx := context.Background()
	store, _, _ := e2eClient(t)

	err := store.Login(ctx, "holz@betrieb.ch", "falsch")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, store.IsAuthenticated())

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestE2E_LogoutLimpiaYSiguienteLlamadaEs401(t *testing.T) {
	ctx := context.Background()
	store, bedarfe, _ := e2eClient(t)
	require.NoError(t, store.Login(ctx, "admin@bau.ch", testPassword))

	_, err := bedarfe.List(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	_, err = bedarfe.List(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
