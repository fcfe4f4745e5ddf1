package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bau-portal/internal/application/auth"
	"github.com/jhoicas/bau-portal/internal/application/dashboard"
	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/session"
	"github.com/jhoicas/bau-portal/internal/application/theme"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/infrastructure/api"
	"github.com/jhoicas/bau-portal/internal/infrastructure/memdb"
	"github.com/jhoicas/bau-portal/internal/infrastructure/storage"
	"github.com/jhoicas/bau-portal/internal/interfaces/cli"
	apphttp "github.com/jhoicas/bau-portal/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "cli-test-secret"
	testPassword = "geheim123"
	betriebA     = "123e4567-e89b-12d3-a456-426614174001"
	betriebB     = "123e4567-e89b-12d3-a456-426614174002"
)

// startServer levanta el API de desarrollo con dos Betriebe y dos usuarios.
func startServer(t *testing.T) string {
	t.Helper()
	users := memdb.NewUserRepository()
	betriebe := memdb.NewBetriebRepository()
	bedarfe := memdb.NewBedarfRepository()

	now := time.Now()
	require.NoError(t, betriebe.Create(&entity.Betrieb{
		ID: betriebA, Name: "Holzbau Keller AG", Email: "info@keller.ch",
		Adresse: "Chur", Status: entity.BetriebAktiv, CreatedAt: now,
	}))
	require.NoError(t, betriebe.Create(&entity.Betrieb{
		ID: betriebB, Name: "Zimmerei Brunner GmbH", Email: "info@brunner.ch",
		Adresse: "Davos", Status: entity.BetriebAktiv, CreatedAt: now.Add(time.Second),
	}))
	authUC := auth.NewAuthUseCase(users, betriebe, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})
	_, err := authUC.RegisterUser(dto.RegisterRequest{Email: "admin@bau.ch", Password: testPassword, Role: entity.RoleAdmin})
	require.NoError(t, err)
	_, err = authUC.RegisterUser(dto.RegisterRequest{
		Email: "holz@betrieb.ch", Password: testPassword, Role: entity.RoleBetrieb, BetriebID: betriebA,
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler, DisableStartupMessage: true})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		BedarfUC:  usecase.NewBedarfUseCase(bedarfe, betriebe),
		BetriebUC: usecase.NewBetriebUseCase(betriebe, bedarfe),
		JWTSecret: testSecret,
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String() + "/api/v1"
}

type harness struct {
	deps *cli.Deps
	nav  bytes.Buffer
}

// newHarness arma las dependencias del CLI contra el servidor de prueba.
func newHarness(t *testing.T, devMode bool) *harness {
	t.Helper()
	ctx := context.Background()
	base := startServer(t)
	kv := storage.NewMemoryStore()

	h := &harness{}
	var store *session.Store
	tokens := api.TokenFunc(func(ctx context.Context) (string, error) { return store.Token(ctx) })
	client, err := api.NewClient(base, 5*time.Second, tokens, nil)
	require.NoError(t, err)

	nav := cli.NewNavigator(&h.nav)
	store, err = session.NewStore(ctx, session.Options{
		DevMode:     devMode,
		Storage:     kv,
		Auth:        api.NewAuthService(client),
		Navigator:   nav,
		TokenSecret: testSecret,
	})
	require.NoError(t, err)
	th, err := theme.NewService(ctx, kv, nil)
	require.NoError(t, err)

	bedarfe, betriebe := api.NewBedarfService(client), api.NewBetriebService(client)
	h.deps = &cli.Deps{
		Session:        store,
		Bedarfe:        bedarfe,
		Betriebe:       betriebe,
		Theme:          th,
		Dashboard:      dashboard.NewAggregator(bedarfe, betriebe, nil),
		Navigator:      nav,
		RequestTimeout: 5 * time.Second,
	}
	return h
}

type result struct {
	code        int
	out, errOut string
}

// run ejecuta el CLI con stdin opcional.
func (h *harness) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	h.deps.In = strings.NewReader(stdin)
	h.deps.Out = &out
	h.deps.Err = &errOut
	code := cli.Run(context.Background(), h.deps, args)
	return result{code: code, out: out.String(), errOut: errOut.String()}
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	r := h.run(t, "", "login", "--email", email, "--password", testPassword)
	require.Equal(t, 0, r.code, r.errOut)
}

func (h *harness) bedarfe(t *testing.T) []dto.Bedarf {
	t.Helper()
	r := h.run(t, "", "bedarfe", "list", "-o", "json")
	require.Equal(t, 0, r.code, r.errOut)
	var items []dto.Bedarf
	require.NoError(t, json.Unmarshal([]byte(r.out), &items))
	return items
}

func createArgs(titel string, extra ...string) []string {
	args := []string{
		"bedarfe", "create", "--titel", titel, "--adresse", "Bahnhofstrasse 1, Chur",
		"--von", "2025-03-01", "--bis", "2025-03-31", "--zimmermann", "2",
		"--beschreibung", "Dachstuhl, Schalung",
	}
	return append(args, extra...)
}

// ─── Sesión ───────────────────────────────────────────────────────────────────

func TestRun_SinSesion_RedirigeAlLogin(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "bedarfe", "list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Nicht angemeldet")
}

func TestLogin_ConFlags(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "login", "--email", "holz@betrieb.ch", "--password", testPassword)
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.out, "Angemeldet als holz (BETRIEB)")

	r = h.run(t, "", "whoami", "-o", "json")
	require.Equal(t, 0, r.code)
	var w struct {
		Authenticated bool             `json:"authenticated"`
		User          *entity.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.out), &w))
	assert.True(t, w.Authenticated)
	assert.Equal(t, betriebA, w.User.BetriebID)
}

func TestLogin_Interactivo(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "admin@bau.ch\n"+testPassword+"\n", "login")
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "E-Mail: ")
	assert.Contains(t, r.errOut, "Passwort: ")
	assert.True(t, h.deps.Session.IsAdmin())
}

func TestLogin_PasswortFalsch(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "login", "--email", "holz@betrieb.ch", "--password", "falsch")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Ungültige E-Mail oder Passwort")
	assert.False(t, h.deps.Session.IsAuthenticated())
}

func TestLogin_YaAutenticado_RedirigeAlDashboard(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	r := h.run(t, "", "login", "--email", "admin@bau.ch", "--password", testPassword)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Bereits angemeldet")
	assert.True(t, h.deps.Session.IsBetrieb())
}

func TestLogout_LimpiaYSugiereLogin(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")

	r := h.run(t, "", "logout")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "Abgemeldet")
	assert.Contains(t, h.nav.String(), "Weiter mit: bau login")
	assert.Equal(t, "/login", h.deps.Navigator.Last())
	assert.False(t, h.deps.Session.IsAuthenticated())
}

func TestWhoami_SinSesion(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "whoami")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "Nicht angemeldet")
}

func TestOutput_FormatoDesconocido(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "whoami", "-o", "yaml")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "yaml")
}

// ─── Bedarfe ──────────────────────────────────────────────────────────────────

func TestBedarfe_CrearYListar(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")

	r := h.run(t, "", createArgs("Zimmermann gesucht", "--stundenlohn", "38.50")...)
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "✓ Bedarf erfolgreich erstellt")

	items := h.bedarfe(t)
	require.Len(t, items, 1)
	assert.Equal(t, betriebA, items[0].BetriebID)
	assert.Equal(t, "Holzbau Keller AG", items[0].BetriebName)
	assert.Equal(t, 2, items[0].AnzahlArbeiter)
	assert.Equal(t, []string{"Dachstuhl", "Schalung"}, items[0].Qualifikationen)
	require.NotNil(t, items[0].Stundenlohn)
	assert.Equal(t, "38.5", items[0].Stundenlohn.String())

	r = h.run(t, "", "bedarfe", "list")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "TITEL")
	assert.Contains(t, r.out, "Zimmermann gesucht")
	assert.Contains(t, r.out, "CHF 38.50")
}

func TestBedarfe_CrearInvalido_MuestraCampos(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")

	r := h.run(t, "", "bedarfe", "create", "--adresse", "Chur", "--von", "2025-03-10", "--bis", "2025-03-01")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "✗ Bitte füllen Sie alle erforderlichen Felder korrekt aus")
	assert.Contains(t, r.errOut, "titel:")
	assert.Contains(t, r.errOut, "datumBis:")
	assert.NotContains(t, r.errOut, "Fehler:")
	assert.Empty(t, h.bedarfe(t))
}

func TestBedarfe_FechaMalFormada(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	r := h.run(t, "", createArgs("Zimmermann gesucht", "--von", "01.03.2025")...)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "YYYY-MM-DD")
}

func TestBedarfe_ToggleYFiltroEstado(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	require.Equal(t, 0, h.run(t, "", createArgs("Zimmermann gesucht")...).code)
	id := h.bedarfe(t)[0].ID

	r := h.run(t, "", "bedarfe", "toggle", id)
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "Bedarf deaktiviert")

	r = h.run(t, "", "bedarfe", "list", "--status", "aktiv", "-o", "json")
	require.Equal(t, 0, r.code)
	assert.JSONEq(t, "[]", r.out)
}

func TestBedarfe_OtroBetrieb_NoEditable(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "admin@bau.ch")
	r := h.run(t, "", createArgs("Holzbauer Davos", "--betrieb", betriebB)...)
	require.Equal(t, 0, r.code, r.errOut)
	id := h.bedarfe(t)[0].ID
	require.Equal(t, 0, h.run(t, "", "logout").code)

	h.login(t, "holz@betrieb.ch")
	r = h.run(t, "", "bedarfe", "update", id, "--titel", "Übernommen")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Sie können nur Bedarfe Ihres eigenen Betriebs bearbeiten")
}

func TestBedarfe_UpdateSoloCamposIndicados(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	require.Equal(t, 0, h.run(t, "", createArgs("Zimmermann gesucht")...).code)
	id := h.bedarfe(t)[0].ID

	r := h.run(t, "", "bedarfe", "update", id, "--holzbau", "1")
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "Bedarf erfolgreich aktualisiert")

	b := h.bedarfe(t)[0]
	assert.Equal(t, "Zimmermann gesucht", b.Titel)
	assert.Equal(t, 3, b.AnzahlArbeiter)
}

func TestBedarfe_DeleteConfirmacion(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	require.Equal(t, 0, h.run(t, "", createArgs("Zimmermann gesucht")...).code)
	id := h.bedarfe(t)[0].ID

	r := h.run(t, "n\n", "bedarfe", "delete", id)
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.errOut, "wirklich löschen?")
	assert.Contains(t, r.errOut, "Abgebrochen")
	assert.Len(t, h.bedarfe(t), 1)

	r = h.run(t, "", "bedarfe", "delete", id, "--yes")
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "Bedarf erfolgreich gelöscht")
	assert.Empty(t, h.bedarfe(t))
}

func TestBedarfe_NoEncontrado(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	r := h.run(t, "", "bedarfe", "get", "gibt-es-nicht", "-o", "json")
	assert.Equal(t, 1, r.code)
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.errOut), &obj))
	assert.EqualValues(t, 404, obj["status"])
}

// ─── Betriebe ─────────────────────────────────────────────────────────────────

func TestBetriebe_NoAdmin_Rechazado(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	r := h.run(t, "", "betriebe", "create", "--name", "Neu AG", "--adresse", "Thusis", "--email", "neu@ag.ch")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Nur Administratoren können neue Betriebe erstellen")
}

func TestBetriebe_OrdenAleman(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "admin@bau.ch")
	r := h.run(t, "", "betriebe", "create", "--name", "Ähre Bau AG", "--adresse", "Ilanz", "--email", "info@aehre.ch")
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "Betrieb erfolgreich erstellt")

	r = h.run(t, "", "betriebe", "list")
	require.Equal(t, 0, r.code)
	lines := strings.Split(strings.TrimSpace(r.out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "Ähre Bau AG")
	assert.Contains(t, lines[2], "Holzbau Keller AG")
	assert.Contains(t, lines[3], "Zimmerei Brunner GmbH")
}

func TestBetriebe_ToggleYDeleteEnCascada(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "admin@bau.ch")
	require.Equal(t, 0, h.run(t, "", createArgs("Holzbauer Davos", "--betrieb", betriebB)...).code)

	r := h.run(t, "", "betriebe", "toggle", betriebB)
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.errOut, "Betrieb erfolgreich deaktiviert")

	r = h.run(t, "", "betriebe", "delete", betriebB, "-y")
	require.Equal(t, 0, r.code, r.errOut)
	assert.Empty(t, h.bedarfe(t))
}

// ─── Dashboard, tema y modo desarrollo ────────────────────────────────────────

func TestDashboard_Contadores(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "holz@betrieb.ch")
	require.Equal(t, 0, h.run(t, "", createArgs("Zimmermann gesucht")...).code)

	r := h.run(t, "", "dashboard", "-o", "json")
	require.Equal(t, 0, r.code)
	var stats dto.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(r.out), &stats))
	assert.Equal(t, dto.DashboardStats{ActiveBedarfe: 1, TotalBedarfe: 1, TotalBetriebe: 2, MonthlyBedarfe: 1}, stats)
}

func TestTheme_SetYToggle(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "theme", "set", "dark")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "Theme: dark (dunkel)")

	r = h.run(t, "", "theme", "toggle")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "Theme: light (hell)")

	r = h.run(t, "", "theme", "set", "sepia")
	assert.Equal(t, 1, r.code)
}

func TestRole_ProduccionNoDisponible(t *testing.T) {
	h := newHarness(t, false)
	h.login(t, "admin@bau.ch")
	r := h.run(t, "", "role", "set", "BETRIEB")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Nur im Entwicklungsmodus verfügbar")
}

func TestRole_DevMode_OverrideYAbgemeldet(t *testing.T) {
	h := newHarness(t, true)
	h.login(t, "admin@bau.ch")

	r := h.run(t, "", "role", "set", "betrieb")
	require.Equal(t, 0, r.code, r.errOut)
	assert.Contains(t, r.out, "Lokale Rolle: BETRIEB")

	r = h.run(t, "", "betriebe", "create", "--name", "Neu AG", "--adresse", "Thusis", "--email", "neu@ag.ch")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Nur Administratoren")

	require.Equal(t, 0, h.run(t, "", "role", "set", "abgemeldet").code)
	r = h.run(t, "", "bedarfe", "list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errOut, "Nicht angemeldet")
	assert.Equal(t, 0, h.run(t, "", "dashboard").code)

	require.Equal(t, 0, h.run(t, "", "role", "clear").code)
	assert.Equal(t, 0, h.run(t, "", "bedarfe", "list").code)
}

func TestAbout_SinSesion(t *testing.T) {
	h := newHarness(t, false)
	r := h.run(t, "", "about")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "Bau-Portal")
}
