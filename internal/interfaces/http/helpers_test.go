package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bau-portal/internal/application/auth"
	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/infrastructure/memdb"
	apphttp "github.com/jhoicas/bau-portal/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bau-portal/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "bau-portal-test"
	testExpMin    = 60
	testPassword  = "geheim123"

	betriebA = "123e4567-e89b-12d3-a456-426614174001"
	betriebB = "123e4567-e89b-12d3-a456-426614174002"
)

type fixture struct {
	app      *fiber.App
	betriebe *memdb.BetriebRepo
	bedarfe  *memdb.BedarfRepo
}

// newFixture app con dos Betriebe y dos usuarios: admin@bau.ch y holz@betrieb.ch (Betrieb A).
func newFixture(t *testing.T) *fixture {
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

	authUC := auth.NewAuthUseCase(users, betriebe, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
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
		JWTSecret: testJWTSecret,
	})
	return &fixture{app: app, betriebe: betriebe, bedarfe: bedarfe}
}

// tokenFor genera un Bearer JWT con el rol y Betrieb indicados.
func tokenFor(t *testing.T, role entity.Role, betriebID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		UserID:    "00000000-0000-0000-0000-000000000001",
		Email:     "test@bau.ch",
		Role:      string(role),
		BetriebID: betriebID,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func adminToken(t *testing.T) string   { return tokenFor(t, entity.RoleAdmin, "") }
func betriebToken(t *testing.T) string { return tokenFor(t, entity.RoleBetrieb, betriebA) }

// doRequest lanza la petición contra la app; body se serializa como JSON.
func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func fieldNames(errs []dto.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}
