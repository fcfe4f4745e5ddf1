package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

func TestListBetriebe_BetriebPuedeLeer(t *testing.T) {
	f := newFixture(t)
	resp := doRequest(t, f.app, http.MethodGet, "/api/v1/betriebe?sort=name,desc", betriebToken(t), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := decode[dto.Page[dto.Betrieb]](t, resp)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Zimmerei Brunner GmbH", page.Content[0].Name)
	assert.True(t, page.Sort.Sorted)
}

func TestListBetriebe_FiltroNombreYEstado(t *testing.T) {
	f := newFixture(t)
	resp := doRequest(t, f.app, http.MethodGet, "/api/v1/betriebe?name=keller&status=AKTIV", adminToken(t), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := decode[dto.Page[dto.Betrieb]](t, resp)
	require.Len(t, page.Content, 1)
	assert.Equal(t, betriebA, page.Content[0].ID)
}

func TestBetriebe_EscrituraSoloAdmin(t *testing.T) {
	f := newFixture(t)
	tok := betriebToken(t)
	in := dto.BetriebCreateRequest{Name: "Neu AG", Email: "neu@ag.ch", Adresse: "Thusis"}

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/betriebe"},
		{http.MethodPut, "/api/v1/betriebe/" + betriebA},
		{http.MethodPatch, "/api/v1/betriebe/" + betriebA + "/status"},
		{http.MethodDelete, "/api/v1/betriebe/" + betriebA},
	}
	for _, tc := range cases {
		resp := doRequest(t, f.app, tc.method, tc.path, tok, in)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
	b, err := f.betriebe.GetByID(betriebA)
	require.NoError(t, err)
	assert.NotNil(t, b, "el Betrieb no debe haberse borrado")
}

func TestCreateBetrieb_Admin_Retorna201(t *testing.T) {
	f := newFixture(t)
	resp := doRequest(t, f.app, http.MethodPost, "/api/v1/betriebe", adminToken(t),
		dto.BetriebCreateRequest{Name: "Neu AG", Email: "neu@ag.ch", Telefon: "+41 81 000 00 00", Adresse: "Thusis"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decode[dto.Betrieb](t, resp)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.BetriebAktiv, out.Status)
	assert.Equal(t, "+41 81 000 00 00", out.Telefon)
}

func TestCreateBetrieb_Invalido_Retorna400(t *testing.T) {
	f := newFixture(t)
	resp := doRequest(t, f.app, http.MethodPost, "/api/v1/betriebe", adminToken(t),
		dto.BetriebCreateRequest{Name: "N", Email: "kein-mail", Telefon: "abc"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.ElementsMatch(t, []string{"name", "email", "telefon", "adresse"},
		fieldNames(decode[dto.ErrorResponse](t, resp).FieldErrors))
}

func TestUpdateBetrieb_SoloCamposInformados(t *testing.T) {
	f := newFixture(t)
	resp := doRequest(t, f.app, http.MethodPut, "/api/v1/betriebe/"+betriebA, adminToken(t),
		dto.BetriebUpdateRequest{Telefon: "081 123 45 67"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.Betrieb](t, resp)
	assert.Equal(t, "Holzbau Keller AG", out.Name)
	assert.Equal(t, "081 123 45 67", out.Telefon)
}

func TestUpdateBetriebStatus(t *testing.T) {
	f := newFixture(t)
	path := "/api/v1/betriebe/" + betriebA + "/status"

	resp := doRequest(t, f.app, http.MethodPatch, path, adminToken(t), dto.BetriebStatusUpdate{Status: entity.BetriebInaktiv})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.BetriebInaktiv, decode[dto.Betrieb](t, resp).Status)

	resp = doRequest(t, f.app, http.MethodPatch, path, adminToken(t), dto.BetriebStatusUpdate{Status: "GESPERRT"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteBetrieb_BorraSusBedarfe(t *testing.T) {
	f := newFixture(t)
	createBedarf(t, f, betriebToken(t), bedarfRequest("Zimmermann Chur"))

	resp := doRequest(t, f.app, http.MethodDelete, "/api/v1/betriebe/"+betriebA, adminToken(t), nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	left, err := f.bedarfe.List(repository.BedarfFilter{BetriebID: betriebA})
	require.NoError(t, err)
	assert.Empty(t, left)

	resp = doRequest(t, f.app, http.MethodGet, "/api/v1/betriebe/"+betriebA, adminToken(t), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
