package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/bau-portal/internal/application/dto"
)

// Query parámetros de listado; nil/vacíos se omiten.
type Query interface {
	Values() url.Values
}

// Resource servicio CRUD genérico sobre un recurso REST. R es el registro,
// C/U/S las entradas de creación, actualización y cambio de estado, Q los filtros.
type Resource[R, C, U, S any, Q Query] struct {
	c    *Client
	path string
}

// NewResource recurso montado en path relativo a la base, p.ej. "/bedarfe".
func NewResource[R, C, U, S any, Q Query](c *Client, path string) *Resource[R, C, U, S, Q] {
	return &Resource[R, C, U, S, Q]{c: c, path: path}
}

// List GET {path}?filtros.
func (r *Resource[R, C, U, S, Q]) List(ctx context.Context, q Q) (*dto.Page[R], error) {
	var page dto.Page[R]
	if err := r.c.do(ctx, http.MethodGet, r.path, q.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get GET {path}/{id}.
func (r *Resource[R, C, U, S, Q]) Get(ctx context.Context, id string) (*R, error) {
	var out R
	if err := r.c.do(ctx, http.MethodGet, r.item(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create POST {path}.
func (r *Resource[R, C, U, S, Q]) Create(ctx context.Context, in C) (*R, error) {
	var out R
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT {path}/{id}.
func (r *Resource[R, C, U, S, Q]) Update(ctx context.Context, id string, in U) (*R, error) {
	var out R
	if err := r.c.do(ctx, http.MethodPut, r.item(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus PATCH {path}/{id}/status.
func (r *Resource[R, C, U, S, Q]) UpdateStatus(ctx context.Context, id string, in S) (*R, error) {
	var out R
	if err := r.c.do(ctx, http.MethodPatch, r.item(id)+"/status", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete DELETE {path}/{id}.
func (r *Resource[R, C, U, S, Q]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r *Resource[R, C, U, S, Q]) item(id string) string {
	return r.path + "/" + id
}
