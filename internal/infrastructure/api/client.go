// Package api implementa los puertos de salida contra la API REST de Bau
// (/api/v1) con net/http y JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/bau-portal/pkg/logger"
)

// maxBody límite de lectura de respuestas.
const maxBody = 4 << 20

// TokenSource entrega el token bearer actual; "" si no hay sesión.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapta una función a TokenSource; permite crear el cliente antes
// que la sesión que lo usa.
type TokenFunc func(ctx context.Context) (string, error)

// Token implementa TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client cliente HTTP base compartido por todos los servicios.
type Client struct {
	base *url.URL
	http *http.Client
	log  *logger.Logger
}

// NewClient construye el cliente. baseURL incluye el prefijo, p.ej.
// "http://localhost:8080/api/v1". tokens puede ser nil.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: base URL inválida: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base URL sin esquema o host: %q", baseURL)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		base: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{next: http.DefaultTransport, tokens: tokens},
		},
		log: log.Component("api"),
	}, nil
}

// bearerTransport añade Authorization a las peticiones cuya ruta empieza por /api/.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil || !strings.HasPrefix(req.URL.Path, "/api/") {
		return t.next.RoundTrip(req)
	}
	tok, err := t.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("leer token: %w", err)
	}
	if tok == "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+tok)
	return t.next.RoundTrip(r)
}

// do ejecuta la petición. body y out pueden ser nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return fmt.Errorf("api: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("petición fallida")
		return &transportError{op: method + " " + path, err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &transportError{op: "leer respuesta", err: err}
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("petición")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, &apiErr.Envelope); jsonErr != nil {
			apiErr.Envelope.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &transportError{op: "decodificar " + method + " " + path, err: err}
	}
	return nil
}

// IsTimeout indica si err proviene de un deadline vencido.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
