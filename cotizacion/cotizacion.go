// Package cotizacion looks up a public USD→ARS quote used to pre-fill the
// business rate. The result is only a suggestion; nothing enforces it.
package cotizacion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Quote mirrors the dolarapi.com response.
type Quote struct {
	Moneda             string    `json:"moneda"`
	Casa               string    `json:"casa"`
	Nombre             string    `json:"nombre"`
	Compra             float64   `json:"compra"`
	Venta              float64   `json:"venta"`
	FechaActualizacion time.Time `json:"fechaActualizacion"`
}

type Cache interface {
	Get(ctx context.Context) (*Quote, error)
	Set(ctx context.Context, q *Quote) error
}

// ErrCacheMiss is returned by Cache.Get when nothing is stored.
var ErrCacheMiss = errors.New("cotización no cacheada")

type Client struct {
	url   string
	http  *http.Client
	cache Cache
}

// NewClient builds a client for url. cache may be nil.
func NewClient(url string, cache Cache) *Client {
	return &Client{
		url:   url,
		http:  &http.Client{Timeout: 10 * time.Second},
		cache: cache,
	}
}

func (c *Client) Obtener(ctx context.Context) (*Quote, error) {
	if c.cache != nil {
		q, err := c.cache.Get(ctx)
		if err == nil {
			return q, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn().Err(err).Msg("Cache de cotización no disponible")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar cotización: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cotización: status %d: %s", resp.StatusCode, string(body))
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("cotización: respuesta inválida: %w", err)
	}
	if q.Venta <= 0 {
		return nil, errors.New("cotización: valor de venta vacío")
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, &q); err != nil {
			log.Warn().Err(err).Msg("No se pudo guardar la cotización en cache")
		}
	}
	return &q, nil
}
