// Package catalog adapta el servicio externo de catálogo/búsqueda de variantes al puerto
// inventory.CatalogResolver, con caché opcional en Redis.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const searchPath = "/api/variants/search"

// HTTPResolver consulta GET {baseURL}/api/variants/search?keyword=... con net/http.
type HTTPResolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPResolver construye el adaptador. timeout <= 0 usa 5 s.
func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPResolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	VariantIDs []int64 `json:"variant_ids"`
}

// ResolveVariantIDs devuelve los IDs que coinciden con keyword. Lista vacía = sin coincidencias;
// transporte caído o respuesta no 2xx = error (nunca se confunde con "sin coincidencias").
func (r *HTTPResolver) ResolveVariantIDs(ctx context.Context, keyword string) ([]int64, error) {
	endpoint := r.baseURL + searchPath + "?" + url.Values{"keyword": {keyword}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catálogo: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("catálogo: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("catálogo: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("catálogo: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catálogo: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(rawBody)))
	}

	var out searchResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("catálogo: deserializar respuesta: %w", err)
	}
	if out.VariantIDs == nil {
		return []int64{}, nil
	}
	return out.VariantIDs, nil
}
