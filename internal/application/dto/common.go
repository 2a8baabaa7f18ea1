package dto

import (
	"fmt"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// MaxPage mantiene (Page-1)*PageSize dentro de int32 (OFFSET de PostgreSQL y slices).
	MaxPage = 1_000_000
)

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Normalize aplica valores por defecto y el tope de tamaño de página.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// Validate rechaza páginas cuyo offset no cabe. Llamar después de Normalize.
func (p PageRequest) Validate() error {
	if p.Page > MaxPage {
		return fmt.Errorf("%w: page no puede superar %d", domain.ErrInvalidInput, MaxPage)
	}
	return nil
}

// Offset filas a saltar para la página actual. Llamar después de Normalize.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
