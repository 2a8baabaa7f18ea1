package repository

import (
	"context"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// StockAlertRepository puerto de persistencia de alertas. Este servicio solo crea alertas NEW.
type StockAlertRepository interface {
	// CreateIfAbsent inserta la alerta salvo que ya exista una NEW para (variante, concesionario).
	// Debe apoyarse en una restricción de unicidad, no en leer-y-luego-insertar.
	CreateIfAbsent(ctx context.Context, alert *entity.StockAlert) (created bool, err error)
	ListActive(ctx context.Context) ([]*entity.StockAlert, error)
}
