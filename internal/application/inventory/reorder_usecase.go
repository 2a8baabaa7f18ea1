package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

// ReorderUseCase administra los puntos de reorden que consume el monitor de alertas.
type ReorderUseCase struct {
	centralRepo repository.CentralInventoryRepository
	dealerRepo  repository.DealerAllocationRepository
}

// NewReorderUseCase construye el caso de uso de puntos de reorden.
func NewReorderUseCase(
	centralRepo repository.CentralInventoryRepository,
	dealerRepo repository.DealerAllocationRepository,
) *ReorderUseCase {
	return &ReorderUseCase{centralRepo: centralRepo, dealerRepo: dealerRepo}
}

// UpdateReorderLevel fija (o quita, con level nil) el umbral central o de un concesionario.
// Nunca crea filas: central inexistente -> ErrNotFound; asignación inexistente -> ErrAllocationNotFound.
func (uc *ReorderUseCase) UpdateReorderLevel(ctx context.Context, variantID int64, dealerID *int64, level *int) error {
	if variantID <= 0 {
		return fmt.Errorf("%w: variant_id requerido", domain.ErrInvalidInput)
	}
	if level != nil && *level < 0 {
		return fmt.Errorf("%w: reorder_level no puede ser negativo", domain.ErrInvalidInput)
	}
	if dealerID != nil {
		if *dealerID <= 0 {
			return fmt.Errorf("%w: dealer_id inválido", domain.ErrInvalidInput)
		}
		return uc.dealerRepo.UpdateReorderLevel(ctx, variantID, *dealerID, level)
	}
	return uc.centralRepo.UpdateReorderLevel(ctx, variantID, level)
}
