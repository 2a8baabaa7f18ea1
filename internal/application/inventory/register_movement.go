package inventory

import (
	"context"

	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// ExecuteFromRequest adapta el request HTTP al caso de uso ExecuteTransaction(ctx, TransactionInput).
// Lo usan el handler HTTP y el listener de eventos de fulfillment.
func (uc *TransactionUseCase) ExecuteFromRequest(ctx context.Context, in dto.ExecuteTransactionRequest) (*dto.TransactionResponse, error) {
	record, err := uc.ExecuteTransaction(ctx, TransactionInput{
		VariantID:    in.VariantID,
		Type:         in.TransactionType,
		Quantity:     in.Quantity,
		FromDealerID: in.FromDealerID,
		ToDealerID:   in.ToDealerID,
		StaffID:      in.StaffID,
		Notes:        in.Notes,
	})
	if err != nil {
		return nil, err
	}
	out := toTransactionResponse(record)
	return &out, nil
}

func toTransactionResponse(t *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		TransactionID:   t.ID,
		VariantID:       t.VariantID,
		TransactionType: string(t.Type),
		Quantity:        t.Quantity,
		FromDealerID:    t.FromDealerID,
		ToDealerID:      t.ToDealerID,
		StaffID:         t.StaffID,
		Notes:           t.Notes,
		TransactionDate: t.TransactionDate,
	}
}
