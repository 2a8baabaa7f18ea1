package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/ledger"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

// RetryPolicy reintentos ante domain.ErrConcurrencyConflict. MaxRetries 0 = un solo intento.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// TransactionUseCase procesa movimientos del ledger (RESTOCK, TRANSFER_TO_DEALER, SALE) de forma
// transaccional: registro + saldos se confirman juntos o no se confirma nada.
type TransactionUseCase struct {
	txRunner TxRunner
	retry    RetryPolicy
	log      *logger.Logger
	now      func() time.Time
}

// NewTransactionUseCase construye el procesador. log puede ser nil.
func NewTransactionUseCase(txRunner TxRunner, retry RetryPolicy, log *logger.Logger) *TransactionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if retry.MaxRetries < 0 {
		retry.MaxRetries = 0
	}
	return &TransactionUseCase{
		txRunner: txRunner,
		retry:    retry,
		log:      log,
		now:      time.Now,
	}
}

// TransactionInput entrada del procesador. ToDealerID es el concesionario afectado en
// TRANSFER_TO_DEALER y SALE; FromDealerID se registra tal cual (nil = bodega central).
type TransactionInput struct {
	VariantID    int64
	Type         string
	Quantity     int
	FromDealerID *int64
	ToDealerID   *int64
	StaffID      int64
	Notes        string
}

func (in TransactionInput) movement() ledger.Movement {
	return ledger.Movement{
		VariantID:    in.VariantID,
		Type:         entity.TransactionType(in.Type),
		Quantity:     in.Quantity,
		FromDealerID: in.FromDealerID,
		ToDealerID:   in.ToDealerID,
	}
}

// ExecuteTransaction valida, y en una sola transacción: registra el movimiento en el ledger,
// bloquea central y luego concesionario (siempre en ese orden), aplica la regla del tipo y
// guarda los saldos. Cualquier error (incluido stock insuficiente) revierte todo, así que el
// ledger solo contiene movimientos con efecto confirmado.
func (uc *TransactionUseCase) ExecuteTransaction(ctx context.Context, in TransactionInput) (*entity.InventoryTransaction, error) {
	m := in.movement()
	if err := ledger.Validate(m); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		record, err := uc.apply(ctx, in, m)
		if err == nil {
			uc.log.Debug().
				Str("transaction_id", record.ID).
				Int64("variant_id", record.VariantID).
				Str("type", string(record.Type)).
				Int("quantity", record.Quantity).
				Msg("movimiento confirmado")
			return record, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) || attempt >= uc.retry.MaxRetries {
			return nil, err
		}
		uc.log.Warn().Err(err).Int("attempt", attempt+1).Int64("variant_id", in.VariantID).Msg("conflicto de concurrencia, reintentando")
		if err := sleepCtx(ctx, uc.retry.Backoff*time.Duration(attempt+1)); err != nil {
			return nil, err
		}
	}
}

func (uc *TransactionUseCase) apply(ctx context.Context, in TransactionInput, m ledger.Movement) (*entity.InventoryTransaction, error) {
	now := uc.now()
	record := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		VariantID:       m.VariantID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		FromDealerID:    in.FromDealerID,
		ToDealerID:      in.ToDealerID,
		StaffID:         in.StaffID,
		Notes:           in.Notes,
		TransactionDate: now,
	}

	err := uc.txRunner.Run(ctx, func(
		centralRepo repository.CentralInventoryRepository,
		dealerRepo repository.DealerAllocationRepository,
		txRepo repository.InventoryTransactionRepository,
	) error {
		if err := txRepo.Create(ctx, record); err != nil {
			return err
		}

		central, err := centralRepo.LockForUpdate(ctx, m.VariantID)
		if err != nil {
			return err
		}
		var dealer *entity.DealerAllocation
		if ledger.RequiresDealer(m.Type) {
			dealer, err = dealerRepo.LockForUpdate(ctx, m.VariantID, *m.ToDealerID)
			if err != nil {
				return err
			}
		}

		newCentral, newDealer, err := ledger.Apply(*central, dealer, m)
		if err != nil {
			return err
		}

		newCentral.UpdatedAt = now
		if err := centralRepo.SaveQuantities(ctx, &newCentral); err != nil {
			return err
		}
		if newDealer != nil {
			newDealer.UpdatedAt = now
			if err := dealerRepo.SaveQuantities(ctx, newDealer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
