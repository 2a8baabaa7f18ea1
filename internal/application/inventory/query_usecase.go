package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

// QueryUseCase lecturas del inventario: estado por variante, listado paginado, historial y alertas.
type QueryUseCase struct {
	centralRepo repository.CentralInventoryRepository
	dealerRepo  repository.DealerAllocationRepository
	queryRepo   repository.InventoryQueryRepository
	txRepo      repository.InventoryTransactionRepository
	alertRepo   repository.StockAlertRepository
	catalog     CatalogResolver
}

// NewQueryUseCase construye el servicio de consultas. catalog puede ser nil: en ese caso
// una búsqueda por texto devuelve domain.ErrCatalogUnavailable.
func NewQueryUseCase(
	centralRepo repository.CentralInventoryRepository,
	dealerRepo repository.DealerAllocationRepository,
	queryRepo repository.InventoryQueryRepository,
	txRepo repository.InventoryTransactionRepository,
	alertRepo repository.StockAlertRepository,
	catalog CatalogResolver,
) *QueryUseCase {
	return &QueryUseCase{
		centralRepo: centralRepo,
		dealerRepo:  dealerRepo,
		queryRepo:   queryRepo,
		txRepo:      txRepo,
		alertRepo:   alertRepo,
		catalog:     catalog,
	}
}

// GetInventoryStatus compone central + concesionarios. Una variante sin registro central se
// reporta en ceros, no como error.
func (uc *QueryUseCase) GetInventoryStatus(ctx context.Context, variantID int64) (*dto.InventoryStatusDTO, error) {
	if variantID <= 0 {
		return nil, fmt.Errorf("%w: variant_id requerido", domain.ErrInvalidInput)
	}
	central, err := uc.centralRepo.Get(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if central == nil {
		zero := entity.NewCentralInventory(variantID)
		central = &zero
	}
	allocations, err := uc.dealerRepo.ListByVariants(ctx, []int64{variantID})
	if err != nil {
		return nil, err
	}
	out := buildStatus(central, allocations)
	return &out, nil
}

// ListInventoryFilter filtros del listado; se combinan con AND.
type ListInventoryFilter struct {
	SearchText string
	DealerID   *int64
	Status     string
	Page       dto.PageRequest
}

// ListInventory listado paginado. El texto de búsqueda se resuelve en el catálogo antes de
// consultar el ledger: sin coincidencias se devuelve una página vacía, nunca "todo el inventario".
func (uc *QueryUseCase) ListInventory(ctx context.Context, f ListInventoryFilter) (*dto.InventoryListResponse, error) {
	page := f.Page
	page.Normalize()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	empty := &dto.InventoryListResponse{
		Items: []dto.InventoryStatusDTO{},
		Page:  dto.PageResponse{Page: page.Page, PageSize: page.PageSize},
	}

	status := strings.ToUpper(strings.TrimSpace(f.Status))
	if status != "" && !entity.IsValidStockStatus(status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, f.Status)
	}

	filter := repository.InventoryListFilter{
		DealerID: f.DealerID,
		Status:   status,
		Limit:    page.PageSize,
		Offset:   page.Offset(),
	}

	if search := strings.TrimSpace(f.SearchText); search != "" {
		if uc.catalog == nil {
			return nil, domain.ErrCatalogUnavailable
		}
		ids, err := uc.catalog.ResolveVariantIDs(ctx, search)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		if len(ids) == 0 {
			return empty, nil
		}
		filter.VariantIDs = ids
	}

	rows, total, err := uc.queryRepo.ListCentral(ctx, filter)
	if err != nil {
		return nil, err
	}
	empty.Page.Total = total
	if len(rows) == 0 {
		return empty, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.VariantID)
	}
	allocations, err := uc.dealerRepo.ListByVariants(ctx, ids)
	if err != nil {
		return nil, err
	}
	byVariant := make(map[int64][]*entity.DealerAllocation, len(rows))
	for _, a := range allocations {
		byVariant[a.VariantID] = append(byVariant[a.VariantID], a)
	}

	items := make([]dto.InventoryStatusDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, buildStatus(r, byVariant[r.VariantID]))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, PageSize: page.PageSize, Total: total},
	}, nil
}

// GetTransactionHistory historial del ledger, más reciente primero. from/to nil = sin límite.
func (uc *QueryUseCase) GetTransactionHistory(ctx context.Context, startDate, endDate string, page dto.PageRequest) (*dto.TransactionHistoryResponse, error) {
	from, to, err := dto.ParsePeriod(startDate, endDate, nil)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	records, total, err := uc.txRepo.List(ctx, repository.TransactionFilter{
		From:   from,
		To:     to,
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toTransactionResponse(r))
	}
	return &dto.TransactionHistoryResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, PageSize: page.PageSize, Total: total},
	}, nil
}

// GetActiveAlerts alertas en estado NEW.
func (uc *QueryUseCase) GetActiveAlerts(ctx context.Context) ([]dto.StockAlertDTO, error) {
	alerts, err := uc.alertRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toStockAlertDTO(a))
	}
	return out, nil
}

func buildStatus(c *entity.CentralInventory, allocations []*entity.DealerAllocation) dto.InventoryStatusDTO {
	dealers := make([]dto.DealerStockDTO, 0, len(allocations))
	for _, a := range allocations {
		dealers = append(dealers, dto.DealerStockDTO{
			DealerID:     a.DealerID,
			Allocated:    a.AllocatedQuantity,
			Available:    a.AvailableQuantity,
			ReorderLevel: a.ReorderLevel,
		})
	}
	return dto.InventoryStatusDTO{
		VariantID:        c.VariantID,
		CentralAvailable: c.AvailableQuantity,
		CentralAllocated: c.AllocatedQuantity,
		TotalInSystem:    c.TotalQuantity,
		ReorderLevel:     c.ReorderLevel,
		Status:           c.StockStatus(),
		DealerStock:      dealers,
	}
}

func toStockAlertDTO(a *entity.StockAlert) dto.StockAlertDTO {
	return dto.StockAlertDTO{
		AlertID:      a.ID,
		VariantID:    a.VariantID,
		DealerID:     a.DealerID,
		AlertType:    a.AlertType,
		CurrentStock: a.CurrentStock,
		Threshold:    a.Threshold,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
}
