// Package ledger implementa la máquina de estados del inventario como funciones puras
// (servicio de dominio): recibe el estado central y del concesionario y devuelve el nuevo estado.
// No conoce la persistencia; el caso de uso la aplica dentro de una sola transacción.
package ledger

import (
	"fmt"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// Movement solicitud de movimiento ya normalizada.
type Movement struct {
	VariantID    int64
	Type         entity.TransactionType
	Quantity     int
	FromDealerID *int64
	ToDealerID   *int64
}

// rule describe un tipo de movimiento: si requiere concesionario y cómo modifica los saldos.
type rule struct {
	needsDealer bool
	apply       func(c *entity.CentralInventory, d *entity.DealerAllocation, qty int) error
}

// rules es la tabla de tipos soportados. Agregar un tipo = agregar una entrada.
var rules = map[entity.TransactionType]rule{
	entity.TransactionTypeRestock: {
		needsDealer: false,
		apply: func(c *entity.CentralInventory, _ *entity.DealerAllocation, qty int) error {
			c.TotalQuantity += qty
			c.AvailableQuantity += qty
			return nil
		},
	},
	entity.TransactionTypeTransferToDealer: {
		needsDealer: true,
		apply: func(c *entity.CentralInventory, d *entity.DealerAllocation, qty int) error {
			if c.AvailableQuantity < qty {
				return fmt.Errorf("%w: disponible central %d, solicitado %d",
					domain.ErrInsufficientStock, c.AvailableQuantity, qty)
			}
			c.AvailableQuantity -= qty
			c.AllocatedQuantity += qty
			d.AllocatedQuantity += qty
			d.AvailableQuantity += qty
			return nil
		},
	},
	entity.TransactionTypeSale: {
		needsDealer: true,
		apply: func(c *entity.CentralInventory, d *entity.DealerAllocation, qty int) error {
			if d.AvailableQuantity < qty {
				return fmt.Errorf("%w: disponible concesionario %d, solicitado %d",
					domain.ErrInsufficientStock, d.AvailableQuantity, qty)
			}
			d.AvailableQuantity -= qty
			d.AllocatedQuantity -= qty
			// La venta saca la unidad del total del sistema.
			c.TotalQuantity -= qty
			c.AllocatedQuantity -= qty
			return nil
		},
	},
}

// Supported indica si el tipo está registrado.
func Supported(t entity.TransactionType) bool {
	_, ok := rules[t]
	return ok
}

// RequiresDealer indica si el tipo opera sobre una asignación de concesionario (ToDealerID).
func RequiresDealer(t entity.TransactionType) bool {
	return rules[t].needsDealer
}

// Validate rechaza la solicitud antes de cualquier escritura.
func Validate(m Movement) error {
	if m.VariantID <= 0 {
		return fmt.Errorf("%w: variant_id requerido", domain.ErrInvalidInput)
	}
	r, ok := rules[m.Type]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedType, m.Type)
	}
	if m.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if r.needsDealer && (m.ToDealerID == nil || *m.ToDealerID <= 0) {
		return fmt.Errorf("%w para %s", domain.ErrDealerRequired, m.Type)
	}
	return nil
}

// Apply calcula el nuevo estado. Si devuelve error, los valores de entrada no se consideran modificados:
// trabaja sobre copias y solo las devuelve en caso de éxito.
// dealer puede ser nil para tipos que no involucran concesionario.
func Apply(central entity.CentralInventory, dealer *entity.DealerAllocation, m Movement) (entity.CentralInventory, *entity.DealerAllocation, error) {
	if err := Validate(m); err != nil {
		return central, dealer, err
	}
	r := rules[m.Type]

	c := central
	var d *entity.DealerAllocation
	if r.needsDealer {
		if dealer == nil {
			return central, dealer, fmt.Errorf("%w para %s", domain.ErrDealerRequired, m.Type)
		}
		cp := *dealer
		d = &cp
	}
	if err := r.apply(&c, d, m.Quantity); err != nil {
		return central, dealer, err
	}
	return c, d, nil
}
