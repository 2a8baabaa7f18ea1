package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
)

const dateLayout = "2006-01-02"

// ParsePeriod convierte start_date / end_date (YYYY-MM-DD) en un rango inclusivo.
// Un extremo vacío queda nil (sin límite); end llega hasta el último instante del día.
func ParsePeriod(startStr, endStr string, loc *time.Location) (from, to *time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	if startStr != "" {
		start, err := time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date inválido: %v", domain.ErrInvalidInput, err)
		}
		from = &start
	}
	if endStr != "" {
		end, err := time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date inválido: %v", domain.ErrInvalidInput, err)
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond) // inclusive hasta el final del día
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return from, to, nil
}
