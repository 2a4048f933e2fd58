package entity

import (
	"fmt"
	"time"
)

// Period es un mes calendario (sin zona horaria: se interpreta en el calendario local).
type Period struct {
	Month int
	Year  int
}

// NewPeriod valida el mes y construye el período. El año no tiene cota inferior.
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if !p.Valid() {
		return Period{}, fmt.Errorf("mes fuera de rango: %d", month)
	}
	return p, nil
}

// PeriodOf devuelve el período que contiene t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Valid reporta si el mes está en [1,12].
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12
}

// Previous devuelve el mes anterior; enero pasa a diciembre del año previo sin condiciones.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Bounds devuelve [inicio, fin) del mes en loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Label devuelve una etiqueta legible del mes, ej: "Marzo 2024".
func (p Period) Label() string {
	if !p.Valid() {
		return p.String()
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}
