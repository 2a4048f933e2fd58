package inventory

import "time"

// DaysBetween devuelve la diferencia en días calendario enteros entre las fechas de from y to
// (to - from). Solo se consideran año, mes y día, así que no hay residuos fraccionarios ni
// saltos por horario de verano.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DateOnly trunca t a la medianoche de su fecha en su propia ubicación.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
