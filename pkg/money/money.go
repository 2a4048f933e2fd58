// Package money formatea montos en soles para reportes, facturas y mensajes.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol prefijo de la moneda.
const Symbol = "S/."

var printer = message.NewPrinter(language.English)

// Format devuelve el monto con separador de miles y dos decimales, ej: "S/. 1,234.56".
func Format(d decimal.Decimal) string {
	return Symbol + " " + Amount(d)
}

// Amount igual que Format pero sin símbolo.
func Amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Quantity formatea unidades con separador de miles.
func Quantity(n int64) string {
	return printer.Sprint(number.Decimal(n))
}
