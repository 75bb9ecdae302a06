package utils

import "fmt"

var currencySymbols = map[string]string{
	"PEN": "S/",
	"USD": "$",
	"MXN": "$",
	"COP": "$",
	"ARS": "$",
	"CLP": "$",
	"BRL": "R$",
	"UYU": "$U",
	"BOB": "Bs",
	"GTQ": "Q",
	"CRC": "₡",
	"DOP": "RD$",
}

// CurrencySymbol falls back to the raw code for currencies we have no
// symbol for.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

func FormatPrice(amount float64, currency string) string {
	return fmt.Sprintf("%s %.2f", CurrencySymbol(currency), amount)
}
