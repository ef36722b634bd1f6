package counting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jose29di/sisinventario/internal/domain"
)

// Límites de validación de entradas de conteo.
const (
	MaxCodeLength = 50
	MaxQuantity   = 999999
)

var maxQuantity = decimal.NewFromInt(MaxQuantity)

// NormalizeCode canonicaliza un código de ítem: recorta espacios y pasa a
// mayúsculas. La normalización es idempotente. Devuelve ErrInvalidCode si el
// resultado queda vacío o excede MaxCodeLength.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" || len(code) > MaxCodeLength {
		return "", domain.ErrInvalidCode
	}
	return code, nil
}

// NormalizeQuantity interpreta una cantidad enviada por un equipo. Acepta
// coma o punto como separador decimal (los lectores de código de barras en
// es-CO escriben coma). Rango válido: [0, MaxQuantity].
func NormalizeQuantity(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	qty, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	if qty.LessThan(decimal.Zero) || qty.GreaterThan(maxQuantity) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return qty, nil
}
