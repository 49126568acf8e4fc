package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Product representa un producto del catálogo. El saldo NO se guarda aquí:
// se deriva siempre de los movimientos (ver ledger.SumBalance).
type Product struct {
	ID              int64
	Name            string
	Description     string
	PriceMinorUnits int64 // precio en centavos
	MinimumStock    int64 // umbral de stock mínimo (>= 0)
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NameKey clave de unicidad del nombre: NFC, espacios colapsados y sin distinción
// de mayúsculas. "Café  Molido" y "café molido" colisionan.
func NameKey(name string) string {
	n := norm.NFC.String(strings.Join(strings.Fields(name), " "))
	return cases.Fold().String(n)
}

// Validate comprueba las invariantes del producto: nombre no vacío, precio > 0 y mínimo >= 0.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" || p.PriceMinorUnits <= 0 || p.MinimumStock < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
