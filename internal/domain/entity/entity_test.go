package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestNameKey_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, entity.NameKey("Café  Molido "), entity.NameKey("café molido"))
	assert.NotEqual(t, entity.NameKey("Café"), entity.NameKey("Cafe"))
}

func TestNameKey_NormalizaNFC(t *testing.T) {
	// "é" precompuesta vs "e" + acento combinante
	assert.Equal(t, entity.NameKey("caf\u00e9"), entity.NameKey("cafe\u0301"))
}

func TestParseMovementType(t *testing.T) {
	typ, err := entity.ParseMovementType("INBOUND")
	assert.NoError(t, err)
	assert.Equal(t, entity.MovementTypeInbound, typ)

	_, err = entity.ParseMovementType("inbound")
	assert.Error(t, err)
}

func TestSignedQuantity(t *testing.T) {
	out := &entity.StockMovement{Type: entity.MovementTypeOutbound, Quantity: 4}
	in := &entity.StockMovement{Type: entity.MovementTypeInbound, Quantity: 4}
	assert.Equal(t, int64(-4), out.SignedQuantity())
	assert.Equal(t, int64(4), in.SignedQuantity())
}
