package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

func TestQuantity_SoloNumerosLiterales(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int64
		wantErr error
	}{
		{"entero", `{"product_id":1,"quantity":5}`, 5, nil},
		{"string numérico", `{"product_id":1,"quantity":"5"}`, 0, domain.ErrInvalidQuantity},
		{"string vacío", `{"product_id":1,"quantity":""}`, 0, domain.ErrInvalidQuantity},
		{"booleano", `{"product_id":1,"quantity":true}`, 0, domain.ErrInvalidQuantity},
		{"objeto", `{"product_id":1,"quantity":{}}`, 0, domain.ErrInvalidQuantity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req dto.StockOperationRequest
			err := json.Unmarshal([]byte(tc.body), &req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			q, err := dto.ParseQuantity(req.Quantity)
			require.NoError(t, err)
			assert.Equal(t, tc.want, q)
		})
	}
}

func TestParseQuantity_NoEntero(t *testing.T) {
	var req dto.StockOperationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"product_id":1,"quantity":2.5}`), &req))
	_, err := dto.ParseQuantity(req.Quantity)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	var empty dto.StockOperationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"product_id":1,"quantity":null}`), &empty))
	assert.Empty(t, empty.Quantity)
}
