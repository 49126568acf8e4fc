package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientBalanceError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("sell: %w", &InsufficientBalanceError{ProductID: 1, Balance: 3, Requested: 5})

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	var ibe *InsufficientBalanceError
	assert.True(t, errors.As(err, &ibe))
	assert.Equal(t, int64(3), ibe.Balance)
	assert.Equal(t, int64(5), ibe.Requested)
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, "NOT_FOUND"},
		{fmt.Errorf("wrap: %w", ErrInvalidQuantity), "INVALID_QUANTITY"},
		{ErrInvalidReason, "INVALID_REASON"},
		{ErrInvalidMovementType, "VALIDATION"},
		{ErrInvalidInput, "VALIDATION"},
		{&InsufficientBalanceError{}, "INSUFFICIENT_BALANCE"},
		{ErrDuplicate, "DUPLICATE"},
		{ErrProductInUse, "PRODUCT_IN_USE"},
		{errors.New("boom"), "INTERNAL"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Code(tt.err))
	}
}
