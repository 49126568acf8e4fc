package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Motivos fijos de las operaciones compuestas y límites del motivo libre.
const (
	ReasonSale   = "sale"
	ReasonReturn = "return"

	MinAdjustmentReasonLen = 2
	MaxReasonLen           = 200
)

// NormalizeReason recorta espacios y valida el largo máximo de un motivo opcional.
func NormalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > MaxReasonLen {
		return "", domain.ErrInvalidReason
	}
	return reason, nil
}

// AdjustmentReason valida el motivo obligatorio de un ajuste.
func AdjustmentReason(reason string) (string, error) {
	reason, err := NormalizeReason(reason)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(reason) < MinAdjustmentReasonLen {
		return "", domain.ErrInvalidReason
	}
	return reason, nil
}
