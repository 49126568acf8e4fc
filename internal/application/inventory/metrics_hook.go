package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

var _ MovementHook = (*MetricsHook)(nil)

// MetricsHook publica en Prometheus los movimientos aceptados y rechazados.
type MetricsHook struct {
	m *metrics.Metrics
}

// NewMetricsHook construye el hook.
func NewMetricsHook(m *metrics.Metrics) *MetricsHook {
	return &MetricsHook{m: m}
}

// MovementAppended cuenta el movimiento por tipo y clase de motivo.
func (h *MetricsHook) MovementAppended(_ context.Context, mov *entity.StockMovement) {
	h.m.MovementAppended(string(mov.Type), reasonKind(mov.Reason), mov.Quantity)
}

// MovementRejected cuenta el rechazo por código de error.
func (h *MetricsHook) MovementRejected(_ context.Context, _ int64, err error) {
	h.m.MovementRejected(strings.ToLower(domain.Code(err)))
}

// reasonKind acota la cardinalidad: el motivo de un ajuste es texto libre.
func reasonKind(reason string) string {
	switch reason {
	case ledger.ReasonSale, ledger.ReasonReturn:
		return reason
	case "":
		return "none"
	}
	return "other"
}
