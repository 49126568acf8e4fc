package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RegisterMovementUseCase es el único camino de escritura del libro de stock:
// bloquea la fila del producto (SELECT FOR UPDATE), aplica la política de admisión
// contra el saldo recalculado y hace el append, todo en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	balances    BalanceReader
	policy      ledger.AdmissionPolicy
	hooks       []MovementHook
	log         *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
// balances puede ser nil: se usa el propio repositorio de movimientos (sin caché).
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	balances BalanceReader,
	policy ledger.AdmissionPolicy,
	log *logger.Logger,
	hooks ...MovementHook,
) *RegisterMovementUseCase {
	if balances == nil {
		balances = movRepo
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		balances:    balances,
		policy:      policy,
		hooks:       hooks,
		log:         log.Component("ledger"),
	}
}

// MovementInput entrada de createMovement. Reason es opcional en movimientos directos.
type MovementInput struct {
	ProductID int64
	Type      string
	Quantity  int64
	Reason    string
}

// CreateMovement valida y registra un movimiento directo (INBOUND/OUTBOUND).
// Errores: ErrInvalidMovementType, ErrInvalidQuantity, ErrInvalidReason (motivo > 200),
// ErrNotFound, *InsufficientBalanceError.
func (uc *RegisterMovementUseCase) CreateMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	typ, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return nil, err
	}
	reason, err := ledger.NormalizeReason(in.Reason)
	if err != nil {
		return nil, err
	}
	mov, err := entity.NewStockMovement(in.ProductID, typ, in.Quantity, reason)
	if err != nil {
		return nil, err
	}
	return uc.register(ctx, mov)
}

// register ejecuta admisión + append en una transacción con el producto bloqueado.
// Si algo falla no queda estado parcial (Rollback en TxRunner).
func (uc *RegisterMovementUseCase) register(ctx context.Context, mov *entity.StockMovement) (*entity.StockMovement, error) {
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		balance, err := movRepo.Balance(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if err := uc.policy.Admit(mov.ProductID, mov.Type, mov.Quantity, balance); err != nil {
			return err
		}
		return movRepo.Append(ctx, mov)
	})
	if err != nil {
		uc.rejected(ctx, mov, err)
		return nil, err
	}

	uc.log.Info().
		Int64("movement_id", mov.ID).
		Int64("product_id", mov.ProductID).
		Str("type", string(mov.Type)).
		Int64("quantity", mov.Quantity).
		Str("reason", mov.Reason).
		Msg("movimiento registrado")
	for _, h := range uc.hooks {
		h.MovementAppended(ctx, mov)
	}
	return mov, nil
}

func (uc *RegisterMovementUseCase) rejected(ctx context.Context, mov *entity.StockMovement, err error) {
	var ibe *domain.InsufficientBalanceError
	switch {
	case errors.As(err, &ibe):
		uc.log.Warn().
			Int64("product_id", ibe.ProductID).
			Int64("balance", ibe.Balance).
			Int64("requested", ibe.Requested).
			Msg("salida rechazada por saldo insuficiente")
	case errors.Is(err, domain.ErrInvalidQuantity):
		uc.log.Warn().Err(err).Int64("product_id", mov.ProductID).Int64("quantity", mov.Quantity).Msg("movimiento rechazado")
	case errors.Is(err, domain.ErrNotFound):
		uc.log.Debug().Int64("product_id", mov.ProductID).Msg("movimiento para producto inexistente")
	default:
		uc.log.Error().Err(err).Int64("product_id", mov.ProductID).Msg("registrar movimiento")
	}
	for _, h := range uc.hooks {
		h.MovementRejected(ctx, mov.ProductID, err)
	}
}
