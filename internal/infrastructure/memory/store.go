// Package memory implementa los puertos de persistencia en memoria de proceso.
// Respeta las mismas reglas que PostgreSQL: append-only, FK producto/movimiento,
// nombres únicos y bloqueo por producto dentro de TxRunner.Run.
// Pensado para desarrollo local (STORAGE_DRIVER=memory) y tests.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu             sync.RWMutex
	products       map[int64]*entity.Product
	nameKeys       map[string]int64
	byProduct      map[int64][]*entity.StockMovement // orden de inserción (= ID ascendente)
	nextProductID  int64
	nextMovementID int64

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex

	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[int64]*entity.Product),
		nameKeys:  make(map[string]int64),
		byProduct: make(map[int64][]*entity.StockMovement),
		locks:     make(map[int64]*sync.Mutex),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// productLock devuelve el mutex de fila del producto (equivalente a SELECT FOR UPDATE).
func (s *Store) productLock(id int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}
