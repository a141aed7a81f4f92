package persistence

import (
	"context"

	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre una copia del estado y confirma todo junto.
type TxRunner struct {
	db *Database
}

// NewTxRunner construye el runner con la base.
func NewTxRunner(db *Database) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repos atados a la tx; Commit si fn termina sin error, descarte si no.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	eventRepo repository.EventRepository,
	allocationRepo repository.AllocationRepository,
	movementRepo repository.MovementRepository,
) error) error {
	return r.db.Commit(ctx, func(s *Snapshot) error {
		q := &txQuerier{s: s}
		return fn(
			NewProductRepository(q),
			NewEventRepository(q),
			NewAllocationRepository(q),
			NewMovementRepository(q),
		)
	})
}
