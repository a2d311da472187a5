// Package commands contains the business operations that mutate fulfillment
// state. Implements the Command pattern for write operations: every command
// validates its input, runs its repository work inside one unit of work, and
// publishes a best-effort notification after commit.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest interface that covers the
// repositories they touch.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// InvoiceRepoFactory provides access to the invoice repository within a
	// transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// SessionRepoFactory provides access to the stage session ledger within
	// a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// DeliveryRepoFactory provides access to the delivery ledger within a
	// transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// ReturnRepoFactory provides access to the return history within a
	// transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// InvoiceUoW manages transactions for invoice-only operations
	// (import, resubmission).
	InvoiceUoW interface {
		TxManager
		InvoiceRepoFactory
	}

	// InvoiceUoWFactory creates new invoice unit of work instances.
	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// StageUoW manages transactions for the stage engine: the invoice row
	// and the worker-stage session ledger always move together.
	StageUoW interface {
		TxManager
		InvoiceRepoFactory
		SessionRepoFactory
	}

	// StageUoWFactory creates new stage unit of work instances.
	StageUoWFactory interface {
		Create() StageUoW
	}

	// DeliveryUoW manages transactions for the delivery dispatcher.
	DeliveryUoW interface {
		TxManager
		InvoiceRepoFactory
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// ReturnUoW manages transactions for the return handler, whose cascade
	// touches the invoice, both ledgers and the return history.
	ReturnUoW interface {
		TxManager
		InvoiceRepoFactory
		SessionRepoFactory
		DeliveryRepoFactory
		ReturnRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}
)
