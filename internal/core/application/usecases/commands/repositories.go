// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// CommissionRepoFactory provides access to the commission repository within a transaction.
	CommissionRepoFactory interface {
		CommissionRepository() ports.CommissionRepository
	}

	// WithdrawalRepoFactory provides access to the withdrawal repository within a transaction.
	WithdrawalRepoFactory interface {
		WithdrawalRepository() ports.WithdrawalRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order lifecycle operations. Every
	// status move appends its transition records through the audit
	// repository in the same transaction.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW manages the delivery hand-off. The status flip, the grace
	// deadline, the commission recording and the audit trail all commit in
	// one transaction, so an order is never Delivered without its ledger
	// entry.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		CommissionRepoFactory
		AuditRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// AssignmentUoW manages the claim transaction: the worker's row lock,
	// the active-order count, the order row and the audit trail all live in
	// one transaction.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
		AuditRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// LedgerUoW manages commission recording: the order row lock plus the
	// ledger, so the duplicate check and the insert are atomic.
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
		CommissionRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// SettlementUoW manages settlement approval: the order, its commission
	// entries and the completion audit record move together.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		CommissionRepoFactory
		AuditRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// PaymentUoW manages payment review verdicts. An approval of a delivered
	// order releases its settlement in the same transaction, so the ledger
	// and the audit trail ride along with the payment flag.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		CommissionRepoFactory
		AuditRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// BalanceUoW manages withdrawal operations. The available balance is
	// derived from the ledger and withdrawal sums under the worker's row
	// lock, so both repositories must share the transaction.
	BalanceUoW interface {
		TxManager
		WorkerRepoFactory
		CommissionRepoFactory
		WithdrawalRepoFactory
	}

	// BalanceUoWFactory creates new balance unit of work instances.
	BalanceUoWFactory interface {
		Create() BalanceUoW
	}
)
