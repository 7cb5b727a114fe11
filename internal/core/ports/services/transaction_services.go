package services

import (
	"context"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction with lines and tenders.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of a terminal's transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc drives the sale lifecycle from draft to completion,
// void, or refund.
type TransactionWriterSvc interface {
	// OpenTransaction creates a DRAFT transaction with priced cart lines.
	OpenTransaction(ctx context.Context, cashierID string, req dto.OpenTransactionRequest) (*domain.Transaction, error)

	// SubmitForPayment reserves inventory for the priced lines and moves the
	// transaction DRAFT -> PENDING_PAYMENT. On ErrInsufficientStock the
	// transaction remains DRAFT and no stock is held.
	SubmitForPayment(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error)

	// AddTender appends a tender line while PENDING_PAYMENT.
	AddTender(ctx context.Context, transactionID string, cashierID string, req dto.AddTenderRequest) (*domain.Transaction, error)

	// FinalizeTransaction completes the sale once tenders cover the grand
	// total: state -> COMPLETED, inventory committed, net cash delta reported
	// to the open shift, all as one atomic unit. A commit conflict leaves the
	// transaction PENDING_PAYMENT with its tenders preserved for retry.
	FinalizeTransaction(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error)

	// VoidTransaction cancels a DRAFT or PENDING_PAYMENT transaction,
	// releasing any reservation and discarding tenders.
	VoidTransaction(ctx context.Context, transactionID string, cashierID string) (*domain.Transaction, error)

	// RefundTransaction creates a linked reversal for a COMPLETED transaction,
	// partial or full. The original's historical record is never mutated
	// beyond its status and reversal link.
	RefundTransaction(ctx context.Context, transactionID string, cashierID string, req dto.RefundTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
