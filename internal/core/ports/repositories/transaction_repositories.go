package repositories

import (
	"context"
	"time"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero-value fields are ignored.
type TransactionFilter struct {
	AfdelingID   string
	Regnskabsaar string
	// OrderAsc sorts by bank_dato ascending (export order); default is descending.
	OrderAsc bool
}

// TransactionRepository defines persistence operations for ledger entries.
type TransactionRepository interface {
	// CreateWithBilagnr allocates the department's next voucher number and
	// inserts the transaction in a single database transaction, so two
	// concurrent creations can never receive the same number and a failed
	// insert does not burn a counter value. The returned transaction carries
	// the assigned bilagnr.
	CreateWithBilagnr(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	// UpdateTransaction rewrites the mutable fields; bilagnr and regnskabsaar
	// are preserved from creation.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
	// SumByType aggregates amounts per transaction type for one department,
	// optionally filtered to an accounting year.
	SumByType(ctx context.Context, afdelingID string, regnskabsaar string) (domain.TransactionSums, error)
	SetKvittering(ctx context.Context, transactionID string, fileID *string, url *string, updatedBy string, updatedAt time.Time) error
}
