package services

import (
	"context"

	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// TransactionSvcFacade exposes ledger entry operations including receipt archival.
type TransactionSvcFacade interface {
	// CreateTransaction creates a ledger entry for the acting department;
	// afdeling role only. The voucher number is allocated atomically and the
	// accounting year is stamped from the department's settings.
	CreateTransaction(ctx context.Context, actor domain.User, req dto.SaveTransactionRequest) (*domain.Transaction, error)
	// GetTransaction returns one entry; an afdeling caller may only read its own.
	GetTransaction(ctx context.Context, actor domain.User, transactionID string) (*domain.Transaction, error)
	// ListTransactions lists entries scoped by the caller's role: an afdeling
	// caller always sees its own; admin-like callers may filter by department
	// and accounting year.
	ListTransactions(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) ([]domain.Transaction, error)
	// UpdateTransaction rewrites the mutable fields of an entry the caller may
	// act on; bilagnr and regnskabsaar are preserved.
	UpdateTransaction(ctx context.Context, actor domain.User, transactionID string, req dto.SaveTransactionRequest) (*domain.Transaction, error)
	// DeleteTransaction removes an entry; its voucher number is never reused.
	DeleteTransaction(ctx context.Context, actor domain.User, transactionID string) error

	// UploadReceipt archives a receipt file for the entry in the caller's
	// Drive and records the file reference on the entry.
	UploadReceipt(ctx context.Context, actor domain.User, transactionID string, filename string, mimeType string, content []byte) (*domain.DriveFile, error)
	// ListReceipts lists the archived files for the entry's department/year folder.
	ListReceipts(ctx context.Context, actor domain.User, transactionID string) ([]domain.DriveFile, error)
	// DeleteReceipt removes an archived file; failures degrade to a false
	// success flag rather than an error.
	DeleteReceipt(ctx context.Context, actor domain.User, transactionID string, fileID string) (bool, error)
}
