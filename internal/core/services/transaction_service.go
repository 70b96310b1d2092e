package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

type TransactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	settingsRepo    portsrepo.SettingsRepository
	userRepo        portsrepo.UserRepository
	driveSvc        portssvc.DriveSvcFacade
}

func NewTransactionService(
	transactionRepo portsrepo.TransactionRepository,
	settingsRepo portsrepo.SettingsRepository,
	userRepo portsrepo.UserRepository,
	driveSvc portssvc.DriveSvcFacade,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		userRepo:        userRepo,
		driveSvc:        driveSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

func (s *TransactionService) CreateTransaction(ctx context.Context, actor domain.User, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	if actor.Role != domain.RoleAfdeling {
		return nil, apperrors.ErrForbidden
	}

	bankDato, err := req.ParsedBankDato()
	if err != nil {
		return nil, fmt.Errorf("invalid bank_dato: %w", apperrors.ErrValidation)
	}
	txType := domain.TransactionType(req.Type)
	if !txType.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if req.Beloeb.IsNegative() || req.Beloeb.IsZero() {
		return nil, fmt.Errorf("belob must be positive: %w", apperrors.ErrValidation)
	}

	// Materializes the settings row if this is the department's first entry,
	// and pins the entry to the current accounting year.
	settings, err := s.settingsRepo.EnsureSettings(ctx, actor.UserID, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to load settings", "afdeling_id", actor.UserID)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AfdelingID:    actor.UserID,
		BankDato:      bankDato,
		Tekst:         req.Tekst,
		Formaal:       req.Formaal,
		Beloeb:        req.Beloeb,
		Type:          txType,
		Regnskabsaar:  settings.Regnskabsaar,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	created, err := s.transactionRepo.CreateWithBilagnr(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "failed to create transaction", "afdeling_id", actor.UserID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "transaction created",
		"transaction_id", created.TransactionID,
		"bilagnr", created.Bilagnr,
		"type", string(created.Type))
	return created, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, actor domain.User, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireAfdelingAccess(ctx, actor, txn.AfdelingID); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, actor domain.User, afdelingID string, regnskabsaar string) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{Regnskabsaar: regnskabsaar}
	switch {
	case actor.Role == domain.RoleAfdeling:
		filter.AfdelingID = actor.UserID
	case actor.Role.IsAdminLike():
		filter.AfdelingID = afdelingID
	default:
		return nil, apperrors.ErrForbidden
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions", "afdeling_id", filter.AfdelingID)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, actor domain.User, transactionID string, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireAfdelingAccess(ctx, actor, txn.AfdelingID); err != nil {
		return nil, err
	}

	bankDato, err := req.ParsedBankDato()
	if err != nil {
		return nil, fmt.Errorf("invalid bank_dato: %w", apperrors.ErrValidation)
	}
	txType := domain.TransactionType(req.Type)
	if !txType.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q: %w", req.Type, apperrors.ErrValidation)
	}
	if req.Beloeb.IsNegative() || req.Beloeb.IsZero() {
		return nil, fmt.Errorf("belob must be positive: %w", apperrors.ErrValidation)
	}

	txn.BankDato = bankDato
	txn.Tekst = req.Tekst
	txn.Formaal = req.Formaal
	txn.Beloeb = req.Beloeb
	txn.Type = txType
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = actor.UserID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "failed to update transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// DeleteTransaction removes the entry. The voucher counter is untouched, so
// the deleted entry's bilagnr is never handed out again.
func (s *TransactionService) DeleteTransaction(ctx context.Context, actor domain.User, transactionID string) error {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.RequireAfdelingAccess(ctx, actor, txn.AfdelingID); err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "failed to delete transaction", "transaction_id", transactionID)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.LogInfo(ctx, "transaction deleted", "transaction_id", transactionID, "bilagnr", txn.Bilagnr)
	return nil
}

// receiptFolder resolves the Drive folder address for an entry: the owning
// department's display name and the entry's accounting year.
func (s *TransactionService) receiptFolder(ctx context.Context, txn *domain.Transaction) (portssvc.ReceiptFolder, error) {
	owner, err := s.userRepo.FindUserByID(ctx, txn.AfdelingID)
	if err != nil {
		return portssvc.ReceiptFolder{}, fmt.Errorf("failed to resolve owning afdeling: %w", err)
	}
	navn := owner.Username
	if owner.AfdelingNavn != nil && *owner.AfdelingNavn != "" {
		navn = *owner.AfdelingNavn
	}
	return portssvc.ReceiptFolder{AfdelingNavn: navn, Regnskabsaar: txn.Regnskabsaar}, nil
}

func (s *TransactionService) UploadReceipt(ctx context.Context, actor domain.User, transactionID string, filename string, mimeType string, content []byte) (*domain.DriveFile, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireAfdelingAccess(ctx, actor, txn.AfdelingID); err != nil {
		return nil, err
	}

	folder, err := s.receiptFolder(ctx, txn)
	if err != nil {
		return nil, err
	}
	// Prefix the voucher number so the file is findable in Drive on its own.
	archiveName := fmt.Sprintf("%s_%s", txn.Bilagnr, filename)

	file, err := s.driveSvc.UploadFile(ctx, actor.UserID, folder, archiveName, mimeType, content)
	if err != nil {
		s.LogError(ctx, err, "failed to upload receipt", "transaction_id", transactionID)
		return nil, err
	}

	var link *string
	if file.WebViewLink != "" {
		link = &file.WebViewLink
	}
	if err := s.transactionRepo.SetKvittering(ctx, transactionID, &file.FileID, link, actor.UserID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to record receipt reference", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to record receipt reference: %w", err)
	}

	s.LogInfo(ctx, "receipt uploaded", "transaction_id", transactionID, "file_id", file.FileID)
	return file, nil
}

func (s *TransactionService) ListReceipts(ctx context.Context, actor domain.User, transactionID string) ([]domain.DriveFile, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireAfdelingAccess(ctx, actor, txn.AfdelingID); err != nil {
		return nil, err
	}
	folder, err := s.receiptFolder(ctx, txn)
	if err != nil {
		return nil, err
	}
	return s.driveSvc.ListFolder(ctx, actor.UserID, folder)
}

func (s *TransactionService) DeleteReceipt(ctx context.Context, actor domain.User, transactionID string, fileID string) (bool, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return false, err
	}
	if err := s.RequireAfdelingAccess(ctx, actor, txn.AfdelingID); err != nil {
		return false, err
	}

	removed := true
	if err := s.driveSvc.DeleteFile(ctx, actor.UserID, fileID); err != nil {
		// The file may already be gone from Drive; the ledger reference is
		// cleared either way.
		s.LogInfo(ctx, "drive file removal failed, clearing reference anyway",
			"transaction_id", transactionID, "file_id", fileID, "error", err.Error())
		removed = false
	}

	if txn.KvitteringFileID != nil && *txn.KvitteringFileID == fileID {
		if err := s.transactionRepo.SetKvittering(ctx, transactionID, nil, nil, actor.UserID, time.Now()); err != nil {
			s.LogError(ctx, err, "failed to clear receipt reference", "transaction_id", transactionID)
			return removed, fmt.Errorf("failed to clear receipt reference: %w", err)
		}
	}
	return removed, nil
}
