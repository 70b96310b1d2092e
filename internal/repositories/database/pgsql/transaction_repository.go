package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	"github.com/tourdetaxa/bogfoering-backend/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(t domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    t.TransactionID,
		AfdelingID:       t.AfdelingID,
		Bilagnr:          t.Bilagnr,
		BankDato:         t.BankDato,
		Tekst:            t.Tekst,
		Formaal:          t.Formaal,
		Beloeb:           t.Beloeb,
		Type:             string(t.Type),
		Regnskabsaar:     t.Regnskabsaar,
		KvitteringFileID: t.KvitteringFileID,
		KvitteringURL:    t.KvitteringURL,
		AuditFields: models.AuditFields{
			CreatedAt:     t.CreatedAt,
			CreatedBy:     t.CreatedBy,
			LastUpdatedAt: t.LastUpdatedAt,
			LastUpdatedBy: t.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		AfdelingID:       m.AfdelingID,
		Bilagnr:          m.Bilagnr,
		BankDato:         m.BankDato,
		Tekst:            m.Tekst,
		Formaal:          m.Formaal,
		Beloeb:           m.Beloeb,
		Type:             domain.TransactionType(m.Type),
		Regnskabsaar:     m.Regnskabsaar,
		KvitteringFileID: m.KvitteringFileID,
		KvitteringURL:    m.KvitteringURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, afdeling_id, bilagnr, bank_dato, tekst, formaal, beloeb, type, regnskabsaar, kvittering_file_id, kvittering_url, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AfdelingID,
		&m.Bilagnr,
		&m.BankDato,
		&m.Tekst,
		&m.Formaal,
		&m.Beloeb,
		&m.Type,
		&m.Regnskabsaar,
		&m.KvitteringFileID,
		&m.KvitteringURL,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateWithBilagnr allocates the next voucher number from the department's
// settings row and inserts the entry inside one database transaction. The
// UPDATE takes a row lock on the settings row, so concurrent creations for the
// same department serialize and each sees a distinct counter value.
func (r *PgxTransactionRepository) CreateWithBilagnr(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	allocate := `
        UPDATE settings
        SET naeste_bilagnr = naeste_bilagnr + 1, last_updated_at = $1, last_updated_by = $2
        WHERE afdeling_id = $3
        RETURNING naeste_bilagnr - 1;
    `
	var allocated int64
	err = tx.QueryRow(ctx, allocate, txn.CreatedAt, txn.CreatedBy, txn.AfdelingID).Scan(&allocated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("settings not found for afdeling %s: %w", txn.AfdelingID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to allocate bilagnr: %w", err)
	}
	txn.Bilagnr = domain.FormatBilagnr(allocated)

	m := toModelTransaction(txn)
	insert := `
        INSERT INTO transactions (` + transactionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = tx.Exec(ctx, insert,
		m.TransactionID,
		m.AfdelingID,
		m.Bilagnr,
		m.BankDato,
		m.Tekst,
		m.Formaal,
		m.Beloeb,
		m.Type,
		m.Regnskabsaar,
		m.KvitteringFileID,
		m.KvitteringURL,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", mapConstraintErr(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	t := toDomainTransaction(*m)
	return &t, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []any{}
	where := ""
	if filter.AfdelingID != "" {
		args = append(args, filter.AfdelingID)
		where = fmt.Sprintf(" WHERE afdeling_id = $%d", len(args))
	}
	if filter.Regnskabsaar != "" {
		args = append(args, filter.Regnskabsaar)
		if where == "" {
			where = fmt.Sprintf(" WHERE regnskabsaar = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND regnskabsaar = $%d", len(args))
		}
	}
	order := " ORDER BY bank_dato DESC, created_at DESC"
	if filter.OrderAsc {
		order = " ORDER BY bank_dato ASC, created_at ASC"
	}
	rows, err := r.Pool.Query(ctx, query+where+order+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		result = append(result, toDomainTransaction(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return result, nil
}

// UpdateTransaction rewrites the editable fields. bilagnr and regnskabsaar
// keep their creation-time values.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        UPDATE transactions
        SET bank_dato = $1, tekst = $2, formaal = $3, beloeb = $4, type = $5, last_updated_at = $6, last_updated_by = $7
        WHERE transaction_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		txn.BankDato,
		txn.Tekst,
		txn.Formaal,
		txn.Beloeb,
		string(txn.Type),
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
		txn.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) SumByType(ctx context.Context, afdelingID string, regnskabsaar string) (domain.TransactionSums, error) {
	query := `SELECT type, COALESCE(SUM(beloeb), 0), COUNT(*) FROM transactions WHERE afdeling_id = $1`
	args := []any{afdelingID}
	if regnskabsaar != "" {
		args = append(args, regnskabsaar)
		query += ` AND regnskabsaar = $2`
	}
	query += ` GROUP BY type;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return domain.TransactionSums{}, fmt.Errorf("failed to sum transactions: %w", err)
	}
	defer rows.Close()

	sums := domain.TransactionSums{Indtaegter: decimal.Zero, Udgifter: decimal.Zero}
	for rows.Next() {
		var txType string
		var total decimal.Decimal
		var count int64
		if err := rows.Scan(&txType, &total, &count); err != nil {
			return domain.TransactionSums{}, fmt.Errorf("failed to scan sum row: %w", err)
		}
		switch domain.TransactionType(txType) {
		case domain.Indtaegt:
			sums.Indtaegter = total
		case domain.Udgift:
			sums.Udgifter = total
		}
		sums.Count += count
	}
	if rows.Err() != nil {
		return domain.TransactionSums{}, fmt.Errorf("error iterating sum rows: %w", rows.Err())
	}
	return sums, nil
}

func (r *PgxTransactionRepository) SetKvittering(ctx context.Context, transactionID string, fileID *string, url *string, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE transactions
        SET kvittering_file_id = $1, kvittering_url = $2, last_updated_at = $3, last_updated_by = $4
        WHERE transaction_id = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, fileID, url, updatedAt, updatedBy, transactionID)
	if err != nil {
		return fmt.Errorf("failed to set kvittering on transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
