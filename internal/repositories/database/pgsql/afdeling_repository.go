package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tourdetaxa/bogfoering-backend/internal/apperrors"
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	"github.com/tourdetaxa/bogfoering-backend/internal/models"
)

type PgxAfdelingRepository struct {
	BaseRepository
}

func newPgxAfdelingRepository(db *pgxpool.Pool) portsrepo.AfdelingRepository {
	return &PgxAfdelingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AfdelingRepository = (*PgxAfdelingRepository)(nil)

func toDomainAfdeling(m models.Afdeling) domain.Afdeling {
	return domain.Afdeling{
		AfdelingID: m.AfdelingID,
		Navn:       m.Navn,
		Oprettet:   m.Oprettet,
	}
}

func (r *PgxAfdelingRepository) SaveAfdeling(ctx context.Context, afdeling domain.Afdeling) error {
	query := `INSERT INTO afdelinger (afdeling_id, navn, oprettet) VALUES ($1, $2, $3);`
	_, err := r.Pool.Exec(ctx, query, afdeling.AfdelingID, afdeling.Navn, afdeling.Oprettet)
	if err != nil {
		return fmt.Errorf("failed to save afdeling: %w", mapConstraintErr(err))
	}
	return nil
}

func (r *PgxAfdelingRepository) FindAfdelingByID(ctx context.Context, afdelingID string) (*domain.Afdeling, error) {
	query := `SELECT afdeling_id, navn, oprettet FROM afdelinger WHERE afdeling_id = $1;`
	var m models.Afdeling
	err := r.Pool.QueryRow(ctx, query, afdelingID).Scan(&m.AfdelingID, &m.Navn, &m.Oprettet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find afdeling by ID %s: %w", afdelingID, err)
	}
	a := toDomainAfdeling(m)
	return &a, nil
}

func (r *PgxAfdelingRepository) FindAfdelingByNavn(ctx context.Context, navn string) (*domain.Afdeling, error) {
	query := `SELECT afdeling_id, navn, oprettet FROM afdelinger WHERE navn = $1;`
	var m models.Afdeling
	err := r.Pool.QueryRow(ctx, query, navn).Scan(&m.AfdelingID, &m.Navn, &m.Oprettet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find afdeling by navn: %w", err)
	}
	a := toDomainAfdeling(m)
	return &a, nil
}

func (r *PgxAfdelingRepository) ListAfdelinger(ctx context.Context) ([]domain.Afdeling, error) {
	query := `SELECT afdeling_id, navn, oprettet FROM afdelinger ORDER BY navn;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query afdelinger: %w", err)
	}
	defer rows.Close()

	afdelinger := []domain.Afdeling{}
	for rows.Next() {
		var m models.Afdeling
		if err := rows.Scan(&m.AfdelingID, &m.Navn, &m.Oprettet); err != nil {
			return nil, fmt.Errorf("failed to scan afdeling row: %w", err)
		}
		afdelinger = append(afdelinger, toDomainAfdeling(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating afdeling rows: %w", rows.Err())
	}
	return afdelinger, nil
}

func (r *PgxAfdelingRepository) DeleteAfdeling(ctx context.Context, afdelingID string) error {
	query := `DELETE FROM afdelinger WHERE afdeling_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, afdelingID)
	if err != nil {
		return fmt.Errorf("failed to delete afdeling: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("afdeling not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
