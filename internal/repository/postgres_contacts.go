package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

type PostgresContactRepository struct {
	db *pgxpool.Pool
}

func NewPostgresContactRepository(db *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{
		db: db,
	}
}

func (p *PostgresContactRepository) GetByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	query := `SELECT phone, name, email, created_at, updated_at
		FROM contacts
		WHERE phone = $1`

	var contact domain.Contact

	err := p.db.QueryRow(ctx, query, phone).Scan(
		&contact.Phone,
		&contact.Name,
		&contact.Email,
		&contact.CreatedAt,
		&contact.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &contact, nil
}

func (p *PostgresContactRepository) Upsert(ctx context.Context, contact *domain.Contact) error {
	query := `INSERT INTO contacts (phone, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, updated_at = now()
		RETURNING created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		contact.Phone,
		contact.Name,
		contact.Email).Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return domain.ErrInvalidContact
		}

		return err
	}

	return nil
}
