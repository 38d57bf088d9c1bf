package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mycontacts/mycontacts/internal/apperr"
)

// Repository persists contacts. Every read and write is keyed by the owning
// user; a contact that belongs to someone else is indistinguishable from a
// missing one and yields apperr.ErrNotFound.
type Repository interface {
	List(ctx context.Context, ownerID string) ([]Contact, error)
	Get(ctx context.Context, ownerID, id string) (Contact, error)
	Create(ctx context.Context, contact Contact) error
	Update(ctx context.Context, ownerID, id string, patch UpdateInput, at time.Time) (Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// PostgresRepository stores contacts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = `id, first_name, last_name, phone, user_id, created_at, updated_at`

// List returns the owner's contacts, oldest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]Contact, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return []Contact{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts
        WHERE user_id = $1 ORDER BY created_at, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: list contacts: %v", apperr.ErrStorage, err)
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list contacts: %v", apperr.ErrStorage, err)
	}
	return contacts, nil
}

// Get fetches one of the owner's contacts.
func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (Contact, error) {
	owner, contactID, err := parseIDs(ownerID, id)
	if err != nil {
		return Contact{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts
        WHERE id = $1 AND user_id = $2`, contactID, owner)
	return scanContact(row)
}

// Create inserts a contact record.
func (r *PostgresRepository) Create(ctx context.Context, c Contact) error {
	owner, contactID, err := parseIDs(c.UserID, c.ID)
	if err != nil {
		return fmt.Errorf("%w: contact ids", apperr.ErrValidation)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO contacts (`+contactColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		contactID, c.FirstName, c.LastName, c.Phone, owner, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: insert contact: %v", apperr.ErrStorage, err)
	}
	return nil
}

// Update applies the patch in a single statement so the ownership check and
// the write cannot interleave with a concurrent delete.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch UpdateInput, at time.Time) (Contact, error) {
	owner, contactID, err := parseIDs(ownerID, id)
	if err != nil {
		return Contact{}, err
	}
	row := r.db.QueryRow(ctx, `UPDATE contacts SET
            first_name = COALESCE($3::text, first_name),
            last_name  = COALESCE($4::text, last_name),
            phone      = COALESCE($5::text, phone),
            updated_at = $6
        WHERE id = $1 AND user_id = $2
        RETURNING `+contactColumns,
		contactID, owner, patch.FirstName, patch.LastName, patch.Phone, at.UTC())
	return scanContact(row)
}

// Delete removes one of the owner's contacts.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	owner, contactID, err := parseIDs(ownerID, id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, contactID, owner)
	if err != nil {
		return fmt.Errorf("%w: delete contact: %v", apperr.ErrStorage, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("contact: %w", apperr.ErrNotFound)
	}
	return nil
}

func parseIDs(ownerID, id string) (uuid.UUID, uuid.UUID, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("contact: %w", apperr.ErrNotFound)
	}
	contactID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("contact: %w", apperr.ErrNotFound)
	}
	return owner, contactID, nil
}

func scanContact(row pgx.Row) (Contact, error) {
	var (
		c         Contact
		id        uuid.UUID
		owner     uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &c.FirstName, &c.LastName, &c.Phone, &owner, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, fmt.Errorf("contact: %w", apperr.ErrNotFound)
		}
		return Contact{}, fmt.Errorf("%w: scan contact: %v", apperr.ErrStorage, err)
	}
	c.ID = id.String()
	c.UserID = owner.String()
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}
