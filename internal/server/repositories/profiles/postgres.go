// Package profiles implements PostgreSQL access to the profiles table, which
// records where each user's picture lives on the filesystem.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/dbx"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert records the picture path for a user, replacing any previous path.
// A missing user row yields common.ErrorNotFound.
func (r *PostgresRepository) Upsert(ctx context.Context, asset *models.ProfileAsset) error {
	query := `
		INSERT INTO profiles (user_id, picture_path)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET picture_path = EXCLUDED.picture_path
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, asset.UserID, asset.Path).Scan(&asset.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", common.ErrorDuplicateKey, dbx.ConstraintName(err))
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByUserID returns the picture pointer for userID or common.ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.ProfileAsset, error) {
	query := `SELECT user_id, picture_path, created_at FROM profiles WHERE user_id = $1`

	result := &models.ProfileAsset{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&result.UserID, &result.Path, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Delete removes the pointer row. Deleting a missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
