package profiles

import (
	"context"

	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
)

// Repository maps a user id to the stored path of its picture.
type Repository interface {
	Upsert(ctx context.Context, asset *models.ProfileAsset) error
	GetByUserID(ctx context.Context, userID int64) (*models.ProfileAsset, error)
	Delete(ctx context.Context, userID int64) error
}
