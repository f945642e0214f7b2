package repo

import (
	"context"

	"livewall-server/internal/model"
)

type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id string) (*model.Account, error)
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	UpdateByID(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) (int64, error)
	UsernameExists(ctx context.Context, username string, excludeID string) (bool, error)
}
