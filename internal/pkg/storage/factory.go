package storage

import (
	"context"

	"github.com/muhafiz/muhafiz-api/internal/pkg/config"
	"github.com/muhafiz/muhafiz-api/internal/pkg/constants"
)

// New returns the store selected by the media configuration.
func New(ctx context.Context, cfg config.MediaConfig) (Store, error) {
	if cfg.Driver == config.MediaDriverS3 {
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := store.Ping(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	return NewLocalStore(cfg.UploadDir, constants.UploadsRoute)
}
