package di

import (
	"github.com/spf13/afero"

	"chupchup_backend/internal/platform/config"
	"chupchup_backend/internal/platform/media"
)

// NewMediaStore creates the upload store on the local disk.
func NewMediaStore(cfg config.MediaConfig) (*media.LocalStore, error) {
	return media.NewLocalStore(afero.NewOsFs(), cfg.UploadDir)
}

// NewPublicFS scopes the static front end to PUBLIC_DIR.
func NewPublicFS(cfg config.MediaConfig) afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), cfg.PublicDir)
}
