package filestore

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/phrazzld/mom-agent/internal/domain"
	"github.com/phrazzld/mom-agent/internal/store"
)

// MapError maps a filesystem or validation error to a store error. notFound
// is the sentinel used when the underlying error reports a missing path.
func MapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", notFound, err)
	}
	if errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return err
}
