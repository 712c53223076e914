package blobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

type Repository interface {
	Put(ctx context.Context, path string, data []byte, mimeType string) error
	Get(ctx context.Context, path string) (*models.Blob, error)
	Delete(ctx context.Context, path string) error
}

// resolveMIME returns mimeType, or a type sniffed from data when it is empty.
func resolveMIME(data []byte, mimeType string) string {
	if mimeType != "" {
		return mimeType
	}
	return mimetype.Detect(data).String()
}

func failure(op, path string, err error) error {
	return fmt.Errorf("failed to %s blob %q: %w: %w", op, path, common.ErrBlobStoreFailure, err)
}
