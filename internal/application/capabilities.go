package application

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// AssetStore is the scoped file-storage capability used for course covers
// and avatars. Put either fully writes the object and returns its locator,
// or fails without leaving a new addressable object. Delete is best-effort
// idempotent: an already-absent locator is not an error.
type AssetStore interface {
	Put(ctx context.Context, r io.Reader, objectPath, contentType string) (string, error)
	Delete(ctx context.Context, locator string) error
}

// Notifier sends the registration greeting. Implementations must not be
// relied on transactionally; failures are logged by callers, never
// propagated into the registration result.
type Notifier interface {
	SendRegistrationGreeting(ctx context.Context, email, name string) error
}

// discardAsset deletes locator best-effort. Failures never propagate; they
// are logged as ErrAssetDelete so operators can sweep leaked objects.
func discardAsset(ctx context.Context, store AssetStore, logger *logrus.Logger, locator, msg string) {
	if locator == "" {
		return
	}
	if err := store.Delete(ctx, locator); err != nil && logger != nil {
		logger.WithError(fmt.Errorf("%w: %v", ErrAssetDelete, err)).WithField("locator", locator).Warn(msg)
	}
}
