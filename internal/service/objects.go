package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"taskboard/internal/storage"
)

// objectSweeper removes attachment objects after their rows are gone.
// Failures are logged and never fail the caller: a leftover object is
// harmless, a lost row is not.
type objectSweeper struct {
	store storage.Storage
	log   logrus.FieldLogger
}

// sweep deletes every key and returns how many objects were removed.
func (s objectSweeper) sweep(ctx context.Context, keys []string) int {
	removed := 0
	for _, key := range keys {
		err := s.store.Delete(ctx, key)
		if err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.log.WithFields(logrus.Fields{"event": "object_delete_failed", "key": key}).WithError(err).Warn("attachment object not removed")
			continue
		}
		removed++
	}
	return removed
}
