package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mroshb/watch_club/internal/gateway"
	"github.com/mroshb/watch_club/internal/models"
	"github.com/mroshb/watch_club/internal/notify"
	"github.com/mroshb/watch_club/internal/store"
	"github.com/mroshb/watch_club/pkg/errors"
	"github.com/mroshb/watch_club/pkg/logger"
	"go.uber.org/zap"
)

// ItemService mutates the tracked-items collection with the optimistic
// protocol: apply locally first, roll back to the exact pre-mutation
// snapshot if the remote store refuses. Tracked items are owned by one
// user, so the blast radius of a wrong guess is a single entity.
type ItemService struct {
	session  Session
	store    *store.Store
	gw       gateway.Gateway
	notifier notify.Notifier
	log      *zap.SugaredLogger

	// provisional ids for optimistic creates; always negative so they
	// can never collide with server-assigned ids
	tempID int64
}

func NewItemService(session Session, st *store.Store, gw gateway.Gateway, notifier notify.Notifier) *ItemService {
	return &ItemService{
		session:  session,
		store:    st,
		gw:       gw,
		notifier: notifier,
		log:      logger.Named("items"),
	}
}

// LoadItems replaces the local collection with the server's view.
func (s *ItemService) LoadItems(ctx context.Context) error {
	items, err := s.gw.ListTrackedItems(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.store.ReplaceItems(items)
	return nil
}

// AddItem creates a tracked item. The entity appears in the store
// immediately under a provisional id; the server-assigned entity is
// swapped in once the create confirms.
func (s *ItemService) AddItem(ctx context.Context, draft models.ItemDraft) (*models.TrackedItem, error) {
	draft.Sanitize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	provisional := models.TrackedItem{
		ID:             atomic.AddInt64(&s.tempID, -1),
		ExternalRef:    draft.ExternalRef,
		Title:          draft.Title,
		PosterURL:      draft.PosterURL,
		ExternalRating: draft.ExternalRating,
		Status:         models.StatusWatchlist,
		AddedAt:        time.Now(),
	}
	s.store.UpsertItem(provisional)

	created, err := s.gw.CreateTrackedItem(ctx, draft)
	if err != nil {
		if ctx.Err() != nil {
			s.log.Warnw("create failed after caller went away, leaving store untouched", "error", err)
			return nil, err
		}
		s.store.RemoveItem(provisional.ID)
		s.notifier.Notify(notify.Blocking(errors.Code(err), "could not add the item to your list"))
		return nil, err
	}

	if ctx.Err() != nil {
		s.log.Warnw("create confirmed after caller went away, keeping provisional entity", "provisional_id", provisional.ID)
		return created, nil
	}

	s.store.SwapItem(provisional.ID, *created)
	return created, nil
}

// UpdateItem applies a partial update optimistically. On failure the
// whole pre-mutation entity is restored; there is no partial merge.
func (s *ItemService) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	snapshot, ok := s.store.Item(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "item is not in the local list")
	}

	s.store.UpsertItem(patch.Apply(snapshot))

	if err := s.gw.UpdateTrackedItem(ctx, id, patch); err != nil {
		if ctx.Err() != nil {
			s.log.Warnw("update failed after caller went away, skipping rollback", "item_id", id, "error", err)
			return err
		}

		// Rollback does not check for interleaved commits on the same
		// entity; see the concurrency notes in DESIGN.md.
		s.store.UpsertItem(snapshot)
		s.notifier.Notify(notify.Blocking(errors.Code(err), "the change to your list was not saved"))

		if errors.IsNotFound(err) {
			s.reconcileItems(ctx)
		}
		return err
	}

	// Success needs no store change; the optimistic apply already
	// matches what the server committed.
	return nil
}

// DeleteItem removes the item immediately. There is no rollback for
// deletes; a failed delete surfaces and triggers a reconciling refetch.
func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	if !s.store.RemoveItem(id) {
		return errors.New(errors.ErrCodeNotFound, "item is not in the local list")
	}

	if err := s.gw.DeleteTrackedItem(ctx, id); err != nil {
		if ctx.Err() != nil {
			s.log.Warnw("delete failed after caller went away", "item_id", id, "error", err)
			return err
		}

		// The server deleting it concurrently is the outcome the user
		// wanted anyway; only complain about real failures.
		if !errors.IsNotFound(err) {
			s.notifier.Notify(notify.Blocking(errors.Code(err), "the item could not be removed from your list"))
			s.reconcileItems(ctx)
		}
		return err
	}
	return nil
}

func (s *ItemService) reconcileItems(ctx context.Context) {
	if err := s.LoadItems(ctx); err != nil {
		s.log.Warnw("failed to reconcile items after error", "error", err)
	}
}
