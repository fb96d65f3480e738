package services

import (
	"context"

	"github.com/mroshb/watch_club/internal/gateway"
	"github.com/mroshb/watch_club/internal/notify"
	"github.com/mroshb/watch_club/internal/relationship"
	"github.com/mroshb/watch_club/internal/store"
	"github.com/mroshb/watch_club/pkg/errors"
	"github.com/mroshb/watch_club/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FriendService mutates the relationship collections with the
// refetch-after-confirm protocol: the store is never touched before
// the remote store confirms, and confirmed mutations are reflected by
// replacing the affected collections wholesale. Edges are jointly
// owned by two users, so the client cannot predict the counterpart's
// derived views well enough to apply optimistically.
type FriendService struct {
	session  Session
	store    *store.Store
	gw       gateway.Gateway
	notifier notify.Notifier
	log      *zap.SugaredLogger

	// collapses concurrent refetches of the same collection
	refetches singleflight.Group
}

func NewFriendService(session Session, st *store.Store, gw gateway.Gateway, notifier notify.Notifier) *FriendService {
	return &FriendService{
		session:  session,
		store:    st,
		gw:       gw,
		notifier: notifier,
		log:      logger.Named("friends"),
	}
}

// LoadAll fetches every relationship collection and the pending count.
func (s *FriendService) LoadAll(ctx context.Context) error {
	return s.refetch(ctx, relationship.RefetchSet{
		Friends:      true,
		Incoming:     true,
		Outgoing:     true,
		PendingCount: true,
	})
}

// SendRequest asks the server to create a pending edge toward userID.
// The returned status is the server-reported outcome: pending for a
// fresh request, accepted when the server collapsed two crossing
// requests into a friendship.
func (s *FriendService) SendRequest(ctx context.Context, userID int64) (string, error) {
	verdict := relationship.CanSend(
		s.session.UserID, userID,
		s.store.Friends(), s.store.Incoming(), s.store.Outgoing(),
	)
	if verdict.Skip {
		s.log.Debugw("send request short-circuited", "target", userID, "status", verdict.Status)
		return verdict.Status, nil
	}

	status, err := s.gw.SendFriendRequest(ctx, userID)
	if err != nil {
		if errors.IsConflict(err) {
			// The pair already has an edge the local cache did not
			// know about. Nothing changed server-side, so nothing is
			// refetched.
			s.notifier.Notify(notify.Transient(errors.ErrCodeConflict, "a friend request already exists between you"))
			return "", err
		}
		s.notifier.Notify(notify.Transient(errors.Code(err), "the friend request could not be sent"))
		return "", err
	}

	if ctx.Err() != nil {
		s.log.Warnw("send confirmed after caller went away, skipping refetch", "target", userID)
		return status, nil
	}

	if err := s.refetch(ctx, relationship.InterpretSendResult(status)); err != nil {
		s.log.Warnw("refetch after send failed", "error", err)
	}
	return status, nil
}

// AcceptRequest confirms an incoming request.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID int64) error {
	return s.confirm(ctx, relationship.OpAccept, func() error {
		return s.gw.AcceptFriendRequest(ctx, requestID)
	})
}

// RejectRequest declines an incoming request.
func (s *FriendService) RejectRequest(ctx context.Context, requestID int64) error {
	return s.confirm(ctx, relationship.OpReject, func() error {
		return s.gw.RejectFriendRequest(ctx, requestID)
	})
}

// CancelRequest withdraws an outgoing request. The server treats this
// as a rejection of the pair's pending edge; locally it differs from
// RejectRequest only in which collection is refetched.
func (s *FriendService) CancelRequest(ctx context.Context, requestID int64) error {
	return s.confirm(ctx, relationship.OpCancel, func() error {
		return s.gw.RejectFriendRequest(ctx, requestID)
	})
}

// RemoveFriend dissolves an accepted edge.
func (s *FriendService) RemoveFriend(ctx context.Context, userID int64) error {
	return s.confirm(ctx, relationship.OpRemove, func() error {
		return s.gw.RemoveFriend(ctx, userID)
	})
}

// confirm runs one relationship mutation: gateway first, refetch after.
// On failure the store is untouched except for the reconciling refetch
// a not-found triggers (someone else already resolved the edge).
func (s *FriendService) confirm(ctx context.Context, op relationship.Operation, call func() error) error {
	set := relationship.RefetchFor(op)

	if err := call(); err != nil {
		if ctx.Err() != nil {
			s.log.Warnw("relationship mutation failed after caller went away", "error", err)
			return err
		}

		s.notifier.Notify(notify.Transient(errors.Code(err), "the change to your friends could not be made"))
		if errors.IsNotFound(err) {
			if rerr := s.refetch(ctx, set); rerr != nil {
				s.log.Warnw("reconciling refetch failed", "error", rerr)
			}
		}
		return err
	}

	if ctx.Err() != nil {
		s.log.Warnw("relationship mutation confirmed after caller went away, skipping refetch")
		return nil
	}

	return s.refetch(ctx, set)
}

// refetch replaces every collection in the set with the server's view.
// Each collection is fetched at most once even under concurrent calls.
func (s *FriendService) refetch(ctx context.Context, set relationship.RefetchSet) error {
	var firstErr error

	if set.Friends {
		if _, err, _ := s.refetches.Do("friends", func() (interface{}, error) {
			friends, err := s.gw.ListFriends(ctx)
			if err != nil {
				return nil, err
			}
			s.store.ReplaceFriends(friends)
			return nil, nil
		}); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if set.Incoming {
		if _, err, _ := s.refetches.Do("incoming", func() (interface{}, error) {
			requests, err := s.gw.ListIncomingRequests(ctx)
			if err != nil {
				return nil, err
			}
			s.store.ReplaceIncoming(requests)
			return nil, nil
		}); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if set.Outgoing {
		if _, err, _ := s.refetches.Do("outgoing", func() (interface{}, error) {
			requests, err := s.gw.ListOutgoingRequests(ctx)
			if err != nil {
				return nil, err
			}
			s.store.ReplaceOutgoing(requests)
			return nil, nil
		}); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if set.PendingCount {
		if _, err, _ := s.refetches.Do("pending_count", func() (interface{}, error) {
			count, err := s.gw.GetPendingCount(ctx)
			if err != nil {
				return nil, err
			}
			s.store.SetPendingCount(count)
			return nil, nil
		}); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
