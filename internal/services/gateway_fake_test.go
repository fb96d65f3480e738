package services

import (
	"context"

	"github.com/mroshb/watch_club/internal/models"
	"github.com/mroshb/watch_club/internal/notify"
	"github.com/mroshb/watch_club/internal/relationship"
	"github.com/mroshb/watch_club/pkg/errors"
)

// fakeGateway scripts gateway behavior per operation and counts calls.
type fakeGateway struct {
	items    []models.TrackedItem
	friends  []models.FriendProfile
	incoming []models.FriendRequest
	outgoing []models.FriendRequest
	pending  int

	createErr error
	updateErr error
	updateFn  func(id int64, patch models.ItemPatch) error
	deleteErr error
	sendErr   error
	acceptErr error
	rejectErr error
	removeErr error
	listErr   error

	sendStatus string
	created    *models.TrackedItem
	status     *relationship.EdgeStatus

	calls map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sendStatus: relationship.StatusPending,
		calls:      make(map[string]int),
	}
}

func (f *fakeGateway) count(op string) {
	f.calls[op]++
}

func (f *fakeGateway) ListTrackedItems(ctx context.Context) ([]models.TrackedItem, error) {
	f.count("listItems")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeGateway) CreateTrackedItem(ctx context.Context, draft models.ItemDraft) (*models.TrackedItem, error) {
	f.count("createItem")
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	item := models.TrackedItem{
		ID:          1000,
		ExternalRef: draft.ExternalRef,
		Title:       draft.Title,
		Status:      models.StatusWatchlist,
	}
	return &item, nil
}

func (f *fakeGateway) UpdateTrackedItem(ctx context.Context, id int64, patch models.ItemPatch) error {
	f.count("updateItem")
	if f.updateFn != nil {
		return f.updateFn(id, patch)
	}
	return f.updateErr
}

func (f *fakeGateway) DeleteTrackedItem(ctx context.Context, id int64) error {
	f.count("deleteItem")
	return f.deleteErr
}

func (f *fakeGateway) ListFriends(ctx context.Context) ([]models.FriendProfile, error) {
	f.count("listFriends")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.friends, nil
}

func (f *fakeGateway) ListIncomingRequests(ctx context.Context) ([]models.FriendRequest, error) {
	f.count("listIncoming")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.incoming, nil
}

func (f *fakeGateway) ListOutgoingRequests(ctx context.Context) ([]models.FriendRequest, error) {
	f.count("listOutgoing")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.outgoing, nil
}

func (f *fakeGateway) GetPendingCount(ctx context.Context) (int, error) {
	f.count("pendingCount")
	if f.listErr != nil {
		return 0, f.listErr
	}
	return f.pending, nil
}

func (f *fakeGateway) SendFriendRequest(ctx context.Context, userID int64) (string, error) {
	f.count("send")
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return f.sendStatus, nil
}

func (f *fakeGateway) AcceptFriendRequest(ctx context.Context, requestID int64) error {
	f.count("accept")
	return f.acceptErr
}

func (f *fakeGateway) RejectFriendRequest(ctx context.Context, requestID int64) error {
	f.count("reject")
	return f.rejectErr
}

func (f *fakeGateway) RemoveFriend(ctx context.Context, userID int64) error {
	f.count("remove")
	return f.removeErr
}

func (f *fakeGateway) GetFriendshipStatus(ctx context.Context, userID int64) (*relationship.EdgeStatus, error) {
	f.count("status")
	if f.status != nil {
		return f.status, nil
	}
	return &relationship.EdgeStatus{Status: relationship.StatusNone}, nil
}

// recordingNotifier captures notices for assertions.
type recordingNotifier struct {
	notices []notify.Notice
}

func (r *recordingNotifier) Notify(n notify.Notice) {
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) last() (notify.Notice, bool) {
	if len(r.notices) == 0 {
		return notify.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

var transportErr = errors.New(errors.ErrCodeTransport, "simulated outage")
