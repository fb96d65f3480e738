// Package gateway defines the contract to the authoritative remote
// store and its HTTP implementation. The gateway owns authentication
// and error classification; it never retries.
package gateway

import (
	"context"

	"github.com/mroshb/watch_club/internal/models"
	"github.com/mroshb/watch_club/internal/relationship"
)

// Gateway executes logical operations against the remote store. Every
// error returned is a classified *errors.AppError.
type Gateway interface {
	ListTrackedItems(ctx context.Context) ([]models.TrackedItem, error)
	CreateTrackedItem(ctx context.Context, draft models.ItemDraft) (*models.TrackedItem, error)
	UpdateTrackedItem(ctx context.Context, id int64, patch models.ItemPatch) error
	DeleteTrackedItem(ctx context.Context, id int64) error

	ListFriends(ctx context.Context) ([]models.FriendProfile, error)
	ListIncomingRequests(ctx context.Context) ([]models.FriendRequest, error)
	ListOutgoingRequests(ctx context.Context) ([]models.FriendRequest, error)
	GetPendingCount(ctx context.Context) (int, error)

	SendFriendRequest(ctx context.Context, userID int64) (string, error)
	AcceptFriendRequest(ctx context.Context, requestID int64) error
	RejectFriendRequest(ctx context.Context, requestID int64) error
	RemoveFriend(ctx context.Context, userID int64) error

	GetFriendshipStatus(ctx context.Context, userID int64) (*relationship.EdgeStatus, error)
}
