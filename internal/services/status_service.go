package services

import (
	"context"

	"github.com/mroshb/watch_club/internal/gateway"
	"github.com/mroshb/watch_club/internal/relationship"
)

// StatusService answers friendship status queries for arbitrary users.
// Profile views may show users absent from every cached collection, so
// the query always goes to the remote store instead of the cache.
type StatusService struct {
	session Session
	gw      gateway.Gateway
}

func NewStatusService(session Session, gw gateway.Gateway) *StatusService {
	return &StatusService{
		session: session,
		gw:      gw,
	}
}

// CheckFriendshipStatus reports the edge status toward userID and
// whether the current user can act on it. Querying one's own id is
// answered locally without a network call.
func (s *StatusService) CheckFriendshipStatus(ctx context.Context, userID int64) (*relationship.EdgeStatus, error) {
	if userID == s.session.UserID {
		return &relationship.EdgeStatus{Status: relationship.StatusNone, Actionable: false}, nil
	}
	return s.gw.GetFriendshipStatus(ctx, userID)
}
