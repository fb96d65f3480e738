// Package relationship holds the pure friendship status model: which
// transitions are legal for a pair of users, which local collections a
// confirmed mutation invalidates, and how to read a gateway response.
package relationship

import (
	"github.com/mroshb/watch_club/internal/models"
)

// Friendship status values. The client never materializes none or
// rejected edges; they appear only in gateway responses.
const (
	StatusNone     = "none"
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// EdgeStatus is the gateway's answer to a status query for one pair.
// Actionable means the current user can accept or reject the edge,
// which is only true for a pending request initiated by the other side.
type EdgeStatus struct {
	Status     string `json:"status"`
	Actionable bool   `json:"actionable"`
	EdgeID     int64  `json:"edge_id,omitempty"`
}

// RefetchSet lists the locally cached relationship views a confirmed
// mutation invalidates.
type RefetchSet struct {
	Friends      bool
	Incoming     bool
	Outgoing     bool
	PendingCount bool
}

// Operation is a relationship mutation kind.
type Operation int

const (
	OpAccept Operation = iota
	OpReject
	OpCancel
	OpRemove
)

// RefetchFor returns the fixed operation-to-collections table. Send is
// handled separately by InterpretSendResult because its blast radius
// depends on the server-reported outcome.
func RefetchFor(op Operation) RefetchSet {
	switch op {
	case OpAccept:
		return RefetchSet{Incoming: true, Friends: true, PendingCount: true}
	case OpReject:
		return RefetchSet{Incoming: true, PendingCount: true}
	case OpCancel:
		return RefetchSet{Outgoing: true, PendingCount: true}
	case OpRemove:
		return RefetchSet{Friends: true}
	}
	return RefetchSet{}
}

// InterpretSendResult maps the server's reported status after a send
// to the collections to refetch. A pending result touched only the
// outgoing list; an accepted result means the server collapsed two
// crossing requests into a friendship, so everything moved.
func InterpretSendResult(status string) RefetchSet {
	if status == StatusAccepted {
		return RefetchSet{Friends: true, Incoming: true, Outgoing: true, PendingCount: true}
	}
	return RefetchSet{Outgoing: true}
}

// Verdict is the result of the local precondition check before a send.
type Verdict struct {
	// Skip means no gateway call should be made.
	Skip bool
	// Status is the locally known status justifying the skip, or
	// none when the send may proceed.
	Status string
}

// CanSend checks the locally cached collections before a send request.
// This is defense, not the source of truth: the server still enforces
// the one-edge-per-pair invariant and reports a conflict on violation.
func CanSend(selfID, targetID int64, friends []models.FriendProfile, incoming, outgoing []models.FriendRequest) Verdict {
	if selfID == targetID {
		return Verdict{Skip: true, Status: StatusNone}
	}
	for _, f := range friends {
		if f.UserID == targetID {
			return Verdict{Skip: true, Status: StatusAccepted}
		}
	}
	for _, r := range outgoing {
		if r.ToUserID == targetID {
			return Verdict{Skip: true, Status: StatusPending}
		}
	}
	for _, r := range incoming {
		if r.FromUserID == targetID {
			// An edge already exists; accepting it is the right move,
			// not sending a duplicate.
			return Verdict{Skip: true, Status: StatusPending}
		}
	}
	return Verdict{Status: StatusNone}
}

// ValidStatus reports whether a gateway-reported status is one the
// client understands.
func ValidStatus(status string) bool {
	switch status {
	case StatusNone, StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
