package models

import (
	"time"
)

// FriendProfile is an accepted friend as seen by the current user.
type FriendProfile struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	EdgeID    int64     `json:"edge_id"`
	Since     time.Time `json:"since"`
}

// FriendRequest is a pending friendship edge. The same shape serves
// both directions; which collection it lives in encodes direction.
type FriendRequest struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	FromName   string    `json:"from_name,omitempty"`
	ToName     string    `json:"to_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
