package models

import (
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mroshb/watch_club/pkg/errors"
)

// Watch status constants
const (
	StatusWatchlist = "watchlist"
	StatusWatching  = "watching"
	StatusWatched   = "watched"

	// StatusAll is a filter tab value only; no item ever carries it.
	StatusAll = "all"
)

// TrackedItem is one entry in the signed-in user's personal list.
// IDs are assigned by the server; items created locally hold a negative
// provisional id until the create call confirms.
type TrackedItem struct {
	ID             int64     `json:"id"`
	ExternalRef    string    `json:"external_ref,omitempty"`
	Title          string    `json:"title"`
	PosterURL      string    `json:"poster_url,omitempty"`
	ExternalRating *float64  `json:"external_rating,omitempty"`
	UserRating     float64   `json:"user_rating"`
	Status         string    `json:"status"`
	AddedAt        time.Time `json:"added_at"`
}

func ValidWatchStatus(status string) bool {
	switch status {
	case StatusWatchlist, StatusWatching, StatusWatched:
		return true
	}
	return false
}

// stripPolicy removes all markup from text arriving via drafts. Titles
// from the remote catalog occasionally embed entities and tags.
var stripPolicy = bluemonday.StrictPolicy()

// ItemDraft is the input to an add mutation. ExternalRef may be empty
// for manually added items.
type ItemDraft struct {
	ExternalRef    string   `json:"external_ref,omitempty"`
	Title          string   `json:"title"`
	PosterURL      string   `json:"poster_url,omitempty"`
	ExternalRating *float64 `json:"external_rating,omitempty"`
}

func (d *ItemDraft) Sanitize() {
	d.Title = strings.TrimSpace(stripPolicy.Sanitize(d.Title))
}

func (d *ItemDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New(errors.ErrCodeValidationFailed, "title is required")
	}
	if d.ExternalRating != nil && (*d.ExternalRating < 0 || *d.ExternalRating > 10) {
		return errors.New(errors.ErrCodeValidationFailed, "external rating must be between 0 and 10")
	}
	return nil
}

// ItemPatch is a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Status     *string  `json:"status,omitempty"`
	UserRating *float64 `json:"user_rating,omitempty"`
}

func (p *ItemPatch) Validate() error {
	if p.Status == nil && p.UserRating == nil {
		return errors.New(errors.ErrCodeValidationFailed, "patch must change at least one field")
	}
	if p.Status != nil && !ValidWatchStatus(*p.Status) {
		return errors.New(errors.ErrCodeValidationFailed, "invalid watch status")
	}
	if p.UserRating != nil && (*p.UserRating < 0 || *p.UserRating > 10) {
		return errors.New(errors.ErrCodeValidationFailed, "user rating must be between 0 and 10")
	}
	return nil
}

// Apply merges the patch onto a copy of the item.
func (p *ItemPatch) Apply(item TrackedItem) TrackedItem {
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.UserRating != nil {
		item.UserRating = *p.UserRating
	}
	return item
}
