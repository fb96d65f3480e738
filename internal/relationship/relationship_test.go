package relationship

import (
	"testing"

	"github.com/mroshb/watch_club/internal/models"
)

func TestCanSend(t *testing.T) {
	friends := []models.FriendProfile{{UserID: 3, Name: "Sam"}}
	incoming := []models.FriendRequest{{ID: 10, FromUserID: 4, ToUserID: 1}}
	outgoing := []models.FriendRequest{{ID: 11, FromUserID: 1, ToUserID: 5}}

	tests := []struct {
		name       string
		target     int64
		wantSkip   bool
		wantStatus string
	}{
		{name: "self", target: 1, wantSkip: true, wantStatus: StatusNone},
		{name: "already friends", target: 3, wantSkip: true, wantStatus: StatusAccepted},
		{name: "incoming pending", target: 4, wantSkip: true, wantStatus: StatusPending},
		{name: "outgoing pending", target: 5, wantSkip: true, wantStatus: StatusPending},
		{name: "stranger", target: 6, wantSkip: false, wantStatus: StatusNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CanSend(1, tt.target, friends, incoming, outgoing)
			if v.Skip != tt.wantSkip {
				t.Errorf("Skip = %v, want %v", v.Skip, tt.wantSkip)
			}
			if v.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", v.Status, tt.wantStatus)
			}
		})
	}
}

func TestRefetchFor(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want RefetchSet
	}{
		{
			name: "accept",
			op:   OpAccept,
			want: RefetchSet{Incoming: true, Friends: true, PendingCount: true},
		},
		{
			name: "reject",
			op:   OpReject,
			want: RefetchSet{Incoming: true, PendingCount: true},
		},
		{
			name: "cancel",
			op:   OpCancel,
			want: RefetchSet{Outgoing: true, PendingCount: true},
		},
		{
			name: "remove",
			op:   OpRemove,
			want: RefetchSet{Friends: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RefetchFor(tt.op); got != tt.want {
				t.Errorf("RefetchFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInterpretSendResult(t *testing.T) {
	if got := InterpretSendResult(StatusPending); got != (RefetchSet{Outgoing: true}) {
		t.Errorf("pending result = %+v, want outgoing only", got)
	}

	want := RefetchSet{Friends: true, Incoming: true, Outgoing: true, PendingCount: true}
	if got := InterpretSendResult(StatusAccepted); got != want {
		t.Errorf("accepted result = %+v, want everything", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNone, StatusPending, StatusAccepted, StatusRejected} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("blocked") {
		t.Error(`ValidStatus("blocked") = true, want false`)
	}
}
