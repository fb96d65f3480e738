package services

// Session carries the signed-in user's identity into every core
// operation. Nothing in this layer reads ambient global state.
type Session struct {
	UserID int64
}
