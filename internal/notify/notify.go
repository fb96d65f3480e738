// Package notify carries user-facing notices out of the mutation layer
// without binding it to any particular rendering technology.
package notify

// Notice levels. Blocking notices interrupt the user; transient ones
// are shown and dismissed on their own.
const (
	LevelBlocking  = "blocking"
	LevelTransient = "transient"
)

type Notice struct {
	Level   string
	Code    string
	Message string
}

// Notifier receives notices raised by the mutation services.
type Notifier interface {
	Notify(Notice)
}

// Noop discards all notices.
type Noop struct{}

func (Noop) Notify(Notice) {}

func Blocking(code, message string) Notice {
	return Notice{Level: LevelBlocking, Code: code, Message: message}
}

func Transient(code, message string) Notice {
	return Notice{Level: LevelTransient, Code: code, Message: message}
}
