package notify

import (
	"github.com/rs/zerolog"
)

// Kind classifies a notification for the delivery layer.
type Kind string

const (
	KindInfo     Kind = "info"
	KindWarning  Kind = "warning"
	KindCapacity Kind = "capacity"
	KindBilling  Kind = "billing"
)

// Notifier is the fire-and-forget messaging collaborator. Delivery failure
// is logged, never propagated.
type Notifier interface {
	Notify(userID uint, title, message string, kind Kind)
}

// LogNotifier writes notifications to the process log. It stands in until a
// real delivery channel is wired behind the same interface.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(userID uint, title, message string, kind Kind) {
	n.log.Info().
		Uint("user_id", userID).
		Str("kind", string(kind)).
		Str("title", title).
		Msg(message)
}
