package authn

import "github.com/rs/zerolog/log"

// Notifier is the user-visible side channel every session operation reports
// through, the transient toast of the browser client. Implementations must be
// safe for concurrent use.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier reports notifications through the process logger. Used when no
// UI shell is attached, and as a safe default.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Info().Msg(message)
}

func (LogNotifier) Error(message string) {
	log.Warn().Msg(message)
}
