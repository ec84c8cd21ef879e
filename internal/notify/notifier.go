// Package notify carries one-shot user-facing messages, the terminal
// equivalent of the dashboard's toast notifications.
package notify

// Notifier delivers one-shot messages to the user. Implementations must not
// block and must not fail the calling operation.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Noop discards all notifications
type Noop struct{}

func (Noop) Success(string) {}
func (Noop) Error(string)   {}
func (Noop) Info(string)    {}
