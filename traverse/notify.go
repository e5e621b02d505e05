package traverse

import "github.com/treefind/treefind/logging"

// ErrorCategory classifies per-entry enumeration failures so callers
// can apply different reporting policies.
type ErrorCategory int

// Supported error categories.
const (
	CategoryPermissionDenied ErrorCategory = iota
	CategoryReadError
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryPermissionDenied:
		return "permission denied"
	case CategoryReadError:
		return "read error"
	default:
		return "unknown"
	}
}

// ErrorRecord is a categorized, non-fatal enumeration failure.
type ErrorRecord struct {
	Category ErrorCategory
	Path     string
	Err      error
}

// Notifier receives traversal side-channel notifications inline with
// sequence production.
type Notifier interface {
	Warning(msg string)
	Error(rec ErrorRecord)
}

type nullNotifier struct{}

func (nullNotifier) Warning(msg string)    {}
func (nullNotifier) Error(rec ErrorRecord) {}

// NullNotifier returns a notifier that discards all notifications.
func NullNotifier() Notifier {
	return nullNotifier{}
}

type logNotifier struct {
	l logging.Logger
}

func (n logNotifier) Warning(msg string) {
	n.l.Warnf("%v", msg)
}

func (n logNotifier) Error(rec ErrorRecord) {
	n.l.Errorf("%v: %v: %v", rec.Category, rec.Path, rec.Err)
}

// NewLogNotifier returns a notifier that routes notifications to the
// provided logger.
func NewLogNotifier(l logging.Logger) Notifier {
	return logNotifier{l}
}
