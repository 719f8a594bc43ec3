package discovery

import "fmt"

type ErrorType int

const (
	ErrorTypeNetwork ErrorType = iota
	ErrorTypeArchive
	ErrorTypeFilesystem
	ErrorTypeNotFound
	ErrorTypeAmbiguous
)

type DiscoveryError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

func (e *DiscoveryError) Is(target error) bool {
	if t, ok := target.(*DiscoveryError); ok {
		return e.Type == t.Type
	}
	return false
}

// statusHint maps distinguished HTTP status codes to actionable advice.
func statusHint(status int) string {
	switch status {
	case 403:
		return "access denied; a GitHub token may be required ('skillsync config set github_token <token>')"
	case 404:
		return "repository or branch not found; check the repo configuration"
	case 429:
		return "rate limited by GitHub; wait a moment or configure a token"
	default:
		return "check your network connection"
	}
}

// Logger is the structured logging interface used by discovery.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
}

// NoOpLogger discards all log output.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, fields ...interface{})            {}
func (NoOpLogger) Info(msg string, fields ...interface{})             {}
func (NoOpLogger) Warn(msg string, fields ...interface{})             {}
func (NoOpLogger) Error(msg string, err error, fields ...interface{}) {}
