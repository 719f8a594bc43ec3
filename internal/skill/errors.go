package skill

import "fmt"

type ErrorType int

const (
	ErrorTypeNotFound ErrorType = iota
	ErrorTypeConflict
	ErrorTypeInvalidInput
	ErrorTypeFilesystem
)

type SkillError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *SkillError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SkillError) Unwrap() error {
	return e.Err
}

func (e *SkillError) Is(target error) bool {
	if t, ok := target.(*SkillError); ok {
		return e.Type == t.Type
	}
	return false
}

// Logger is the structured logging interface used by the service.
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
