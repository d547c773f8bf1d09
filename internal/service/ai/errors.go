package ai

import "errors"

var (
	// ErrMessageRequired is returned when the request carries no message.
	ErrMessageRequired = errors.New("message is required")
	// ErrUpstream wraps any failure talking to the remote model.
	ErrUpstream = errors.New("upstream model call failed")
)

// ConfigError reports a deployment problem such as a missing credential.
// Message is operator facing and safe to return to callers.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
