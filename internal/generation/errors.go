package generation

import (
	"errors"
	"fmt"
)

// ErrMissingCredential reports that no completion-service credential is configured.
var ErrMissingCredential = errors.New("no completion service credential configured")

// ConfigurationError is returned before any network call when the generator
// cannot be used as configured.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ServiceError wraps a transport, authentication or status failure from the
// completion service. The request is not retried.
type ServiceError struct {
	Model string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service error (model %s): %v", e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ResponseError reports a reply that carried no usable recipe text.
type ResponseError struct {
	Reason string
}

func (e *ResponseError) Error() string {
	return "invalid completion response: " + e.Reason
}
