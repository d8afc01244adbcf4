package irf

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("irf: invalid configuration")

	// ErrIntegration matches every *IntegrationError.
	ErrIntegration = errors.New("irf: integration failed")
)

// ConfigurationError reports an invalid impulse, kind or horizon. It is
// always returned before the model is touched.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("irf: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// IntegrationError reports a failure while evaluating or integrating the
// model. Parameters have been restored by the time it is returned.
type IntegrationError struct {
	Err error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("irf: integration failed: %v", e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func (e *IntegrationError) Is(target error) bool {
	return target == ErrIntegration
}
