package service

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned by constructors given a nil dependency.
var ErrNilDependency = errors.New("dependency cannot be nil")

// ServiceError wraps an unexpected failure, typically from the store, with
// the service and operation that hit it. Expected outcomes such as
// domain.ErrDeckNotFound are returned unwrapped.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func nilDependency(name string) error {
	return fmt.Errorf("%w: %s", ErrNilDependency, name)
}
