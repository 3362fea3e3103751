package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used for classification with errors.Is.
var (
	// ErrInvalidCredentials marks a login the case API rejected.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// ErrMalformedSession marks persisted session state that failed the
	// shape check. It is recovered locally (the store clears itself) and
	// must never reach the visitor.
	ErrMalformedSession = errors.New("sesión almacenada corrupta")
	// ErrNotFound marks a case or user the API does not know.
	ErrNotFound = errors.New("recurso no encontrado")
)

// CredentialsError is a rejected login carrying the case API's message when
// one was provided. It matches ErrInvalidCredentials under errors.Is.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrInvalidCredentials.Error()
}

func (e *CredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// ValidationError carries a case API validation message that is shown to the
// visitor verbatim on the originating screen.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError wraps a network failure or a non-2xx response that did not
// include a structured message. Status is zero when the call never reached
// the API.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: el servidor respondió %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
