// Package common provides shared constants, types, and utilities
// used across the Voice Intelligence application.
package common

import "errors"

// Sentinel errors for shell and storage operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Menu errors.
	ErrUnknownMenuID   = errors.New("unknown menu identifier")
	ErrDuplicateMenuID = errors.New("duplicate menu identifier")
	ErrInvalidMenu     = errors.New("invalid menu definition")

	// Host errors.
	ErrHostNotReady = errors.New("host window not ready")

	// Store errors.
	ErrStoreClosed   = errors.New("settings store closed")
	ErrSettingType   = errors.New("setting has unexpected type")
	ErrInvalidTheme  = errors.New("invalid theme mode")
	ErrEntryNotFound = errors.New("history entry not found")

	// Credential errors.
	ErrKeyNotFound      = errors.New("api key not found")
	ErrUnknownProvider  = errors.New("unknown api provider")
	ErrCredentialStore  = errors.New("failed to store credentials")
	ErrEncryption       = errors.New("encryption error")
	ErrDecryption       = errors.New("decryption error")
	ErrDemoLimitReached = errors.New("demo request limit reached")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
