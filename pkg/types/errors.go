package types

import (
	"errors"
	"fmt"
)

// Sentinels for the three failure classes of the text cipher. Every typed
// error below matches exactly one of them with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMalformedInput   = errors.New("malformed input")
	ErrDecryptionFailed = errors.New("decryption failed")
)

type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e InvalidArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid argument %q: must have a valid value", e.Argument)
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Reason)
}

func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type MalformedInputError struct {
	Reason string
	Err    error
}

func (e MalformedInputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
}

func (e MalformedInputError) Unwrap() error {
	return e.Err
}

func (e MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

type DecryptionFailedError struct {
	Err error
}

func (e DecryptionFailedError) Error() string {
	if e.Err == nil {
		return "decryption failed"
	}
	return fmt.Sprintf("decryption failed: %v", e.Err)
}

func (e DecryptionFailedError) Unwrap() error {
	return e.Err
}

func (e DecryptionFailedError) Is(target error) bool {
	return target == ErrDecryptionFailed
}
