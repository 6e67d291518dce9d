package fingerprint

import (
	"errors"
	"fmt"
)

const (
	errorCodePatternCompile = "FINGERPRINT_PATTERN_COMPILE"
	errorCodeDecode         = "FINGERPRINT_BASE64_DECODE"
	errorCodeInvalidText    = "FINGERPRINT_INVALID_TEXT"
	errorCodeInvalidCatalog = "FINGERPRINT_INVALID_CATALOG"
)

var (
	// ErrPatternCompile indicates a fingerprint pattern failed to compile.
	ErrPatternCompile = errors.New("pattern compile failed")
	// ErrDecode indicates malformed base64 input.
	ErrDecode = errors.New("base64 decode failed")
	// ErrInvalidText indicates decoded bytes are not valid UTF-8 text.
	ErrInvalidText = errors.New("decoded input is not valid text")
	// ErrInvalidCatalog indicates a catalog could not be parsed or validated.
	ErrInvalidCatalog = errors.New("invalid fingerprint catalog")
)

type errorCoder interface {
	error
	Code() string
}

type withCodeError struct {
	error
	code string
}

func (e *withCodeError) Code() string {
	return e.code
}

func (e *withCodeError) Unwrap() error {
	return e.error
}

// WithErrorCode annotates err with a fingerprint error code.
func WithErrorCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &withCodeError{error: err, code: code}
}

// NewPatternCompileError formats a pattern compilation failure.
func NewPatternCompileError(pattern string, cause error) error {
	return WithErrorCode(fmt.Errorf("%w: %q: %v", ErrPatternCompile, pattern, cause), errorCodePatternCompile)
}

// NewDecodeError formats a base64 decoding failure.
func NewDecodeError(cause error) error {
	return WithErrorCode(fmt.Errorf("%w: %v", ErrDecode, cause), errorCodeDecode)
}

// NewInvalidTextError formats an invalid-text failure.
func NewInvalidTextError() error {
	return WithErrorCode(fmt.Errorf("%w: decoded bytes are not UTF-8", ErrInvalidText), errorCodeInvalidText)
}

// NewInvalidCatalogError formats a catalog parse or validation failure.
func NewInvalidCatalogError(format string, args ...any) error {
	return WithErrorCode(fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...)), errorCodeInvalidCatalog)
}

// ErrorCode resolves an error to its fingerprint error code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var coded errorCoder
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, ErrPatternCompile):
		return errorCodePatternCompile
	case errors.Is(err, ErrDecode):
		return errorCodeDecode
	case errors.Is(err, ErrInvalidText):
		return errorCodeInvalidText
	default:
		return errorCodeInvalidCatalog
	}
}

// ExitCode maps fingerprint errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, ErrDecode), errors.Is(err, ErrInvalidText):
		return 2
	case errors.Is(err, ErrPatternCompile), errors.Is(err, ErrInvalidCatalog):
		return 3
	default:
		return 1
	}
}
