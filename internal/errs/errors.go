// Package errs defines the error taxonomy shared by the clrsync engine.
package errs

import (
	"errors"
	"fmt"
)

// Code classifies an engine failure.
type Code int

const (
	Unknown Code = iota

	FileNotFound
	FileOpenFailed
	FileReadFailed
	FileWriteFailed
	DirCreateFailed

	ParseFailed
	InvalidFormat

	ConfigMissing
	ConfigInvalid

	TemplateNotFound
	TemplateLoadFailed
	TemplateApplyFailed

	PaletteNotFound
	PaletteLoadFailed

	InvalidArg
	ResourceMissing
)

var codeNames = map[Code]string{
	Unknown:             "Unknown error",
	FileNotFound:        "File not found",
	FileOpenFailed:      "Failed to open file",
	FileReadFailed:      "Failed to read file",
	FileWriteFailed:     "Failed to write file",
	DirCreateFailed:     "Failed to create directory",
	ParseFailed:         "Parse failed",
	InvalidFormat:       "Invalid format",
	ConfigMissing:       "Configuration missing",
	ConfigInvalid:       "Configuration invalid",
	TemplateNotFound:    "Template not found",
	TemplateLoadFailed:  "Failed to load template",
	TemplateApplyFailed: "Failed to apply template",
	PaletteNotFound:     "Palette not found",
	PaletteLoadFailed:   "Failed to load palette",
	InvalidArg:          "Invalid argument",
	ResourceMissing:     "Resource missing",
}

// String returns the default human-readable message for the code.
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Unknown error code %d", int(c))
}

// Error is an engine error carrying a code, a message, and an optional
// context such as the offending path or template name.
type Error struct {
	Code    Code
	Message string
	Context string
	Err     error
}

// New creates an Error. An empty message falls back to the code's name.
func New(code Code, message, context string) *Error {
	if message == "" {
		message = code.String()
	}
	return &Error{Code: code, Message: message, Context: context}
}

// Wrap creates an Error that records err as its cause.
func Wrap(code Code, err error, message, context string) *Error {
	e := New(code, message, context)
	e.Err = err
	return e
}

// Error renders "message [context]".
func (e *Error) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return e.Message + " [" + e.Context + "]"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, errs.New(errs.PaletteNotFound, "", "")) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or Unknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
