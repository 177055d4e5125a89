package parser

import (
	"errors"
	"fmt"
)

var (
	ErrPatternMatchFailed = errors.New("regular expression matching failed")
	ErrOutOfRange         = errors.New("input is out of range")
	ErrSignInRequired     = errors.New("this page requires you to log on")
	ErrAttributeNotFound  = errors.New("attribute not found")
	ErrElementNotFound    = errors.New("element not found")
	ErrFromServer         = errors.New("error from server")
	ErrMalformed          = errors.New("malformed value")
)

// AttributeError reports a required attribute missing from an element.
type AttributeError struct {
	Name string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute `%s` cannot be found", e.Name)
}

func (e *AttributeError) Is(target error) bool { return target == ErrAttributeNotFound }

// ElementError reports that a selector matched nothing.
type ElementError struct {
	Selector string
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("dom `%s` cannot be found", e.Selector)
}

func (e *ElementError) Is(target error) bool { return target == ErrElementNotFound }

// ServerError carries a message the site rendered in place of the expected page.
// These are legitimate responses, not broken markup.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "error from server: " + e.Message
}

func (e *ServerError) Is(target error) bool { return target == ErrFromServer }

// MalformedError wraps a numeric or date conversion failure.
type MalformedError struct {
	Field string
	Err   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Field, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func attrNotFound(name string) error { return &AttributeError{Name: name} }

func elemNotFound(selector string) error { return &ElementError{Selector: selector} }

func fromServer(msg string) error { return &ServerError{Message: msg} }

func malformed(field string, err error) error { return &MalformedError{Field: field, Err: err} }
