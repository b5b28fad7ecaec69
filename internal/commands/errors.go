package commands

import (
	"context"
	"errors"

	"github.com/goliatone/go-assetfield/internal/store"
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors.
const (
	CodeValidation   = "COMMAND_VALIDATION_FAILED"
	CodeCanceled     = "COMMAND_CONTEXT_CANCELED"
	CodeTimeout      = "COMMAND_CONTEXT_TIMEOUT"
	CodeNotFound     = "COMMAND_TARGET_NOT_FOUND"
	CodeExecution    = "COMMAND_EXECUTION_FAILED"
	CodeContextError = "COMMAND_CONTEXT_ERROR"
)

// errorClass tags an uncategorised error with one category and text code.
type errorClass func(error) error

func class(wrap func(error) error) errorClass {
	return func(err error) error {
		if err == nil || goerrors.IsWrapped(err) {
			return err
		}
		return wrap(err)
	}
}

var (
	validationClass = class(func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").WithTextCode(CodeValidation)
	})
	canceledClass = class(func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").WithTextCode(CodeCanceled)
	})
	timeoutClass = class(func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").WithTextCode(CodeTimeout)
	})
	notFoundClass = class(func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "command target not found").WithTextCode(CodeNotFound)
	})
	executionClass = class(func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").WithTextCode(CodeExecution)
	})
	contextClass = class(func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").WithTextCode(CodeContextError)
	})
)

func wrapValidationError(err error) error {
	return validationClass(err)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return canceledClass(err)
	case errors.Is(err, context.DeadlineExceeded):
		return timeoutClass(err)
	default:
		return contextClass(err)
	}
}

func wrapExecuteError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	case store.IsNotFound(err):
		return notFoundClass(err)
	default:
		return executionClass(err)
	}
}
