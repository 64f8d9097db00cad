// Package errors defines the error taxonomy shared by the catalog, the AI
// provider, the template engine and the orchestrator. Every failure carries a
// Code plus enough context (field, value, path or upstream message) for a
// caller to render an actionable message without further investigation.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class.
type ErrorCode string

const (
	CodeUnknown      ErrorCode = "1000"
	CodeInvalidParam ErrorCode = "1001"
	CodeInternal     ErrorCode = "1007"

	// Validation (caller's fault, never retried).
	CodeUnknownProjectType ErrorCode = "1101"
	CodeUnknownTechStack   ErrorCode = "1102"
	CodeUnknownLibrary     ErrorCode = "1103"

	// AI provider.
	CodeAIUnavailable   ErrorCode = "2001"
	CodeAIRequestFailed ErrorCode = "2002"

	// Environment and rendering.
	CodeTemplateSourceNotFound ErrorCode = "3001"
	CodeOutputRootUnwritable   ErrorCode = "3002"
	CodeTemplateRenderError    ErrorCode = "3003"
)

// AppError is the concrete error type returned across package boundaries.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Field      string    `json:"field,omitempty"`
	Value      string    `json:"value,omitempty"`
	Path       string    `json:"path,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	switch {
	case e.Field != "":
		msg += fmt.Sprintf(": %s=%q", e.Field, e.Value)
	case e.Path != "":
		msg += fmt.Sprintf(": %s", e.Path)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil && e.Err.Error() != e.Detail {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError carrying the same code, so sentinel values such as
// ErrUnknownLibrary work with errors.Is regardless of field or value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy carrying detail.
func (e *AppError) WithDetail(detail string) *AppError {
	out := *e
	out.Detail = detail
	return &out
}

// WithError returns a copy wrapping err.
func (e *AppError) WithError(err error) *AppError {
	out := *e
	out.Err = err
	return &out
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap creates an application error wrapping err.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidParam, CodeUnknownProjectType, CodeUnknownTechStack, CodeUnknownLibrary, CodeAIUnavailable:
		return http.StatusBadRequest
	case CodeAIRequestFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidParam           = New(CodeInvalidParam, "invalid parameter")
	ErrUnknownProjectType     = New(CodeUnknownProjectType, "unknown project type")
	ErrUnknownTechStack       = New(CodeUnknownTechStack, "unknown tech stack")
	ErrUnknownLibrary         = New(CodeUnknownLibrary, "unknown library")
	ErrAIUnavailable          = New(CodeAIUnavailable, "AI service not available")
	ErrAIRequestFailed        = New(CodeAIRequestFailed, "AI request failed")
	ErrTemplateSourceNotFound = New(CodeTemplateSourceNotFound, "template source not found")
	ErrOutputRootUnwritable   = New(CodeOutputRootUnwritable, "output root is not writable")
	ErrTemplateRender         = New(CodeTemplateRenderError, "template render failed")
	ErrInternal               = New(CodeInternal, "internal error")
)

// InvalidField reports a missing or malformed input field.
func InvalidField(field, value, message string) *AppError {
	e := New(CodeInvalidParam, message)
	e.Field = field
	e.Value = value
	return e
}

// UnknownProjectType reports a project type absent from the catalog.
func UnknownProjectType(value string) *AppError {
	e := New(CodeUnknownProjectType, "unknown project type")
	e.Field = "project_type"
	e.Value = value
	return e
}

// UnknownTechStack reports a stack not registered for the project type.
func UnknownTechStack(projectType, value string) *AppError {
	e := New(CodeUnknownTechStack, "unknown tech stack")
	e.Field = "tech_stack"
	e.Value = value
	e.Detail = fmt.Sprintf("not available for project type %q", projectType)
	return e
}

// UnknownLibrary reports the first library not registered for the stack.
func UnknownLibrary(techStack, value string) *AppError {
	e := New(CodeUnknownLibrary, "unknown library")
	e.Field = "libraries"
	e.Value = value
	e.Detail = fmt.Sprintf("not available for tech stack %q", techStack)
	return e
}

// AIUnavailable reports missing AI credentials or configuration.
func AIUnavailable(hint string) *AppError {
	return New(CodeAIUnavailable, "AI service not available").WithDetail(hint)
}

// AIRequestFailed wraps an upstream AI failure, keeping its text in Detail.
func AIRequestFailed(err error) *AppError {
	e := Wrap(err, CodeAIRequestFailed, "AI request failed")
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// TemplateSourceNotFound reports a missing or unusable template directory.
func TemplateSourceNotFound(path, reason string) *AppError {
	e := New(CodeTemplateSourceNotFound, "template source not found")
	e.Path = path
	e.Detail = reason
	return e
}

// OutputRootUnwritable reports a path under the output root that cannot be
// created or written.
func OutputRootUnwritable(path string, err error) *AppError {
	e := Wrap(err, CodeOutputRootUnwritable, "output root is not writable")
	e.Path = path
	return e
}

// TemplateRenderError reports a template that could not be rendered. It
// signals drift between validation and templates and is never retryable.
func TemplateRenderError(templateName string, err error) *AppError {
	e := Wrap(err, CodeTemplateRenderError, "template render failed")
	e.Path = templateName
	return e
}

// IsAppError reports whether err is (or wraps) an *AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts err into an *AppError, wrapping unknown errors.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// IsValidation reports whether err is a caller-correctable input error.
func IsValidation(err error) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case CodeInvalidParam, CodeUnknownProjectType, CodeUnknownTechStack, CodeUnknownLibrary:
		return true
	}
	return false
}

// Retryable reports whether retrying the whole request may succeed.
func Retryable(err error) bool {
	return stderrors.Is(err, ErrAIRequestFailed)
}
