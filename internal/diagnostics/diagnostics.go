// Package diagnostics defines the error values shared by every compiler
// stage. Stages never print directly; they attach DiagnosticErrors to the
// pipeline context and the driver reports them at the end of the unit.
package diagnostics

import (
	"fmt"

	"github.com/zetalang/zeta/internal/ast"
)

// ErrorCode identifies a diagnostic family. The letter names the stage that
// raises it: I = IR decoding, R = resolution, O = optimizer registry,
// C = code generation.
type ErrorCode string

const (
	// IR decoding
	ErrI001 ErrorCode = "I001" // unit file unreadable
	ErrI002 ErrorCode = "I002" // malformed IR document
	ErrI003 ErrorCode = "I003" // unknown node kind
	ErrI004 ErrorCode = "I004" // required field missing or mistyped

	// Resolution
	ErrR001 ErrorCode = "R001" // invalid identifier
	ErrR002 ErrorCode = "R002" // conflicting use alias

	// Optimizer registry
	ErrO001 ErrorCode = "O001" // duplicate optimizer name
	ErrO002 ErrorCode = "O002" // invalid optimizer descriptor

	// Code generation
	ErrC001 ErrorCode = "C001" // unsupported construct reached the backend
)

// DiagnosticError is a positioned compiler error.
type DiagnosticError struct {
	Code     ErrorCode
	Position ast.Position
	Message  string
}

// NewError builds a diagnostic at the given source position. Positions with
// a zero line are treated as file- or project-level.
func NewError(code ErrorCode, pos ast.Position, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Position: pos, Message: message}
}

// NewErrorf is NewError with fmt.Sprintf formatting.
func NewErrorf(code ErrorCode, pos ast.Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Position: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *DiagnosticError) Error() string {
	switch {
	case e.Position.File != "" && e.Position.Line > 0:
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.Position.File, e.Position.Line, e.Position.Char, e.Code, e.Message)
	case e.Position.File != "":
		return fmt.Sprintf("%s: [%s] %s", e.Position.File, e.Code, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}

// Is makes errors.Is match on the code, so callers can test for a family
// without holding the exact value.
func (e *DiagnosticError) Is(target error) bool {
	t, ok := target.(*DiagnosticError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
