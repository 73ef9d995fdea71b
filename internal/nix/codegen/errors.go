// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import "fmt"

// UnsupportedError reports a reference to a function with no Nix
// implementation. The type checker catches this upstream; the generator
// still refuses to emit a call to a binding that does not exist.
type UnsupportedError struct {
	// Module is the module containing the reference
	Module string

	// Function is the referenced function's name
	Function string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: function %s has no implementation for the nix target", e.Module, e.Function)
}

// InternalError reports an IR shape the generator considers impossible
// for type-checked input. It is a bug in the caller or the generator.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal code generation error: " + e.Message
}

func internalf(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}
