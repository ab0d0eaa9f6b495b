package schemaforge

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the generation pipeline. Typed errors
// below match these through their Is methods, so callers can use
// errors.Is without holding a reference to the concrete type.
var (
	// ErrUnknownType is returned when an abstract column type has no
	// entry in the type mapping table.
	ErrUnknownType = errors.New("schemaforge: unknown abstract type")

	// ErrInvalidParameter is returned when a type requires parameters
	// (length, precision, scale) that are missing or out of range.
	ErrInvalidParameter = errors.New("schemaforge: invalid type parameter")

	// ErrSchemaValidation is returned when a schema document fails
	// semantic validation.
	ErrSchemaValidation = errors.New("schemaforge: schema validation failed")

	// ErrUnsupportedSchema is returned for schema constructs that are
	// recognized but deliberately not supported (e.g. composite keys).
	ErrUnsupportedSchema = errors.New("schemaforge: unsupported schema construct")

	// ErrUnresolvedVariable is returned when a template references a
	// variable that is absent from the generation context.
	ErrUnresolvedVariable = errors.New("schemaforge: unresolved template variable")

	// ErrOutputCollision is returned when two templates derive the same
	// output path for one generation run.
	ErrOutputCollision = errors.New("schemaforge: output path collision")
)

// UnknownTypeError reports an abstract type with no mapping entry.
type UnknownTypeError struct {
	Type    string // abstract type name as written in the schema
	Dialect string // dialect the lookup was performed against
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	if e.Dialect != "" {
		return fmt.Sprintf("schemaforge: unknown abstract type %q (dialect %s)", e.Type, e.Dialect)
	}
	return fmt.Sprintf("schemaforge: unknown abstract type %q", e.Type)
}

// Is reports whether the target matches the sentinel for UnknownTypeError.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// NewUnknownTypeError returns a new UnknownTypeError.
func NewUnknownTypeError(typeName, dialect string) *UnknownTypeError {
	return &UnknownTypeError{Type: typeName, Dialect: dialect}
}

// IsUnknownType reports whether the error is an UnknownTypeError.
func IsUnknownType(err error) bool {
	var e *UnknownTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownType)
}

// InvalidParameterError reports missing or invalid type parameters.
type InvalidParameterError struct {
	Type    string // abstract type name
	Param   string // parameter name: "length", "precision", "scale"
	Message string
}

// Error returns the error string.
func (e *InvalidParameterError) Error() string {
	var b strings.Builder
	b.WriteString("schemaforge: invalid parameter")
	if e.Param != "" {
		b.WriteString(" ")
		b.WriteString(e.Param)
	}
	if e.Type != "" {
		b.WriteString(" for type ")
		b.WriteString(e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel for InvalidParameterError.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// NewInvalidParameterError returns a new InvalidParameterError.
func NewInvalidParameterError(typeName, param, message string) *InvalidParameterError {
	return &InvalidParameterError{Type: typeName, Param: param, Message: message}
}

// IsInvalidParameter reports whether the error is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var e *InvalidParameterError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidParameter)
}

// SchemaValidationError reports a semantic problem in a schema document.
// Table and Field carry the offending location so the caller can fix
// the input and retry.
type SchemaValidationError struct {
	Table   string
	Field   string
	Message string
	Cause   error
}

// Error returns the error string.
func (e *SchemaValidationError) Error() string {
	var b strings.Builder
	b.WriteString("schemaforge: schema validation error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel for SchemaValidationError.
func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// NewSchemaValidationError returns a new SchemaValidationError.
func NewSchemaValidationError(table, field, message string, cause error) *SchemaValidationError {
	return &SchemaValidationError{Table: table, Field: field, Message: message, Cause: cause}
}

// IsSchemaValidation reports whether the error is a SchemaValidationError.
func IsSchemaValidation(err error) bool {
	var e *SchemaValidationError
	return errors.As(err, &e) || errors.Is(err, ErrSchemaValidation)
}

// UnsupportedSchemaError reports a schema construct the generator
// recognizes but refuses to handle, rather than mishandling it silently.
type UnsupportedSchemaError struct {
	Table   string
	Message string
}

// Error returns the error string.
func (e *UnsupportedSchemaError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("schemaforge: unsupported schema on table %s: %s", e.Table, e.Message)
	}
	return fmt.Sprintf("schemaforge: unsupported schema: %s", e.Message)
}

// Is reports whether the target matches the sentinel for UnsupportedSchemaError.
func (e *UnsupportedSchemaError) Is(target error) bool {
	return target == ErrUnsupportedSchema
}

// NewUnsupportedSchemaError returns a new UnsupportedSchemaError.
func NewUnsupportedSchemaError(table, message string) *UnsupportedSchemaError {
	return &UnsupportedSchemaError{Table: table, Message: message}
}

// IsUnsupportedSchema reports whether the error is an UnsupportedSchemaError.
func IsUnsupportedSchema(err error) bool {
	var e *UnsupportedSchemaError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedSchema)
}

// UnresolvedVariableError reports the first variable a template
// referenced that the rendering context did not provide. Rendering
// never substitutes an empty value for a missing variable.
type UnresolvedVariableError struct {
	Template string // template identifier
	Variable string // the missing variable, dotted path form
}

// Error returns the error string.
func (e *UnresolvedVariableError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("schemaforge: unresolved variable %q in template %s", e.Variable, e.Template)
	}
	return fmt.Sprintf("schemaforge: unresolved variable %q", e.Variable)
}

// Is reports whether the target matches the sentinel for UnresolvedVariableError.
func (e *UnresolvedVariableError) Is(target error) bool {
	return target == ErrUnresolvedVariable
}

// NewUnresolvedVariableError returns a new UnresolvedVariableError.
func NewUnresolvedVariableError(template, variable string) *UnresolvedVariableError {
	return &UnresolvedVariableError{Template: template, Variable: variable}
}

// IsUnresolvedVariable reports whether the error is an UnresolvedVariableError.
func IsUnresolvedVariable(err error) bool {
	var e *UnresolvedVariableError
	return errors.As(err, &e) || errors.Is(err, ErrUnresolvedVariable)
}

// OutputCollisionError reports two artifacts deriving the same output
// path in one generation run.
type OutputCollisionError struct {
	Path      string
	Templates [2]string // the colliding template identifiers
}

// Error returns the error string.
func (e *OutputCollisionError) Error() string {
	if e.Templates[0] != "" || e.Templates[1] != "" {
		return fmt.Sprintf("schemaforge: output collision on %s (templates %s, %s)",
			e.Path, e.Templates[0], e.Templates[1])
	}
	return fmt.Sprintf("schemaforge: output collision on %s", e.Path)
}

// Is reports whether the target matches the sentinel for OutputCollisionError.
func (e *OutputCollisionError) Is(target error) bool {
	return target == ErrOutputCollision
}

// NewOutputCollisionError returns a new OutputCollisionError.
func NewOutputCollisionError(path, first, second string) *OutputCollisionError {
	return &OutputCollisionError{Path: path, Templates: [2]string{first, second}}
}

// IsOutputCollision reports whether the error is an OutputCollisionError.
func IsOutputCollision(err error) bool {
	var e *OutputCollisionError
	return errors.As(err, &e) || errors.Is(err, ErrOutputCollision)
}
