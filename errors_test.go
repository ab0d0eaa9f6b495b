package schemaforge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownTypeError(t *testing.T) {
	t.Run("Error message names the type", func(t *testing.T) {
		err := NewUnknownTypeError("CUSTOM_TYPE", "postgres")
		assert.Contains(t, err.Error(), `"CUSTOM_TYPE"`)
		assert.Contains(t, err.Error(), "postgres")
	})

	t.Run("Error message without dialect", func(t *testing.T) {
		err := NewUnknownTypeError("CUSTOM_TYPE", "")
		assert.Contains(t, err.Error(), `"CUSTOM_TYPE"`)
		assert.NotContains(t, err.Error(), "dialect")
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := NewUnknownTypeError("CUSTOM_TYPE", "")
		assert.True(t, errors.Is(err, ErrUnknownType))
	})

	t.Run("IsUnknownType helper", func(t *testing.T) {
		assert.True(t, IsUnknownType(NewUnknownTypeError("X", "")))
		assert.False(t, IsUnknownType(errors.New("other")))
	})
}

func TestInvalidParameterError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewInvalidParameterError("DECIMAL", "precision", "required but missing")
		assert.Contains(t, err.Error(), "precision")
		assert.Contains(t, err.Error(), "DECIMAL")
		assert.Contains(t, err.Error(), "required but missing")
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := NewInvalidParameterError("DECIMAL", "scale", "")
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		assert.True(t, IsInvalidParameter(err))
	})
}

func TestSchemaValidationError(t *testing.T) {
	t.Run("Error message carries table and field", func(t *testing.T) {
		err := NewSchemaValidationError("users", "email", "duplicate field name", nil)
		assert.Contains(t, err.Error(), "table users")
		assert.Contains(t, err.Error(), "field email")
		assert.Contains(t, err.Error(), "duplicate field name")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaValidationError("users", "", "", cause)
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := NewSchemaValidationError("users", "", "bad", nil)
		assert.True(t, errors.Is(err, ErrSchemaValidation))
		assert.True(t, IsSchemaValidation(err))
	})
}

func TestUnsupportedSchemaError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := NewUnsupportedSchemaError("orders", "composite primary keys are not supported")
		assert.Contains(t, err.Error(), "table orders")
		assert.Contains(t, err.Error(), "composite primary keys")
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := NewUnsupportedSchemaError("orders", "composite")
		assert.True(t, errors.Is(err, ErrUnsupportedSchema))
		assert.True(t, IsUnsupportedSchema(err))
	})
}

func TestUnresolvedVariableError(t *testing.T) {
	t.Run("Error message names the variable", func(t *testing.T) {
		err := NewUnresolvedVariableError("entity", "className")
		assert.Contains(t, err.Error(), `"className"`)
		assert.Contains(t, err.Error(), "entity")
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := NewUnresolvedVariableError("", "className")
		assert.True(t, errors.Is(err, ErrUnresolvedVariable))
		assert.True(t, IsUnresolvedVariable(err))
	})
}

func TestOutputCollisionError(t *testing.T) {
	t.Run("Error message names both templates", func(t *testing.T) {
		err := NewOutputCollisionError("entity/User.java", "entity", "entity-audited")
		assert.Contains(t, err.Error(), "entity/User.java")
		assert.Contains(t, err.Error(), "entity-audited")
	})

	t.Run("Is matches sentinel", func(t *testing.T) {
		err := NewOutputCollisionError("a/b", "x", "y")
		assert.True(t, errors.Is(err, ErrOutputCollision))
		assert.True(t, IsOutputCollision(err))
	})
}
