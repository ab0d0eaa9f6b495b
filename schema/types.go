package schema

import (
	"fmt"
	"strings"
)

// A Type is a database-engine-independent column type. It is the key
// used for lookups in the type mapping table; the mapped target type
// depends on the selected dialect.
type Type uint8

// Abstract column types, roughly the intersection of the types the
// supported database engines understand.
const (
	TypeInvalid Type = iota
	TypeBigInt
	TypeInteger
	TypeSmallInt
	TypeVarchar
	TypeChar
	TypeText
	TypeBoolean
	TypeTimestamp
	TypeDate
	TypeTime
	TypeDecimal
	TypeFloat
	TypeDouble
	TypeUUID
	TypeJSONB
	TypeBlob
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:   "INVALID",
	TypeBigInt:    "BIGINT",
	TypeInteger:   "INTEGER",
	TypeSmallInt:  "SMALLINT",
	TypeVarchar:   "VARCHAR",
	TypeChar:      "CHAR",
	TypeText:      "TEXT",
	TypeBoolean:   "BOOLEAN",
	TypeTimestamp: "TIMESTAMP",
	TypeDate:      "DATE",
	TypeTime:      "TIME",
	TypeDecimal:   "DECIMAL",
	TypeFloat:     "FLOAT",
	TypeDouble:    "DOUBLE",
	TypeUUID:      "UUID",
	TypeJSONB:     "JSONB",
	TypeBlob:      "BLOB",
}

// String returns the canonical (upper-case) name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid=%d", t)
}

// Valid reports if the given type is a valid abstract type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the type is a numeric type.
func (t Type) Numeric() bool {
	switch t {
	case TypeBigInt, TypeInteger, TypeSmallInt, TypeDecimal, TypeFloat, TypeDouble:
		return true
	}
	return false
}

// Integral reports if the type is an integer type.
func (t Type) Integral() bool {
	switch t {
	case TypeBigInt, TypeInteger, TypeSmallInt:
		return true
	}
	return false
}

// Temporal reports if the type is a date/time type.
func (t Type) Temporal() bool {
	switch t {
	case TypeTimestamp, TypeDate, TypeTime:
		return true
	}
	return false
}

// Sized reports if the type accepts a length parameter.
func (t Type) Sized() bool {
	return t == TypeVarchar || t == TypeChar
}

// Types returns every valid abstract type in declaration order.
func Types() []Type {
	ts := make([]Type, 0, int(endTypes)-1)
	for t := TypeInvalid + 1; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// aliases maps alternative spellings found in schema documents to
// canonical types.
var aliases = map[string]Type{
	"INT":         TypeInteger,
	"INT4":        TypeInteger,
	"INT8":        TypeBigInt,
	"INT2":        TypeSmallInt,
	"SERIAL":      TypeInteger,
	"BIGSERIAL":   TypeBigInt,
	"BOOL":        TypeBoolean,
	"STRING":      TypeVarchar,
	"NUMERIC":     TypeDecimal,
	"REAL":        TypeFloat,
	"TIMESTAMPTZ": TypeTimestamp,
	"DATETIME":    TypeTimestamp,
	"JSON":        TypeJSONB,
	"BYTEA":       TypeBlob,
	"BINARY":      TypeBlob,
}

// ParseType parses an abstract type name as written in a schema
// document. Matching is case-insensitive and accepts the common
// engine-specific aliases (INT, BOOL, NUMERIC, ...). The boolean result
// reports whether the name was recognized; unknown names are reported
// by the caller as an UnknownTypeError so the offending spelling is
// preserved.
func ParseType(name string) (Type, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t := TypeInvalid + 1; t < endTypes; t++ {
		if typeNames[t] == upper {
			return t, true
		}
	}
	if t, ok := aliases[upper]; ok {
		return t, true
	}
	return TypeInvalid, false
}
