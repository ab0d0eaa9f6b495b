package dialect

import "github.com/schemaforge/schemaforge/schema"

// universalTable is the engine-independent fallback mapping. Every
// abstract type must have a row here; dialect tables only carry the
// rows that differ.
var universalTable = Table{
	schema.TypeBigInt:    {JavaType: "Long", SQL: "BIGINT"},
	schema.TypeInteger:   {JavaType: "Integer", SQL: "INTEGER"},
	schema.TypeSmallInt:  {JavaType: "Short", SQL: "SMALLINT"},
	schema.TypeVarchar:   {JavaType: "String", Validation: "@Size(max = $length)", SQL: "VARCHAR($length)"},
	schema.TypeChar:      {JavaType: "String", Validation: "@Size(max = $length)", SQL: "CHAR($length)"},
	schema.TypeText:      {JavaType: "String", SQL: "TEXT"},
	schema.TypeBoolean:   {JavaType: "Boolean", SQL: "BOOLEAN"},
	schema.TypeTimestamp: {JavaType: "Instant", Import: "java.time.Instant", SQL: "TIMESTAMP"},
	schema.TypeDate:      {JavaType: "LocalDate", Import: "java.time.LocalDate", SQL: "DATE"},
	schema.TypeTime:      {JavaType: "LocalTime", Import: "java.time.LocalTime", SQL: "TIME"},
	schema.TypeDecimal: {
		JavaType:   "BigDecimal",
		Import:     "java.math.BigDecimal",
		Validation: "@Digits(integer = $integer, fraction = $scale)",
		SQL:        "DECIMAL($precision, $scale)",
	},
	schema.TypeFloat:  {JavaType: "Float", SQL: "FLOAT"},
	schema.TypeDouble: {JavaType: "Double", SQL: "DOUBLE"},
	schema.TypeUUID:   {JavaType: "UUID", Import: "java.util.UUID", SQL: "UUID"},
	schema.TypeJSONB:  {JavaType: "String", SQL: "JSONB"},
	schema.TypeBlob:   {JavaType: "byte[]", SQL: "BLOB"},
}
