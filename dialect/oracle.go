package dialect

import "github.com/schemaforge/schemaforge/schema"

// oracleTable overrides the universal mapping for Oracle.
var oracleTable = Table{
	schema.TypeBigInt:   {JavaType: "Long", SQL: "NUMBER(19)"},
	schema.TypeInteger:  {JavaType: "Integer", SQL: "NUMBER(10)"},
	schema.TypeSmallInt: {JavaType: "Short", SQL: "NUMBER(5)"},
	schema.TypeVarchar:  {JavaType: "String", Validation: "@Size(max = $length)", SQL: "VARCHAR2($length)"},
	schema.TypeText:     {JavaType: "String", SQL: "CLOB"},
	schema.TypeBoolean:  {JavaType: "Boolean", SQL: "NUMBER(1)"},
	schema.TypeDouble:   {JavaType: "Double", SQL: "BINARY_DOUBLE"},
	schema.TypeFloat:    {JavaType: "Float", SQL: "BINARY_FLOAT"},
	schema.TypeJSONB:    {JavaType: "String", SQL: "CLOB"},
	schema.TypeUUID:     {JavaType: "UUID", Import: "java.util.UUID", SQL: "RAW(16)"},
}
