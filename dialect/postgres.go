package dialect

import "github.com/schemaforge/schemaforge/schema"

// postgresTable overrides the universal mapping for PostgreSQL.
var postgresTable = Table{
	schema.TypeDouble: {JavaType: "Double", SQL: "DOUBLE PRECISION"},
	schema.TypeFloat:  {JavaType: "Float", SQL: "REAL"},
	schema.TypeBlob:   {JavaType: "byte[]", SQL: "BYTEA"},
	schema.TypeTimestamp: {
		JavaType: "Instant",
		Import:   "java.time.Instant",
		SQL:      "TIMESTAMPTZ",
	},
}
