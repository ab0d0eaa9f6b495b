package dialect

import "github.com/schemaforge/schemaforge/schema"

// mysqlTable overrides the universal mapping for MySQL / MariaDB.
var mysqlTable = Table{
	schema.TypeBoolean: {JavaType: "Boolean", SQL: "TINYINT(1)"},
	schema.TypeJSONB:   {JavaType: "String", SQL: "JSON"},
	// MySQL has no native UUID column type.
	schema.TypeUUID: {JavaType: "UUID", Import: "java.util.UUID", SQL: "CHAR(36)"},
	schema.TypeTimestamp: {
		JavaType: "Instant",
		Import:   "java.time.Instant",
		SQL:      "DATETIME(6)",
	},
}
