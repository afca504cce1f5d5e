package dialect

import "github.com/nordql/ddlq/schema"

// Postgres resolves the PostgreSQL type vocabulary and quotes identifiers
// with double quotes.
var Postgres = &Rules{
	Name:     "postgres",
	Quote:    '"',
	keywords: ddlKeywords,
	types: map[string]schema.Type{
		"SMALLINT":          schema.Int16,
		"INT2":              schema.Int16,
		"SMALLSERIAL":       schema.Int16,
		"INT":               schema.Int32,
		"INTEGER":           schema.Int32,
		"INT4":              schema.Int32,
		"SERIAL":            schema.Int32,
		"BIGINT":            schema.Int64,
		"INT8":              schema.Int64,
		"BIGSERIAL":         schema.Int64,
		"REAL":              schema.Float64,
		"FLOAT4":            schema.Float64,
		"FLOAT8":            schema.Float64,
		"DOUBLE PRECISION":  schema.Float64,
		"NUMERIC":           schema.Float64,
		"DECIMAL":           schema.Float64,
		"TEXT":              schema.String,
		"VARCHAR":           schema.String,
		"CHAR":              schema.String,
		"CHARACTER":         schema.String,
		"CHARACTER VARYING": schema.String,
		"DATE":              schema.DateOnly,
		"TIMESTAMP":         schema.Datetime,
		"TIMESTAMPTZ":       schema.Datetime,
		"BOOLEAN":           schema.Bool,
		"BOOL":              schema.Bool,
	},
}

// MySQL resolves the MySQL type vocabulary and quotes identifiers with
// backticks.
var MySQL = &Rules{
	Name:     "mysql",
	Quote:    '`',
	keywords: ddlKeywords,
	types: map[string]schema.Type{
		"TINYINT":          schema.Int8,
		"SMALLINT":         schema.Int16,
		"MEDIUMINT":        schema.Int32,
		"INT":              schema.Int32,
		"INTEGER":          schema.Int32,
		"BIGINT":           schema.Int64,
		"FLOAT":            schema.Float64,
		"DOUBLE":           schema.Float64,
		"DOUBLE PRECISION": schema.Float64,
		"DECIMAL":          schema.Float64,
		"NUMERIC":          schema.Float64,
		"VARCHAR":          schema.String,
		"CHAR":             schema.String,
		"TEXT":             schema.String,
		"TINYTEXT":         schema.String,
		"MEDIUMTEXT":       schema.String,
		"LONGTEXT":         schema.String,
		"DATE":             schema.DateOnly,
		"DATETIME":         schema.Datetime,
		"TIMESTAMP":        schema.Datetime,
		"BOOLEAN":          schema.Bool,
		"BOOL":             schema.Bool,
	},
}

// SQLite resolves the SQLite type vocabulary and quotes identifiers with
// double quotes. SQLite stores all integers as 64-bit, so INT and INTEGER
// resolve to the 64-bit variant.
var SQLite = &Rules{
	Name:     "sqlite",
	Quote:    '"',
	keywords: ddlKeywords,
	types: map[string]schema.Type{
		"TINYINT":  schema.Int8,
		"SMALLINT": schema.Int16,
		"INT":      schema.Int64,
		"INTEGER":  schema.Int64,
		"BIGINT":   schema.Int64,
		"REAL":     schema.Float64,
		"FLOAT":    schema.Float64,
		"DOUBLE":   schema.Float64,
		"NUMERIC":  schema.Float64,
		"DECIMAL":  schema.Float64,
		"TEXT":     schema.String,
		"VARCHAR":  schema.String,
		"CHAR":     schema.String,
		"CLOB":     schema.String,
		"DATE":     schema.DateOnly,
		"DATETIME": schema.Datetime,
		"BOOLEAN":  schema.Bool,
		"BOOL":     schema.Bool,
	},
}
