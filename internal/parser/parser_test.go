package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/schema"
)

func TestParseRoundTrip(t *testing.T) {
	ddl := `CREATE TABLE t (id INT NOT NULL, name VARCHAR(10), PRIMARY KEY (id));`

	s, err := Parse(ddl, dialect.Postgres)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	table, ok := s.Table("t")
	if !ok {
		t.Fatal("table t not found")
	}
	want := []schema.Column{
		{Name: "id", RawType: "INT", Type: schema.Int32, Nullable: false},
		{Name: "name", RawType: "VARCHAR(10)", Type: schema.String, Nullable: true},
	}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("columns = %+v, want %+v", table.Columns, want)
	}
	if !reflect.DeepEqual(table.PrimaryKey, []string{"id"}) {
		t.Errorf("primary key = %v, want [id]", table.PrimaryKey)
	}
}

func TestPrimaryKeyInlineAndTableLevelAgree(t *testing.T) {
	inline := `CREATE TABLE t (id INT PRIMARY KEY, name TEXT);`
	tableLevel := `CREATE TABLE t (id INT, name TEXT, PRIMARY KEY (id));`

	parseTable := func(ddl string) schema.Table {
		t.Helper()
		s, err := Parse(ddl, dialect.Postgres)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		table, ok := s.Table("t")
		if !ok {
			t.Fatal("table t not found")
		}
		return table
	}

	a := parseTable(inline)
	b := parseTable(tableLevel)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("inline and table-level primary keys diverge:\n%+v\n%+v", a, b)
	}
	if a.Columns[0].Nullable {
		t.Error("primary key column should be forced NOT NULL")
	}
}

func TestForeignKeyForwardReference(t *testing.T) {
	forward := `
		CREATE TABLE order_detail (
			id INT PRIMARY KEY,
			order_id INT NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE
		);
		CREATE TABLE orders (id INT PRIMARY KEY);`
	backward := `
		CREATE TABLE orders (id INT PRIMARY KEY);
		CREATE TABLE order_detail (
			id INT PRIMARY KEY,
			order_id INT NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE
		);`

	for _, ddl := range []string{forward, backward} {
		s, err := Parse(ddl, dialect.Postgres)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		table, ok := s.Table("order_detail")
		if !ok {
			t.Fatal("table order_detail not found")
		}
		wantFK := schema.ForeignKey{
			Columns:    []string{"order_id"},
			RefTable:   "orders",
			RefColumns: []string{"id"},
			OnDelete:   schema.Cascade,
		}
		if len(table.ForeignKeys) != 1 || !reflect.DeepEqual(table.ForeignKeys[0], wantFK) {
			t.Errorf("foreign keys = %+v, want [%+v]", table.ForeignKeys, wantFK)
		}
	}
}

func TestOnDeleteActions(t *testing.T) {
	tests := []struct {
		name   string
		clause string
		want   schema.CascadeAction
	}{
		{name: "cascade", clause: "ON DELETE CASCADE", want: schema.Cascade},
		{name: "set null", clause: "ON DELETE SET NULL", want: schema.SetNull},
		{name: "restrict", clause: "ON DELETE RESTRICT", want: schema.Restrict},
		{name: "no action", clause: "ON DELETE NO ACTION", want: schema.NoAction},
		{name: "default", clause: "", want: schema.NoAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ddl := `CREATE TABLE a (id INT PRIMARY KEY);
				CREATE TABLE b (a_id INT, FOREIGN KEY (a_id) REFERENCES a (id) ` + tt.clause + `);`
			s, err := Parse(ddl, dialect.Postgres)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			table, _ := s.Table("b")
			if got := table.ForeignKeys[0].OnDelete; got != tt.want {
				t.Errorf("OnDelete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNamedConstraint(t *testing.T) {
	ddl := `CREATE TABLE a (id INT PRIMARY KEY);
		CREATE TABLE b (a_id INT, CONSTRAINT fk_b_a FOREIGN KEY (a_id) REFERENCES a (id));`
	s, err := Parse(ddl, dialect.Postgres)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	table, _ := s.Table("b")
	if len(table.ForeignKeys) != 1 {
		t.Fatalf("expected 1 foreign key, got %d", len(table.ForeignKeys))
	}
}

func TestColumnExtras(t *testing.T) {
	ddl := `CREATE TABLE t (
		id INTEGER PRIMARY KEY,
		email VARCHAR(64) UNIQUE,
		age SMALLINT DEFAULT 0,
		note TEXT DEFAULT 'n/a',
		data_id INT DEFAULT NULL,
		ratio DOUBLE PRECISION,
		UNIQUE (note)
	);`

	s, err := Parse(ddl, dialect.Postgres)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	table, _ := s.Table("t")

	col := func(name string) schema.Column {
		t.Helper()
		c, ok := table.Column(name)
		if !ok {
			t.Fatalf("column %s not found", name)
		}
		return c
	}

	if !col("email").Unique {
		t.Error("email should be unique")
	}
	if got := col("age").Default; got == nil || *got != "0" {
		t.Errorf("age default = %v, want 0", got)
	}
	if got := col("note").Default; got == nil || *got != "'n/a'" {
		t.Errorf("note default = %v, want 'n/a'", got)
	}
	if !col("note").Unique {
		t.Error("table-level UNIQUE should mark note unique")
	}
	if got := col("data_id").Default; got == nil || *got != "NULL" {
		t.Errorf("data_id default = %v, want NULL", got)
	}
	if got := col("ratio").Type; got != schema.Float64 {
		t.Errorf("ratio type = %v, want FLOAT", got)
	}
	if got := col("ratio").RawType; got != "DOUBLE PRECISION" {
		t.Errorf("ratio raw type = %q, want DOUBLE PRECISION", got)
	}
}

func TestDialectTypeResolution(t *testing.T) {
	tests := []struct {
		name  string
		rules *dialect.Rules
		ddl   string
		want  schema.Type
	}{
		{name: "mysql tinyint", rules: dialect.MySQL, ddl: "CREATE TABLE t (v TINYINT);", want: schema.Int8},
		{name: "mysql backtick idents", rules: dialect.MySQL, ddl: "CREATE TABLE `t` (`v` BIGINT);", want: schema.Int64},
		{name: "sqlite integer is 64-bit", rules: dialect.SQLite, ddl: "CREATE TABLE t (v INTEGER);", want: schema.Int64},
		{name: "postgres int is 32-bit", rules: dialect.Postgres, ddl: "CREATE TABLE t (v INT);", want: schema.Int32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.ddl, tt.rules)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			table, _ := s.Table("t")
			if got := table.Columns[0].Type; got != tt.want {
				t.Errorf("type = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompositeKeyLists(t *testing.T) {
	ddl := `
		CREATE TABLE line (
			order_id INT,
			seq INT,
			PRIMARY KEY (order_id, seq)
		);
		CREATE TABLE shipment (
			order_id INT,
			seq INT,
			FOREIGN KEY (order_id, seq) REFERENCES line (order_id, seq)
		);`

	s, err := Parse(ddl, dialect.Postgres)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	line, _ := s.Table("line")
	if !reflect.DeepEqual(line.PrimaryKey, []string{"order_id", "seq"}) {
		t.Errorf("primary key = %v, want [order_id seq]", line.PrimaryKey)
	}
	shipment, _ := s.Table("shipment")
	fk := shipment.ForeignKeys[0]
	if !reflect.DeepEqual(fk.Columns, []string{"order_id", "seq"}) ||
		!reflect.DeepEqual(fk.RefColumns, []string{"order_id", "seq"}) {
		t.Errorf("foreign key = %+v", fk)
	}
}

func TestMalformedColumnLists(t *testing.T) {
	tests := []struct {
		name string
		ddl  string
	}{
		{name: "empty primary key list", ddl: "CREATE TABLE t (id INT, PRIMARY KEY ());"},
		{name: "missing comma in list", ddl: "CREATE TABLE t (a INT, b INT, PRIMARY KEY (a b));"},
		{name: "missing open paren", ddl: "CREATE TABLE t (id INT, PRIMARY KEY id);"},
		{name: "trailing comma in list", ddl: "CREATE TABLE t (id INT, PRIMARY KEY (id,));"},
		{name: "empty unique list", ddl: "CREATE TABLE t (id INT, UNIQUE ());"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.ddl, dialect.Postgres)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		ddl      string
		wantStmt int
	}{
		{name: "not a create table", ddl: "DROP TABLE t;", wantStmt: 1},
		{name: "duplicate column", ddl: "CREATE TABLE t (id INT, id TEXT);", wantStmt: 1},
		{name: "two primary keys", ddl: "CREATE TABLE t (id INT PRIMARY KEY, PRIMARY KEY (id));", wantStmt: 1},
		{name: "pk references undeclared column", ddl: "CREATE TABLE t (id INT, PRIMARY KEY (nope));", wantStmt: 1},
		{name: "fk references undeclared local column", ddl: "CREATE TABLE t (id INT, FOREIGN KEY (nope) REFERENCES a (id));", wantStmt: 1},
		{name: "fk arity mismatch", ddl: "CREATE TABLE t (a INT, b INT, FOREIGN KEY (a, b) REFERENCES x (id));", wantStmt: 1},
		{name: "missing comma", ddl: "CREATE TABLE t (id INT name TEXT);", wantStmt: 1},
		{name: "trailing garbage", ddl: "CREATE TABLE t (id INT) garbage;", wantStmt: 1},
		{name: "bad on delete action", ddl: "CREATE TABLE t (a INT, FOREIGN KEY (a) REFERENCES x (id) ON DELETE NOTHING);", wantStmt: 1},
		{name: "error carries statement index", ddl: "CREATE TABLE a (id INT); CREATE TABLE b (id INT, id INT);", wantStmt: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.ddl, dialect.Postgres)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
			if parseErr.Stmt != tt.wantStmt {
				t.Errorf("statement index = %d, want %d", parseErr.Stmt, tt.wantStmt)
			}
		})
	}
}

func TestUnknownTypeIsHardError(t *testing.T) {
	_, err := Parse("CREATE TABLE t (loc GEOGRAPHY);", dialect.Postgres)
	if err == nil {
		t.Fatal("expected error, got none")
	}
	var typeErr *dialect.UnknownTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnknownTypeError, got %T: %v", err, err)
	}
	if typeErr.RawType != "GEOGRAPHY" || typeErr.Dialect != "postgres" {
		t.Errorf("got %+v, want GEOGRAPHY/postgres", typeErr)
	}
}

func TestSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		ddl  string
	}{
		{name: "unresolved fk table", ddl: "CREATE TABLE t (a INT, FOREIGN KEY (a) REFERENCES missing (id));"},
		{name: "unresolved fk column", ddl: "CREATE TABLE a (id INT); CREATE TABLE b (a_id INT, FOREIGN KEY (a_id) REFERENCES a (nope));"},
		{name: "duplicate table", ddl: "CREATE TABLE t (id INT); CREATE TABLE t (id INT);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.ddl, dialect.Postgres)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var schemaErr *schema.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %T: %v", err, err)
			}
		})
	}
}

func TestEmptyBatch(t *testing.T) {
	s, err := Parse(" \n-- nothing here\n", dialect.Postgres)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(s.Tables()) != 0 {
		t.Errorf("expected empty schema, got %d tables", len(s.Tables()))
	}
}

func TestStatements(t *testing.T) {
	ddl := "CREATE TABLE a (id INT);\n-- comment\nCREATE TABLE b (s TEXT DEFAULT 'a;b');"
	stmts, err := Statements(ddl, dialect.Postgres)
	if err != nil {
		t.Fatalf("Statements failed: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INT)" {
		t.Errorf("statement 0 = %q", stmts[0])
	}
	if stmts[1] != "CREATE TABLE b (s TEXT DEFAULT 'a;b')" {
		t.Errorf("statement 1 = %q", stmts[1])
	}
}
