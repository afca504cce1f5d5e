package gen

import (
	"strings"
	"testing"

	"github.com/nordql/ddlq/schema"
)

func TestGenerate(t *testing.T) {
	s, err := schema.New([]schema.Table{
		{
			Name: "order_detail",
			Columns: []schema.Column{
				{Name: "id", RawType: "BIGINT", Type: schema.Int64},
				{Name: "name", RawType: "TEXT", Type: schema.String, Nullable: true},
				{Name: "created_at", RawType: "TIMESTAMP", Type: schema.Datetime},
				{Name: "active", RawType: "BOOLEAN", Type: schema.Bool},
			},
			PrimaryKey: []string{"id"},
		},
	})
	if err != nil {
		t.Fatalf("schema.New failed: %v", err)
	}

	var sb strings.Builder
	if err := Generate(&sb, s, "models"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := sb.String()

	wants := []string{
		"// Code generated by ddlq. DO NOT EDIT.",
		"package models",
		"\t\"time\"",
		"type OrderDetail struct {",
		"\tID int64 `db:\"id\"`",
		"\tName *string `db:\"name\"`",
		"\tCreatedAt time.Time `db:\"created_at\"`",
		"\tActive bool `db:\"active\"`",
		`OrderDetailTable = ddlq.Tbl("order_detail")`,
		`OrderDetailID = OrderDetailTable.Col("id", schema.Int64).Key()`,
		`OrderDetailName = OrderDetailTable.Col("name", schema.String)`,
		`OrderDetailCreatedAt = OrderDetailTable.Col("created_at", schema.Datetime)`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `Col("name", schema.String).Key()`) {
		t.Error("non-key column should not be marked Key()")
	}
}

func TestGenerateSkipsTimeImportWhenUnused(t *testing.T) {
	s, err := schema.New([]schema.Table{
		{
			Name:       "t",
			Columns:    []schema.Column{{Name: "id", RawType: "INT", Type: schema.Int32}},
			PrimaryKey: []string{"id"},
		},
	})
	if err != nil {
		t.Fatalf("schema.New failed: %v", err)
	}

	var sb strings.Builder
	if err := Generate(&sb, s, ""); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(sb.String(), `"time"`) {
		t.Error("time should not be imported without date columns")
	}
	if !strings.Contains(sb.String(), "package models") {
		t.Error("empty package name should default to models")
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "order_detail", want: "OrderDetail"},
		{in: "id", want: "ID"},
		{in: "user_id", want: "UserID"},
		{in: "name", want: "Name"},
		{in: "a__b", want: "AB"},
		{in: "étage_id", want: "ÉtageID"},
	}

	for _, tt := range tests {
		if got := exportName(tt.in); got != tt.want {
			t.Errorf("exportName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
