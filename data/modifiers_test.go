package data

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

func render(t *testing.T, mods ...bob.Mod[*dialect.SelectQuery]) (string, []any) {
	t.Helper()

	q := psql.Select(
		sm.Columns("*"),
		sm.From("people"),
	)
	q.Apply(mods...)

	var buf bytes.Buffer
	args, err := q.WriteQuery(context.Background(), &buf, 1)
	if err != nil {
		t.Fatalf("write query: %v", err)
	}
	return buf.String(), args
}

func TestFilterSoundsLike(t *testing.T) {
	f := Filter{Conditions: []FilterCondition{{Column: "c", Mode: SoundsLike, Value: " Müller"}}}

	sql, args := render(t, f.Mods()...)
	if !strings.Contains(sql, `WHERE ("c" = $1)`) {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 1 || args[0] != "M460" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestFilterPrefixAndSuffix(t *testing.T) {
	tests := []struct {
		mode MatchMode
		want string
	}{
		{Start, "Ru%"},
		{End, "%Ru"},
		{Anywhere, "%Ru%"},
	}

	for _, tt := range tests {
		c := FilterCondition{Column: "last_name", Mode: tt.mode, Value: "Ru"}
		sql, args := render(t, c.Mod())
		if !strings.Contains(sql, "ILIKE") {
			t.Fatalf("%s: unexpected sql: %s", tt.mode, sql)
		}
		if len(args) != 1 || args[0] != tt.want {
			t.Fatalf("%s: unexpected args: %#v", tt.mode, args)
		}
	}
}

func TestQueryParamsMods(t *testing.T) {
	qp := &QueryParams{
		Filter: Filter{Conditions: []FilterCondition{{Column: "last_name_code", Mode: SoundsLike, Value: "Tymczak"}}},
		Sort:   Sort{Column: "last_name", Direction: "desc"},
	}

	sql, args := render(t, qp.Mods()...)
	if !strings.Contains(sql, `WHERE ("last_name_code" = $1)`) {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !strings.Contains(sql, `ORDER BY "last_name" DESC`) {
		t.Fatalf("expected descending order, got %s", sql)
	}
	if len(args) != 1 || args[0] != "T522" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestPaginationMods(t *testing.T) {
	if mods := (Pagination{Limit: "ALL"}).Mods(); len(mods) != 0 {
		t.Fatalf("expected no clauses for ALL, got %d", len(mods))
	}

	sql, _ := render(t, Pagination{Limit: int64(15), Offset: 30}.Mods()...)
	if !strings.Contains(sql, "LIMIT") || !strings.Contains(sql, "OFFSET") {
		t.Fatalf("expected limit and offset, got %s", sql)
	}
}

func TestNilQueryParamsMods(t *testing.T) {
	var qp *QueryParams
	if mods := qp.Mods(); mods != nil {
		t.Fatalf("expected no clauses, got %d", len(mods))
	}
}

func TestMatchModeString(t *testing.T) {
	if got := SoundsLike.String(); got != "SoundsLike" {
		t.Fatalf("expected SoundsLike, got %s", got)
	}
	if got := MatchMode(42).String(); got != "Unknown" {
		t.Fatalf("expected Unknown, got %s", got)
	}
}

func TestFilterConditionString(t *testing.T) {
	c := FilterCondition{Column: "last_name_code", Mode: SoundsLike, Value: "Robert"}
	want := "FilterCondition: [Column: last_name_code, MatchMode: SoundsLike, Value: Robert]"
	if got := c.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
