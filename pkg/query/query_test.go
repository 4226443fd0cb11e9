package query_test

import (
	"testing"

	"github.com/rama-judicial/escalafon/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "officials", "f").
		Project("id", "ID").
		Project("name", "Name").
		Project("document_id", "DocumentID")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	got := p.From()
	want := "public.officials f"
	if got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "f.id, f.name, f.document_id"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "Name", "f.name"},
		{"mapped snake target", "DocumentID", "f.document_id"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single ascending",
			input: "Name",
			want:  []query.SortField{{Field: "Name", Descending: false}},
		},
		{
			name:  "single descending",
			input: "-CreatedAt",
			want:  []query.SortField{{Field: "CreatedAt", Descending: true}},
		},
		{
			name:  "multiple mixed",
			input: "Name,-CreatedAt",
			want: []query.SortField{
				{Field: "Name", Descending: false},
				{Field: "CreatedAt", Descending: true},
			},
		},
		{
			name:  "with spaces",
			input: " Name , -CreatedAt ",
			want: []query.SortField{
				{Field: "Name", Descending: false},
				{Field: "CreatedAt", Descending: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT f.id, f.name, f.document_id FROM public.officials f WHERE f.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereContains("Name", ptr("garcia"))

	sql, args := b.BuildCount()
	want := "SELECT COUNT(*) FROM public.officials f WHERE f.name ILIKE $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "%garcia%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Name"}).
		WhereEquals("DocumentID", ptr("7948122"))

	sql, args := b.BuildPage(2, 10)
	want := "SELECT f.id, f.name, f.document_id FROM public.officials f" +
		" WHERE f.document_id = $1 ORDER BY f.name ASC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v, want one value", args)
	}
}

func TestWhereEqualsNilSkipped(t *testing.T) {
	var id *string
	b := query.NewBuilder(testProjection()).WhereEquals("ID", id)

	sql, args := b.Build()
	want := "SELECT f.id, f.name, f.document_id FROM public.officials f"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestWhereSearchMultipleFields(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereSearch(ptr("rio"), "Name", "DocumentID")

	sql, args := b.Build()
	want := "SELECT f.id, f.name, f.document_id FROM public.officials f" +
		" WHERE (f.name ILIKE $1 OR f.document_id ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want two values", args)
	}
	if args[0] != "%rio%" || args[1] != "%rio%" {
		t.Errorf("args = %v", args)
	}
}

func TestOrderByOverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Name"}).
		OrderByFields([]query.SortField{{Field: "DocumentID", Descending: true}})

	sql, _ := b.Build()
	want := "SELECT f.id, f.name, f.document_id FROM public.officials f ORDER BY f.document_id DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
