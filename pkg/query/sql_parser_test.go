package query

import (
	"testing"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(`select name, address.city AS city, tags.0 as "First Tag" from people where age >= 18 limit 10`)
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}

	want := []Field{
		{Path: "name", Alias: "name"},
		{Path: "address.city", Alias: "city"},
		{Path: "tags.0", Alias: "First Tag"},
	}
	if len(q.Fields) != len(want) {
		t.Fatalf("Expected %d fields, got %d", len(want), len(q.Fields))
	}
	for i := range want {
		if q.Fields[i] != want[i] {
			t.Errorf("Field %d: expected %+v, got %+v", i, want[i], q.Fields[i])
		}
	}
	if q.FromTable != "people" {
		t.Errorf("Expected FROM people, got %q", q.FromTable)
	}
	if q.Filter == nil {
		t.Error("Expected WHERE to produce a filter")
	}
	if q.Limit != 10 {
		t.Errorf("Expected limit 10, got %d", q.Limit)
	}
	if q.Star() {
		t.Error("Expected explicit field list")
	}
}

func TestParseQueryStar(t *testing.T) {
	q, err := ParseQuery("SELECT *")
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	if !q.Star() {
		t.Errorf("Expected star query, got %v", q.Fields)
	}
	if q.Limit != -1 {
		t.Errorf("Expected no limit, got %d", q.Limit)
	}
	if q.FromTable != "" || q.Filter != nil {
		t.Errorf("Expected bare query, got %+v", q)
	}
}

func TestParseQueryErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"SELECT",
		"name FROM x",
		"SELECT name WHERE",
		"SELECT name LIMIT -1",
		"SELECT name LIMIT many",
	} {
		if _, err := ParseQuery(input); err == nil {
			t.Errorf("ParseQuery(%q): expected error", input)
		}
	}
}

func TestFieldString(t *testing.T) {
	if s := (Field{Path: "a.b", Alias: "b"}).String(); s != "a.b AS b" {
		t.Errorf("Expected 'a.b AS b', got %q", s)
	}
	if s := (Field{Path: "a", Alias: "a"}).String(); s != "a" {
		t.Errorf("Expected 'a', got %q", s)
	}
}

func TestParseSubquery(t *testing.T) {
	q, err := ParseQuery("SELECT x FROM (SELECT a AS x FROM items WHERE b > 15 AND c = 'y') LIMIT 1")
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	if q.FromQuery == nil {
		t.Fatal("Expected subquery input")
	}
	if q.FromQuery.FromTable != "items" {
		t.Errorf("Expected inner FROM items, got %q", q.FromQuery.FromTable)
	}
	if want := "b > 15 AND c = 'y'"; q.FromQuery.Where != want {
		t.Errorf("Expected WHERE text %q, got %q", want, q.FromQuery.Where)
	}
	if q.Limit != 1 || q.FromQuery.Limit != -1 {
		t.Errorf("Unexpected limits: outer %d inner %d", q.Limit, q.FromQuery.Limit)
	}
}
