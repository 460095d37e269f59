package core

import "testing"

func TestQueryItems_RanksMatches(t *testing.T) {
	doc := reconciled(t, NewDocument())

	matches := QueryItems(doc, "ideation")
	if len(matches) == 0 {
		t.Fatal("no matches for ideation")
	}
	if matches[0].Item.ID != TaskIdeation {
		t.Fatalf("best match = %s, want %s", matches[0].Item.ID, TaskIdeation)
	}
}

func TestQueryItems_EmptyTermListsAll(t *testing.T) {
	doc := reconciled(t, NewDocument())
	matches := QueryItems(doc, "")

	// 1 milestone + 1 phase + 1 wave + 7 tasks
	if len(matches) != 10 {
		t.Fatalf("matches = %d, want 10", len(matches))
	}
	if matches[0].Item.ID != "milestone-foundation" {
		t.Fatalf("first item = %s, want plan order", matches[0].Item.ID)
	}
}

func TestQueryItems_NoMatch(t *testing.T) {
	doc := reconciled(t, NewDocument())
	if got := QueryItems(doc, "zzzzqqqq"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
