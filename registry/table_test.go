package registry

import "testing"

func TestTable_Insert(t *testing.T) {
	tbl := NewTable[string]()

	id1 := tbl.Insert(10, 1, "a")
	id2 := tbl.Insert(5, 2, "b")

	if id1 == id2 {
		t.Error("expected distinct ids for distinct inserts")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTable_VersionBumps(t *testing.T) {
	tbl := NewTable[int]()

	v0 := tbl.Version()
	id := tbl.Insert(0, 1, 42)
	if tbl.Version() == v0 {
		t.Error("expected version bump on Insert")
	}

	v1 := tbl.Version()
	if !tbl.Remove(id) {
		t.Fatal("Remove returned false for live id")
	}
	if tbl.Version() == v1 {
		t.Error("expected version bump on Remove")
	}
}

func TestTable_RemoveMissing(t *testing.T) {
	tbl := NewTable[int]()
	tbl.Insert(0, 1, 1)

	v := tbl.Version()
	if tbl.Remove(ID(999)) {
		t.Error("Remove returned true for unknown id")
	}
	if tbl.Version() != v {
		t.Error("version changed on failed Remove")
	}
}

func TestCache_SortedByPriorityThenSeq(t *testing.T) {
	tbl := NewTable[string]()
	cache := NewCache(tbl)

	tbl.Insert(10, 1, "late")
	tbl.Insert(-10, 2, "early")
	tbl.Insert(10, 3, "later") // same priority as "late", higher seq

	view := cache.View()
	want := []string{"early", "late", "later"}
	if len(view) != len(want) {
		t.Fatalf("View() returned %d entries, want %d", len(view), len(want))
	}
	for i, w := range want {
		if view[i].Payload != w {
			t.Errorf("view[%d] = %q, want %q", i, view[i].Payload, w)
		}
	}
}

func TestCache_RebuildOnlyOnVersionChange(t *testing.T) {
	tbl := NewTable[int]()
	cache := NewCache(tbl)

	tbl.Insert(0, 1, 1)
	first := cache.View()
	second := cache.View()

	// Same version: View must return the identical snapshot, not a copy.
	if &first[0] != &second[0] {
		t.Error("expected identical snapshot while table version unchanged")
	}

	tbl.Insert(0, 2, 2)
	third := cache.View()
	if len(third) != 2 {
		t.Errorf("rebuilt view has %d entries, want 2", len(third))
	}
	if cache.Version() != tbl.Version() {
		t.Errorf("cache version %d != table version %d after View", cache.Version(), tbl.Version())
	}
}

func TestCache_SnapshotSurvivesMutation(t *testing.T) {
	tbl := NewTable[string]()
	cache := NewCache(tbl)

	id := tbl.Insert(0, 1, "keep")
	tbl.Insert(0, 2, "also")

	snap := cache.View()
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d entries, want 2", len(snap))
	}

	// Mutating the table mid-walk must not disturb the held snapshot.
	tbl.Remove(id)
	tbl.Insert(5, 3, "new")

	if len(snap) != 2 || snap[0].Payload != "keep" || snap[1].Payload != "also" {
		t.Error("held snapshot changed after table mutation")
	}

	rebuilt := cache.View()
	if len(rebuilt) != 2 {
		t.Fatalf("rebuilt view has %d entries, want 2", len(rebuilt))
	}
	if rebuilt[0].Payload != "also" || rebuilt[1].Payload != "new" {
		t.Errorf("rebuilt view = [%q, %q], want [also, new]", rebuilt[0].Payload, rebuilt[1].Payload)
	}
}

func TestCache_EmptyTable(t *testing.T) {
	tbl := NewTable[int]()
	cache := NewCache(tbl)

	if view := cache.View(); len(view) != 0 {
		t.Errorf("View() on empty table returned %d entries", len(view))
	}
}
