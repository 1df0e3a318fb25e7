package ooo

import "testing"

func TestRenameTableDefaultAllReady(t *testing.T) {
	rt := NewRenameTable()
	ready, tag := rt.Info(7)
	if !ready || tag != NoTag {
		t.Fatalf("fresh rename table: reg 7 = (%v, %d), want (true, %d)", ready, tag, NoTag)
	}
}

func TestRenameStaysPendingUntilCommit(t *testing.T) {
	rt := NewRenameTable()
	rt.Rename(5, 11)

	if ready, tag := rt.Info(5); ready || tag != 11 {
		t.Fatalf("after Rename: got (%v, %d), want (false, 11)", ready, tag)
	}

	// A producer's result becoming known (e.g. a CDB broadcast at
	// Write-Result) must not by itself clear the rename — only
	// ClearIfStillMine, called at Commit, may do that. Otherwise a
	// consumer resolving in between would be told to trust the register
	// file before Commit has actually written it.
	rt.ClearIfStillMine(5, 99) // wrong tag: must not affect reg 5
	if ready, tag := rt.Info(5); ready || tag != 11 {
		t.Fatalf("ClearIfStillMine with unrelated tag should not affect reg 5, got (%v, %d)", ready, tag)
	}

	rt.ClearIfStillMine(5, 11)
	if ready, tag := rt.Info(5); !ready || tag != NoTag {
		t.Fatalf("after ClearIfStillMine(5, 11): got (%v, %d), want (true, %d)", ready, tag, NoTag)
	}
}

func TestClearIfStillMineRespectsNewerRename(t *testing.T) {
	rt := NewRenameTable()
	rt.Rename(5, 11) // older instruction renames r5 to tag 11
	rt.Rename(5, 12) // a younger instruction renames r5 again, to tag 12

	// Tag 11 commits late and must not clobber the newer rename.
	rt.ClearIfStillMine(5, 11)
	if ready, tag := rt.Info(5); ready || tag != 12 {
		t.Fatalf("stale commit clobbered newer rename: got (%v, %d), want (false, 12)", ready, tag)
	}

	rt.ClearIfStillMine(5, 12)
	if ready, _ := rt.Info(5); !ready {
		t.Fatal("ClearIfStillMine(5, 12) should have cleared the still-current rename")
	}
}
