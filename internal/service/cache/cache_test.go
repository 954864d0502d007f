package cache

import "testing"

func TestMemoizeComputesOnce(t *testing.T) {
	c := New()
	calls := 0
	compute := func() any {
		calls++
		return 42
	}

	key := Key("file-a", "mapping-v1", "report-x")
	if v := c.Memoize(key, compute, "file-a"); v != 42 {
		t.Fatalf("first call = %v", v)
	}
	if v := c.Memoize(key, compute, "file-a"); v != 42 {
		t.Fatalf("second call = %v", v)
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestDistinctKeysComputeSeparately(t *testing.T) {
	c := New()
	calls := 0

	a := Key("file-a", "mapping-v1", "report-x")
	b := Key("file-a", "mapping-v2", "report-x")
	if a == b {
		t.Fatal("different mapping snapshots produced the same fingerprint")
	}
	c.Memoize(a, func() any { calls++; return 1 }, "file-a")
	c.Memoize(b, func() any { calls++; return 2 }, "file-a")
	if calls != 2 {
		t.Fatalf("compute ran %d times, want 2", calls)
	}
}

func TestKeyDeterministicAndSeparatorSafe(t *testing.T) {
	if Key("a", "b") != Key("a", "b") {
		t.Fatal("same parts, different fingerprints")
	}
	if Key("a", "b") == Key("ab") || Key("a", "b") == Key("b", "a") {
		t.Fatal("fingerprint collides across part boundaries")
	}
}

func TestInvalidateFileDropsOnlyThatPartition(t *testing.T) {
	c := New()
	calls := 0

	keyA := Key("file-a", "r")
	keyB := Key("file-b", "r")
	c.Memoize(keyA, func() any { calls++; return "a" }, "file-a")
	c.Memoize(keyB, func() any { calls++; return "b" }, "file-b")

	c.InvalidateFile("file-a")

	// file-a recomputes, file-b does not.
	c.Memoize(keyA, func() any { calls++; return "a" }, "file-a")
	c.Memoize(keyB, func() any { calls++; return "b" }, "file-b")
	if calls != 3 {
		t.Fatalf("compute ran %d times, want 3", calls)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.Memoize(Key("f", "r"), func() any { return 1 }, "f")
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Len after Reset = %d", c.Len())
	}
}
