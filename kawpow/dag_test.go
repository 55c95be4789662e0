package kawpow

import "testing"

func TestNewDagRejectsBadSize(t *testing.T) {
	if _, err := NewDag(make([]byte, 100)); err == nil {
		t.Fatal("expected error for a size not a multiple of 64")
	}
	if _, err := NewDag(make([]byte, 128)); err == nil {
		t.Fatal("expected error for a size smaller than the 16 KiB hot cache")
	}
}

func TestNewDagAcceptsMinimalSize(t *testing.T) {
	d, err := NewDag(make([]byte, CacheBytes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Items() != CacheBytes/DagItemBytes {
		t.Fatalf("got %d items, want %d", d.Items(), CacheBytes/DagItemBytes)
	}
}

func TestDagItemLayout(t *testing.T) {
	d, err := NewTestDag(1024 * 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item0 := d.Item(0)
	item1 := d.Item(1)
	if item0 == item1 {
		t.Fatal("distinct items should not be identical for this fixture")
	}
}
