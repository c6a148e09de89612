package kit

import (
	"reflect"
	"testing"
	"time"
)

func mustKit(t *testing.T, assetIDs []string) Kit {
	t.Helper()
	k, err := New("k1", "ws", "docs", "", assetIDs, time.Now())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return k
}

func TestNew_DedupesMembership(t *testing.T) {
	k := mustKit(t, []string{"a", "b", "a", "c", "b"})

	if !reflect.DeepEqual(k.AssetIDs(), []string{"a", "b", "c"}) {
		t.Errorf("asset IDs: got %v, want [a b c]", k.AssetIDs())
	}
}

func TestUpdate_NilKeepsMembership(t *testing.T) {
	k := mustKit(t, []string{"a", "b"})

	next := k.Update("renamed", "", nil, time.Now())
	if next.Name() != "renamed" {
		t.Errorf("name: got %q, want renamed", next.Name())
	}
	if !reflect.DeepEqual(next.AssetIDs(), []string{"a", "b"}) {
		t.Errorf("nil asset IDs should keep membership, got %v", next.AssetIDs())
	}
}

func TestUpdate_EmptySliceClearsMembership(t *testing.T) {
	k := mustKit(t, []string{"a", "b"})

	next := k.Update("", "", []string{}, time.Now())
	if len(next.AssetIDs()) != 0 {
		t.Errorf("empty asset IDs should clear membership, got %v", next.AssetIDs())
	}
}

func TestWithoutAsset(t *testing.T) {
	k := mustKit(t, []string{"a", "b", "c"})

	next := k.WithoutAsset("b")
	if !reflect.DeepEqual(next.AssetIDs(), []string{"a", "c"}) {
		t.Errorf("got %v, want [a c]", next.AssetIDs())
	}
	if !reflect.DeepEqual(k.AssetIDs(), []string{"a", "b", "c"}) {
		t.Error("WithoutAsset should not mutate the original")
	}
}

func TestHasAsset(t *testing.T) {
	k := mustKit(t, []string{"a", "b"})

	if !k.HasAsset("a") {
		t.Error("expected HasAsset(a) to be true")
	}
	if k.HasAsset("z") {
		t.Error("expected HasAsset(z) to be false")
	}
}
