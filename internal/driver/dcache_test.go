package driver

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pyparse/internal/project"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := project.Digest{1, 2, 3}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	in := &DiskPayload{Prefix: "nac3:", Report: DirectiveReport{
		Path:    "a.py",
		Entries: []DirectiveEntry{{Name: "unroll", CommentLine: 1, CommentCol: 1, StmtLine: 2, StmtCol: 1}},
	}}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	hit, err := cache.Get(key, &out)
	if !hit || err != nil {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if diff := cmp.Diff(*in, out); diff != "" {
		t.Fatalf("payload mismatch (-put +got):\n%s", diff)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Fatalf("entry survived DropAll")
	}
}

func TestNilDiskCacheIsNoop(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(project.Digest{}, &DiskPayload{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if hit, err := cache.Get(project.Digest{}, &DiskPayload{}); hit || err != nil {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
}
