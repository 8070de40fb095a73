// 指示: miu200521358
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_common"
	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_motion/bvh"
)

// storeTestBvhText は保存テスト用の最小BVHテキスト。
const storeTestBvhText = `HIERARCHY
ROOT Hips
{
	OFFSET 0 1 0
	CHANNELS 3 Zrotation Xrotation Yrotation
}
MOTION
Frames: 1
Frame Time: 0.033333
0.0 0.0 0.0
`

func TestStoreAssignsUniqueIDs(t *testing.T) {
	store := NewRawMotionStore(t.TempDir(), bvh.NewBvhRepository())

	first, err := store.Store("walk", storeTestBvhText)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	second, err := store.Store("walk", storeTestBvhText)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("ids should be unique: %s", first.ID)
	}
	if first.StoredAt.IsZero() {
		t.Fatalf("stored_at should be set")
	}
}

func TestLoadMotionReimportsStoredText(t *testing.T) {
	store := NewRawMotionStore(t.TempDir(), bvh.NewBvhRepository())

	record, err := store.Store("walk", storeTestBvhText)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	result, err := store.LoadMotion(record.ID)
	if err != nil {
		t.Fatalf("load motion failed: %v", err)
	}
	if result.Bones.Len() != 1 {
		t.Fatalf("bone count mismatch: %d", result.Bones.Len())
	}
	if result.Clips[0].Name != "walk" {
		t.Fatalf("clip name should come from stored record: %s", result.Clips[0].Name)
	}
}

func TestLoadRawMissingIDReturnsNotFound(t *testing.T) {
	store := NewRawMotionStore(t.TempDir(), bvh.NewBvhRepository())
	_, err := store.LoadRaw("nosuch")
	if !io_common.IsFileNotFound(err) {
		t.Fatalf("expected file not found: %v", err)
	}
}

func TestStoreRejectsEmptyText(t *testing.T) {
	store := NewRawMotionStore(t.TempDir(), bvh.NewBvhRepository())
	_, err := store.Store("walk", "  ")
	if !io_common.IsStorageWriteFailed(err) {
		t.Fatalf("expected storage write error: %v", err)
	}
}

func TestStoreFailsWhenDirectoryIsFile(t *testing.T) {
	tempDir := t.TempDir()
	blocked := filepath.Join(tempDir, "blocked")
	store := NewRawMotionStore(blocked, bvh.NewBvhRepository())
	if err := writeBlockingFile(blocked); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}
	_, err := store.Store("walk", storeTestBvhText)
	if !io_common.IsStorageWriteFailed(err) {
		t.Fatalf("expected storage write error: %v", err)
	}
}

// writeBlockingFile は保存先ディレクトリと同名の通常ファイルを作る。
func writeBlockingFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0o644)
}

func TestListReturnsRecordsInStoredOrder(t *testing.T) {
	store := NewRawMotionStore(t.TempDir(), bvh.NewBvhRepository())
	first, err := store.Store("walk", storeTestBvhText)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	second, err := store.Store("run", storeTestBvhText)
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count mismatch: %d", len(records))
	}
	if records[0].ID != first.ID || records[1].ID != second.ID {
		t.Fatalf("record order mismatch: %+v", records)
	}
	if records[1].Name != "run" {
		t.Fatalf("record name mismatch: %+v", records[1])
	}
}
