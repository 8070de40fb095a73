// 指示: miu200521358
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testBvhText = `HIERARCHY
ROOT Hips
{
	OFFSET 0.0 1.0 0.0
	CHANNELS 6 Xposition Yposition Zposition Zrotation Xrotation Yrotation
	JOINT Spine
	{
		OFFSET 0.0 0.5 0.0
		CHANNELS 3 Zrotation Xrotation Yrotation
	}
}
MOTION
Frames: 1
Frame Time: 0.033333
0.0 1.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0
`

func TestParseOptionsWithFlags(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{"-in", "walk.bvh", "-store", "motions"}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.inputPath != "walk.bvh" {
		t.Fatalf("inputPath mismatch: %s", opts.inputPath)
	}
	if opts.storeDir != "motions" {
		t.Fatalf("storeDir mismatch: %s", opts.storeDir)
	}
}

func TestParseOptionsWithPositional(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{"walk.bvh"}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.inputPath != "walk.bvh" {
		t.Fatalf("inputPath mismatch: %s", opts.inputPath)
	}
	if opts.storeDir != "" {
		t.Fatalf("storeDir should be empty: %s", opts.storeDir)
	}
}

func TestParseOptionsRequireBvhExt(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	_, err := parseOptions([]string{"-in", "walk.vmd"}, errBuf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), ".bvh") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseOptionsRequireInput(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	if _, err := parseOptions(nil, errBuf); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunImportsBvh(t *testing.T) {
	tempDir := t.TempDir()
	inPath := filepath.Join(tempDir, "walk.bvh")
	if err := os.WriteFile(inPath, []byte(testBvhText), 0o644); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	if err := run([]string{"-in", inPath}, outBuf, errBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(outBuf.String(), "bones=2") {
		t.Fatalf("summary missing bone count: %s", outBuf.String())
	}
	if !strings.Contains(outBuf.String(), "name=walk") {
		t.Fatalf("summary missing clip name: %s", outBuf.String())
	}
}

func TestRunStoresRawMotion(t *testing.T) {
	tempDir := t.TempDir()
	inPath := filepath.Join(tempDir, "walk.bvh")
	if err := os.WriteFile(inPath, []byte(testBvhText), 0o644); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}
	storeDir := filepath.Join(tempDir, "motions")

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	if err := run([]string{"-in", inPath, "-store", storeDir}, outBuf, errBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	entries, err := os.ReadDir(storeDir)
	if err != nil {
		t.Fatalf("store dir not found: %v", err)
	}
	// 生テキストとメタ情報の2ファイルが保存される
	if len(entries) != 2 {
		t.Fatalf("expected 2 stored files, got %d", len(entries))
	}
	if !strings.Contains(outBuf.String(), "保存完了") {
		t.Fatalf("store summary missing: %s", outBuf.String())
	}
}

func TestRunFailsOnMissingInput(t *testing.T) {
	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	err := run([]string{"-in", filepath.Join(t.TempDir(), "missing.bvh")}, outBuf, errBuf)
	if err == nil {
		t.Fatalf("expected error for missing input")
	}
}
