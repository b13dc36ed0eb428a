package source

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeFrames creates numbered PNG files in a fresh temp directory.
func writeFrames(t *testing.T, names []string, width, height int) string {
	t.Helper()
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{30, 30, 30, 255})
		}
	}
	for _, name := range names {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		f.Close()
	}
	return dir
}

func TestList_FiltersAndSorts(t *testing.T) {
	dir := writeFrames(t, []string{"frame_002.png", "frame_001.png", "frame_010.png"}, 8, 8)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3 (non-image files must be skipped)", len(paths))
	}
	for i, want := range []string{"frame_001.png", "frame_002.png", "frame_010.png"} {
		if filepath.Base(paths[i]) != want {
			t.Errorf("paths[%d] = %s, want %s", i, filepath.Base(paths[i]), want)
		}
	}
}

func TestOpenDir_Empty(t *testing.T) {
	if _, err := OpenDir(t.TempDir()); err == nil {
		t.Fatal("empty directory should be an error")
	}
}

func TestDir_NextAndEOF(t *testing.T) {
	dir := writeFrames(t, []string{"a.png", "b.png"}, 16, 12)
	src, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}
	if src.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", src.Len())
	}

	for i := 0; i < 2; i++ {
		img, err := src.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
			t.Errorf("frame %d bounds: %v", i, img.Bounds())
		}
	}

	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("after last frame: got %v, want io.EOF", err)
	}
	// EOF is sticky.
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("repeated Next after EOF: got %v, want io.EOF", err)
	}
}

func TestDir_Resize(t *testing.T) {
	dir := writeFrames(t, []string{"a.png"}, 64, 32)
	src, err := OpenDir(dir, WithTargetWidth(32))
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}

	img, err := src.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("width: got %d, want 32", img.Bounds().Dx())
	}
	if img.Bounds().Dy() != 16 {
		t.Errorf("aspect ratio not preserved: height %d, want 16", img.Bounds().Dy())
	}
}

func TestDir_CorruptFrame(t *testing.T) {
	dir := writeFrames(t, []string{"a.png"}, 8, 8)
	if err := os.WriteFile(filepath.Join(dir, "b.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}

	if _, err := src.Next(); err != nil {
		t.Fatalf("good frame failed: %v", err)
	}
	if _, err := src.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("corrupt frame: got %v, want a decode error", err)
	}
	// The stream continues past a bad frame.
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("after corrupt frame: got %v, want io.EOF", err)
	}
}
