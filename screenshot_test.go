package viewport

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	vp := newTestViewport(t)
	vp.Screenshot("a")
	vp.Screenshot("b")
	vp.Screenshot("c")
	if len(vp.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(vp.screenshotQueue))
	}
	if vp.screenshotQueue[0] != "a" || vp.screenshotQueue[1] != "b" || vp.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", vp.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	vp := newTestViewport(t)
	if vp.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", vp.ScreenshotDir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		100, 50, 0, 255,    // opaque: unchanged
		64, 32, 0, 128,     // half alpha: doubled
		0, 0, 0, 0,         // transparent: unchanged
		200, 200, 200, 100, // over-bright clamps to 255
	}
	img := unpremultiply(pixels, 2, 2)

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{100, 50, 0, 255}},
		{1, 0, color.NRGBA{127, 63, 0, 128}},
		{0, 1, color.NRGBA{0, 0, 0, 0}},
		{1, 1, color.NRGBA{255, 255, 255, 100}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{1, 2, 3, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("written PNG is empty")
	}
}
