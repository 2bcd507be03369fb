package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/go-escapement/escapement/pkg/engine"
	"github.com/go-escapement/escapement/pkg/motion"
)

func TestRender_Size(t *testing.T) {
	frame := engine.Frame{Hour: 300, Minute: 1.5, Second: 90, Phase: motion.PhaseSettled}

	img := Render(frame, 128)
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 128 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	img = Render(frame, 0)
	if img.Bounds().Dx() != DefaultSize {
		t.Errorf("expected default size %d, got %d", DefaultSize, img.Bounds().Dx())
	}
}

func TestRender_DrawsFace(t *testing.T) {
	frame := engine.Frame{Hour: 0, Minute: 0, Second: 0, Phase: motion.PhaseSettled}
	img := Render(frame, 64)

	// The center hub is drawn in the second-hand color, never plain white.
	r, g, b, _ := img.At(32, 32).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("center pixel is blank; nothing was drawn")
	}
}

func TestWritePNG(t *testing.T) {
	frame := engine.Frame{Hour: 10, Minute: 120, Second: 271, Phase: motion.PhaseCreeping}

	var buf bytes.Buffer
	if err := WritePNG(&buf, frame, 96); err != nil {
		t.Fatalf("write png: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if decoded.Bounds().Dx() != 96 {
		t.Errorf("unexpected decoded width %d", decoded.Bounds().Dx())
	}
}
