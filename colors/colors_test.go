package colors

import (
	"image/color"
	"testing"
)

func TestGammaToLinearFixedPoints(t *testing.T) {

	tests := []struct {
		name string
		in   color.RGBA
		want color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 255}, color.RGBA{0, 0, 0, 255}},
		{"white", color.RGBA{255, 255, 255, 255}, color.RGBA{255, 255, 255, 255}},
		{"alpha untouched", color.RGBA{0, 255, 0, 17}, color.RGBA{0, 255, 0, 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GammaToLinear(tt.in)
			if got != tt.want {
				t.Errorf("GammaToLinear(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGammaToLinearMidGray(t *testing.T) {

	// (128/255)^2.2*255 = 55.98
	got := GammaToLinear(color.RGBA{128, 128, 128, 200})
	want := color.RGBA{56, 56, 56, 200}
	if got != want {
		t.Errorf("GammaToLinear(gray 128) = %v, want %v", got, want)
	}
}

func TestGammaToLinearMonotonic(t *testing.T) {

	var prev uint8
	for i := 0; i < 256; i++ {
		got := GammaToLinear(color.RGBA{R: uint8(i)}).R
		if got < prev {
			t.Fatalf("GammaToLinear not monotonic at %d: %d < %d", i, got, prev)
		}

		// Darkening only, since gamma > 1
		if got > uint8(i) {
			t.Fatalf("GammaToLinear(%d) = %d, want <= %d", i, got, i)
		}
		prev = got
	}
}

func TestGammaRoundTrip(t *testing.T) {

	// Low values lose precision when squashed into a byte, so only check the upper range
	for i := 100; i < 256; i++ {
		c := color.RGBA{R: uint8(i), A: 255}
		got := LinearToGamma(GammaToLinear(c)).R
		diff := int(got) - i
		if diff < -2 || diff > 2 {
			t.Errorf("LinearToGamma(GammaToLinear(%d)) = %d, want within 2", i, got)
		}
	}
}

func TestSRGBToLinear(t *testing.T) {

	if got := SRGBToLinear(color.RGBA{0, 255, 0, 9}); got != (color.RGBA{0, 255, 0, 9}) {
		t.Errorf("SRGBToLinear fixed points = %v, want %v", got, color.RGBA{0, 255, 0, 9})
	}

	// sRGB 128 is ~21.6% linear
	got := SRGBToLinear(color.RGBA{R: 128}).R
	if got < 53 || got > 57 {
		t.Errorf("SRGBToLinear(128) = %d, want 55±2", got)
	}
}

func TestNormalize(t *testing.T) {

	got := Normalize(color.RGBA{255, 0, 51, 255})
	want := [4]float32{1, 0, 0.2, 1}
	if got.Data != want {
		t.Errorf("Normalize() = %v, want %v", got.Data, want)
	}
}
