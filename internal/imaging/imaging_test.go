package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// Helper functions for creating test images

func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(img image.Image) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestDecode_JPEG(t *testing.T) {
	data := encodeJPEG(createTestImage(50, 40, color.White))

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Errorf("expected 50x40, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecode_PNG(t *testing.T) {
	data := encodePNG(createTestImage(30, 30, color.Black))

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Bounds().Dx() != 30 {
		t.Errorf("expected width 30, got %d", img.Bounds().Dx())
	}
}

func TestDecode_InvalidData(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	if err == nil {
		t.Fatal("expected error for invalid data")
	}

	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestDecode_EmptyData(t *testing.T) {
	_, err := Decode([]byte{})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for empty input, got %v", err)
	}
}

func TestCrop_WithinBounds(t *testing.T) {
	img := createTestImage(100, 100, color.White)

	cropped := Crop(img, image.Rect(10, 20, 60, 70))

	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 50 {
		t.Errorf("expected 50x50 crop, got %dx%d", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestCrop_ClampsToBounds(t *testing.T) {
	img := createTestImage(100, 100, color.White)

	cropped := Crop(img, image.Rect(80, 80, 150, 150))

	if cropped.Bounds().Dx() != 20 || cropped.Bounds().Dy() != 20 {
		t.Errorf("expected 20x20 clamped crop, got %dx%d", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestResize_ExactDimensions(t *testing.T) {
	img := createTestImage(200, 100, color.White)

	resized := Resize(img, 100, 100)

	if resized.Bounds().Dx() != 100 || resized.Bounds().Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", resized.Bounds().Dx(), resized.Bounds().Dy())
	}
}

func TestGrayValues_Length(t *testing.T) {
	img := createTestImage(10, 8, color.White)

	values := GrayValues(img)

	if len(values) != 80 {
		t.Errorf("expected 80 values, got %d", len(values))
	}
}

func TestGrayValues_Range(t *testing.T) {
	img := createTestImage(5, 5, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	values := GrayValues(img)

	for i, v := range values {
		if v < 0 || v > 255 {
			t.Fatalf("value %d out of range [0,255]: %f", i, v)
		}
	}
}

func TestGrayValues_WhiteIsBright(t *testing.T) {
	white := GrayValues(createTestImage(2, 2, color.White))
	black := GrayValues(createTestImage(2, 2, color.Black))

	if white[0] < 250 {
		t.Errorf("expected white luma near 255, got %f", white[0])
	}

	if black[0] > 5 {
		t.Errorf("expected black luma near 0, got %f", black[0])
	}
}

func TestGrayPlane_MatchesGrayValues(t *testing.T) {
	img := createTestImage(4, 4, color.RGBA{R: 120, G: 80, B: 40, A: 255})

	values := GrayValues(img)
	plane := GrayPlane(img)

	if len(plane) != len(values) {
		t.Fatalf("length mismatch: %d vs %d", len(plane), len(values))
	}

	for i := range plane {
		if int(plane[i]) != int(values[i]) {
			t.Errorf("index %d: plane %d != value %f", i, plane[i], values[i])
		}
	}
}

func TestResizeMax_SmallImageReencoded(t *testing.T) {
	data := encodePNG(createTestImage(100, 100, color.White))

	out, err := ResizeMax(data, 200)
	if err != nil {
		t.Fatalf("ResizeMax failed: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
}

func TestResizeMax_Landscape(t *testing.T) {
	data := encodeJPEG(createTestImage(2000, 1000, color.White))

	out, err := ResizeMax(data, 500)
	if err != nil {
		t.Fatalf("ResizeMax failed: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if img.Bounds().Dx() != 500 || img.Bounds().Dy() != 250 {
		t.Errorf("expected 500x250, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeMax_Portrait(t *testing.T) {
	data := encodeJPEG(createTestImage(1000, 2000, color.White))

	out, err := ResizeMax(data, 500)
	if err != nil {
		t.Fatalf("ResizeMax failed: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if img.Bounds().Dx() != 250 || img.Bounds().Dy() != 500 {
		t.Errorf("expected 250x500, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeMax_InvalidData(t *testing.T) {
	_, err := ResizeMax([]byte("garbage"), 500)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
