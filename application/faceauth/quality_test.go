package faceauth

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"classmark.io/infrastructure/imagery"
)

// stubDetector returns a fixed detection result without any model.
type stubDetector struct {
	faces []image.Rectangle
	err   error
}

func (d *stubDetector) DetectFaces(image.Image) ([]image.Rectangle, error) {
	return d.faces, d.err
}

func uniformImage(size int, gray uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = gray
		img.Pix[i+1] = gray
		img.Pix[i+2] = gray
		img.Pix[i+3] = 255
	}
	return img
}

// rowStripeImage alternates black and white rows. It passes every pixel
// gate: brightness 127.5, contrast 127.5, sharpness just under 2.
func rowStripeImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		var gray uint8
		if y%2 == 0 {
			gray = 255
		}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{gray, gray, gray, 255})
		}
	}
	return img
}

// columnStripeImage alternates black and white columns. Brightness and
// contrast match the row-stripe image but every column is vertically
// uniform, so the vertical sharpness response is zero.
func columnStripeImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		var gray uint8
		if x%2 == 0 {
			gray = 255
		}
		for y := 0; y < size; y++ {
			img.SetNRGBA(x, y, color.NRGBA{gray, gray, gray, 255})
		}
	}
	return img
}

func centeredFace() []image.Rectangle {
	return []image.Rectangle{image.Rect(100, 100, 200, 200)}
}

func TestValidateRejectionReasons(t *testing.T) {
	cases := []struct {
		name     string
		img      *image.NRGBA
		detector *stubDetector
		want     string
	}{
		{
			name:     "too small",
			img:      uniformImage(100, 128),
			detector: &stubDetector{faces: centeredFace()},
			want:     "image dimensions must be between 200px and 4096px",
		},
		{
			name:     "too dark",
			img:      uniformImage(300, 0),
			detector: &stubDetector{faces: centeredFace()},
			want:     "too dark",
		},
		{
			name:     "too bright",
			img:      uniformImage(300, 255),
			detector: &stubDetector{faces: centeredFace()},
			want:     "too bright",
		},
		{
			name:     "low contrast",
			img:      uniformImage(300, 128),
			detector: &stubDetector{faces: centeredFace()},
			want:     "low contrast",
		},
		{
			name:     "not sharp enough",
			img:      columnStripeImage(300),
			detector: &stubDetector{faces: centeredFace()},
			want:     "not sharp enough",
		},
		{
			name:     "no face detected",
			img:      rowStripeImage(300),
			detector: &stubDetector{},
			want:     "no face detected",
		},
		{
			name: "multiple faces detected",
			img:  rowStripeImage(300),
			detector: &stubDetector{faces: []image.Rectangle{
				image.Rect(100, 100, 200, 200),
				image.Rect(10, 10, 90, 90),
			}},
			want: "multiple faces detected",
		},
		{
			name:     "face not centered",
			img:      rowStripeImage(300),
			detector: &stubDetector{faces: []image.Rectangle{image.Rect(0, 0, 80, 80)}},
			want:     "face not centered",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := NewQualityValidator(c.detector)
			result, err := v.Validate(imagery.FromImage(c.img))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsValid {
				t.Fatal("expected rejection")
			}
			if result.Error != c.want {
				t.Errorf("rejection reason = %q, want %q", result.Error, c.want)
			}
		})
	}
}

func TestValidateAcceptsCenteredFace(t *testing.T) {
	v := NewQualityValidator(&stubDetector{faces: centeredFace()})

	result, err := v.Validate(imagery.FromImage(rowStripeImage(300)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected acceptance, got rejection %q", result.Error)
	}
	if result.Metrics == nil {
		t.Fatal("expected metrics on an accepted image")
	}
	if result.Metrics.Width != 300 || result.Metrics.Height != 300 {
		t.Errorf("metrics dimensions = %dx%d, want 300x300", result.Metrics.Width, result.Metrics.Height)
	}
	if result.FaceBox == nil || *result.FaceBox != centeredFace()[0] {
		t.Errorf("face box = %v, want %v", result.FaceBox, centeredFace()[0])
	}
}

func TestValidateRejectsOversizedPayload(t *testing.T) {
	v := NewQualityValidator(&stubDetector{faces: centeredFace()})

	result, err := v.Validate(imagery.FromBytes(make([]byte, 6*1024*1024)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Error != "image size must be less than 5MB" {
		t.Errorf("result = %+v, want size rejection", result)
	}
}

func TestValidateRejectsUndecodableBytes(t *testing.T) {
	v := NewQualityValidator(&stubDetector{faces: centeredFace()})

	result, err := v.Validate(imagery.FromBytes([]byte("not an image")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Error != "invalid image format" {
		t.Errorf("result = %+v, want format rejection", result)
	}
}

// The size gate also applies to real encoded inputs, not just raw decoded
// buffers handed over in process.
func TestValidateAcceptsEncodedImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, rowStripeImage(300)); err != nil {
		t.Fatal(err)
	}

	v := NewQualityValidator(&stubDetector{faces: centeredFace()})
	result, err := v.Validate(imagery.FromBytes(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected acceptance, got rejection %q", result.Error)
	}
}

func TestValidateDetectorFailureIsAnError(t *testing.T) {
	detectorErr := errors.New("model not loaded")
	v := NewQualityValidator(&stubDetector{err: detectorErr})

	result, err := v.Validate(imagery.FromImage(rowStripeImage(300)))
	if err == nil {
		t.Fatal("expected an error from a failing detector")
	}
	if !errors.Is(err, detectorErr) {
		t.Errorf("error = %v, want wrapped %v", err, detectorErr)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on detector failure", result)
	}
}
