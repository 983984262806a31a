package faceauth

import (
	"fmt"
	"image"
	"math"

	"classmark.io/application/constants"
	"classmark.io/entities"
	"classmark.io/infrastructure/imagery"
)

// ValidationResult is the structured outcome of image quality validation.
// Rejections carry the reason verbatim for display; they are results, not
// errors, so callers can show per-field messages.
type ValidationResult struct {
	IsValid bool                     `json:"isValid"`
	Error   string                   `json:"error,omitempty"`
	Metrics *entities.QualityMetrics `json:"metrics,omitempty"`
	FaceBox *image.Rectangle         `json:"faceBox,omitempty"`
}

// QualityValidator screens captured images before embedding extraction.
// Checks run in a fixed priority order and stop at the first failure so
// only one reason is ever reported.
type QualityValidator struct {
	MaxBytes        int
	MinDimension    int
	MaxDimension    int
	MinBrightness   float64
	MaxBrightness   float64
	MinContrast     float64
	MinSharpness    float64
	CenterTolerance float64

	detector FaceDetector
}

func NewQualityValidator(detector FaceDetector) *QualityValidator {
	return &QualityValidator{
		MaxBytes:        constants.MAX_IMAGE_BYTES,
		MinDimension:    constants.MIN_IMAGE_DIMENSION,
		MaxDimension:    constants.MAX_IMAGE_DIMENSION,
		MinBrightness:   constants.MIN_BRIGHTNESS,
		MaxBrightness:   constants.MAX_BRIGHTNESS,
		MinContrast:     constants.MIN_CONTRAST,
		MinSharpness:    constants.MIN_SHARPNESS,
		CenterTolerance: constants.FACE_CENTER_TOLERANCE,
		detector:        detector,
	}
}

// Validate runs the screening pipeline. The error return is reserved for
// detector failures (a model that cannot run); every image-level
// rejection comes back inside the result.
func (v *QualityValidator) Validate(in imagery.Input) (*ValidationResult, error) {
	if v.MaxBytes > 0 && in.EncodedSize() > v.MaxBytes {
		return rejected(fmt.Sprintf("image size must be less than %dMB", v.MaxBytes/(1024*1024))), nil
	}

	img, err := in.Decode()
	if err != nil {
		return rejected("invalid image format"), nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < v.MinDimension || width > v.MaxDimension ||
		height < v.MinDimension || height > v.MaxDimension {
		return rejected(fmt.Sprintf("image dimensions must be between %dpx and %dpx", v.MinDimension, v.MaxDimension)), nil
	}

	brightness, contrast, sharpness := pixelMetrics(img)
	metrics := &entities.QualityMetrics{
		Width:      width,
		Height:     height,
		Brightness: brightness,
		Contrast:   contrast,
		Sharpness:  sharpness,
	}
	switch {
	case brightness < v.MinBrightness:
		return rejectedWithMetrics("too dark", metrics), nil
	case brightness > v.MaxBrightness:
		return rejectedWithMetrics("too bright", metrics), nil
	case contrast < v.MinContrast:
		return rejectedWithMetrics("low contrast", metrics), nil
	case sharpness < v.MinSharpness:
		return rejectedWithMetrics("not sharp enough", metrics), nil
	}

	faces, err := v.detector.DetectFaces(img)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}
	if len(faces) == 0 {
		return rejectedWithMetrics("no face detected", metrics), nil
	}
	if len(faces) > 1 {
		return rejectedWithMetrics("multiple faces detected", metrics), nil
	}

	face := faces[0]
	faceCenterX := float64(face.Min.X+face.Max.X) / 2
	faceCenterY := float64(face.Min.Y+face.Max.Y) / 2
	distFromCenter := math.Hypot(faceCenterX-float64(width)/2, faceCenterY-float64(height)/2)
	maxAllowed := float64(min(width, height)) * v.CenterTolerance
	if distFromCenter > maxAllowed {
		return rejectedWithMetrics("face not centered", metrics), nil
	}

	return &ValidationResult{
		IsValid: true,
		Metrics: metrics,
		FaceBox: &face,
	}, nil
}

// pixelMetrics scans the buffer once for brightness and contrast and a
// second time for the vertical Laplacian sharpness response. Luminance is
// the plain channel mean on a 0-255 scale; contrast is mean absolute
// deviation from mid-gray.
func pixelMetrics(img *image.NRGBA) (brightness, contrast, sharpness float64) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := float64(width * height)
	if pixels == 0 {
		return 0, 0, 0
	}

	luma := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			v := float64(uint16(row[x*4])+uint16(row[x*4+1])+uint16(row[x*4+2])) / 3
			luma[y*width+x] = v
			brightness += v
			contrast += math.Abs(v - 128)
		}
	}
	brightness /= pixels
	contrast /= pixels

	for y := 1; y < height-1; y++ {
		for x := 0; x < width; x++ {
			center := luma[y*width+x]
			top := luma[(y-1)*width+x]
			bottom := luma[(y+1)*width+x]
			sharpness += math.Abs(center-top) + math.Abs(center-bottom)
		}
	}
	sharpness /= pixels * 255
	return brightness, contrast, sharpness
}

func rejected(reason string) *ValidationResult {
	return &ValidationResult{Error: reason}
}

func rejectedWithMetrics(reason string, metrics *entities.QualityMetrics) *ValidationResult {
	return &ValidationResult{Error: reason, Metrics: metrics}
}
