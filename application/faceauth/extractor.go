package faceauth

import (
	"fmt"
	"image"

	"classmark.io/application/constants"
	"classmark.io/infrastructure/imagery"
	"github.com/disintegration/imaging"
)

// Extractor turns a screened image into an embedding vector. It expects
// the image to have already passed QualityValidator; an unscreened image
// with zero or several faces fails with the corresponding sentinel.
type Extractor struct {
	CropSize     int
	PaddingRatio float64

	detector FaceDetector
	model    EmbeddingModel
}

func NewExtractor(detector FaceDetector, model EmbeddingModel) *Extractor {
	return &Extractor{
		CropSize:     constants.FACE_CROP_SIZE,
		PaddingRatio: constants.FACE_PADDING_RATIO,
		detector:     detector,
		model:        model,
	}
}

// Extract locates the face, pads the box by PaddingRatio of its smaller
// dimension, crops, resizes to the canonical square, and runs the crop
// through the embedding model.
func (e *Extractor) Extract(in imagery.Input) ([]float64, error) {
	img, err := in.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	faces, err := e.detector.DetectFaces(img)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}
	if len(faces) == 0 {
		return nil, ErrNoFaceDetected
	}
	if len(faces) > 1 {
		return nil, ErrMultipleFacesDetected
	}

	crop := imaging.Crop(img, paddedBox(faces[0], img.Bounds(), e.PaddingRatio))
	crop = imaging.Resize(crop, e.CropSize, e.CropSize, imaging.Linear)

	embedding, err := e.model.EmbedFace(crop)
	if err != nil {
		return nil, fmt.Errorf("embedding extraction failed: %w", err)
	}
	return embedding, nil
}

// paddedBox grows the detection box symmetrically by ratio of its smaller
// dimension, clamped to the image bounds.
func paddedBox(face image.Rectangle, bounds image.Rectangle, ratio float64) image.Rectangle {
	padding := int(float64(min(face.Dx(), face.Dy())) * ratio)
	return image.Rect(
		face.Min.X-padding,
		face.Min.Y-padding,
		face.Max.X+padding,
		face.Max.Y+padding,
	).Intersect(bounds)
}
