package faceauth

import (
	"errors"
	"image"
)

// FaceDetector locates face bounding boxes in a decoded pixel buffer.
// The production implementation lives in infrastructure/biometric; tests
// substitute stubs.
type FaceDetector interface {
	DetectFaces(img image.Image) ([]image.Rectangle, error)
}

// EmbeddingModel converts a canonical face crop into a fixed-length
// identity vector. Pixel scaling to [0,1] is the model adapter's job
// since different backends want different input layouts.
type EmbeddingModel interface {
	EmbedFace(face image.Image) ([]float64, error)
}

var (
	// ErrNoFaceDetected and ErrMultipleFacesDetected are recoverable;
	// callers surface them with a retry affordance.
	ErrNoFaceDetected        = errors.New("no face detected")
	ErrMultipleFacesDetected = errors.New("multiple faces detected")

	// ErrDimensionMismatch indicates a corrupted stored embedding or
	// model version skew.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
