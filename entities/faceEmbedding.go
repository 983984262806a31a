package entities

import "time"

// QualityMetrics is the provenance captured alongside an embedding when
// its source image passed quality validation.
type QualityMetrics struct {
	Width      int     `bson:"width" json:"width"`
	Height     int     `bson:"height" json:"height"`
	Brightness float64 `bson:"brightness" json:"brightness"`
	Contrast   float64 `bson:"contrast" json:"contrast"`
	Sharpness  float64 `bson:"sharpness" json:"sharpness"`
}

// FaceEmbedding is a fixed-length identity vector owned by a user's
// registration record. Embeddings are immutable once produced; a
// re-registration generates a new one rather than mutating this.
type FaceEmbedding struct {
	Vector     []float64       `bson:"vector" json:"vector"`
	CapturedAt time.Time       `bson:"capturedAt" json:"capturedAt"`
	Quality    *QualityMetrics `bson:"quality,omitempty" json:"quality,omitempty"`
}

func NewFaceEmbedding(vector []float64, quality *QualityMetrics) FaceEmbedding {
	return FaceEmbedding{
		Vector:     vector,
		CapturedAt: time.Now(),
		Quality:    quality,
	}
}
