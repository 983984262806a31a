package faceauth

import (
	"time"

	"classmark.io/entities"
)

// SampleQuality pairs a registered sample's capture time with the quality
// metrics recorded as provenance when it was accepted.
type SampleQuality struct {
	CapturedAt time.Time                `json:"capturedAt"`
	Quality    *entities.QualityMetrics `json:"quality,omitempty"`
}

// RegistrationSummary aggregates a user's registered samples for the
// registration dashboard.
type RegistrationSummary struct {
	Samples         int                      `json:"samples"`
	FirstCapturedAt *time.Time               `json:"firstCapturedAt,omitempty"`
	LastCapturedAt  *time.Time               `json:"lastCapturedAt,omitempty"`
	AverageQuality  *entities.QualityMetrics `json:"averageQuality,omitempty"`
	SampleQualities []SampleQuality          `json:"sampleQualities"`
}

func SummarizeRegistration(embeddings []entities.FaceEmbedding) RegistrationSummary {
	summary := RegistrationSummary{Samples: len(embeddings)}
	withQuality := 0
	var avg entities.QualityMetrics
	for _, e := range embeddings {
		captured := e.CapturedAt
		if summary.FirstCapturedAt == nil || captured.Before(*summary.FirstCapturedAt) {
			summary.FirstCapturedAt = &captured
		}
		if summary.LastCapturedAt == nil || captured.After(*summary.LastCapturedAt) {
			summary.LastCapturedAt = &captured
		}
		if e.Quality != nil {
			withQuality++
			avg.Brightness += e.Quality.Brightness
			avg.Contrast += e.Quality.Contrast
			avg.Sharpness += e.Quality.Sharpness
		}
		summary.SampleQualities = append(summary.SampleQualities, SampleQuality{
			CapturedAt: captured,
			Quality:    e.Quality,
		})
	}
	if withQuality > 0 {
		avg.Brightness /= float64(withQuality)
		avg.Contrast /= float64(withQuality)
		avg.Sharpness /= float64(withQuality)
		summary.AverageQuality = &avg
	}
	return summary
}
