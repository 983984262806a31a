package biometric

import (
	"errors"
	"fmt"
	"sync"

	"classmark.io/application/faceauth"
	"classmark.io/infrastructure/logger"
)

// ErrModelInitialization wraps model load failures. Fatal for the current
// request but retryable on the next call.
var ErrModelInitialization = errors.New("model initialization failed")

// Engine owns the lazily loaded detection and embedding models. Loading
// is expensive and happens at most once per process; concurrent first
// callers share a single load under the mutex. A failed load is not
// cached, so the next call retries instead of poisoning the engine.
type Engine struct {
	mu       sync.Mutex
	detector *YuNetDetector
	embedder *ArcFaceEmbedder
}

func NewEngine() *Engine {
	return &Engine{}
}

// Init loads both models if they are not loaded yet. Calling it again
// after success is a no-op.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initLocked()
}

func (e *Engine) initLocked() error {
	if e.detector != nil && e.embedder != nil {
		return nil
	}

	if e.detector == nil {
		detector, err := NewYuNetDetector(DefaultYuNetConfig())
		if err != nil {
			logger.Error("failed to load face detection model", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return fmt.Errorf("%w: %v", ErrModelInitialization, err)
		}
		e.detector = detector
	}

	if e.embedder == nil {
		embedder, err := NewArcFaceEmbedder(DefaultArcFaceConfig())
		if err != nil {
			logger.Error("failed to load face embedding model", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return fmt.Errorf("%w: %v", ErrModelInitialization, err)
		}
		e.embedder = embedder
	}

	logger.Info("biometric engine initialized successfully")
	return nil
}

// Detector initializes the engine if needed and returns the face
// detector.
func (e *Engine) Detector() (faceauth.FaceDetector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.initLocked(); err != nil {
		return nil, err
	}
	return e.detector, nil
}

// Embedder initializes the engine if needed and returns the embedding
// model.
func (e *Engine) Embedder() (faceauth.EmbeddingModel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.initLocked(); err != nil {
		return nil, err
	}
	return e.embedder, nil
}

// Close releases both models.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detector != nil {
		e.detector.Close()
		e.detector = nil
	}
	if e.embedder != nil {
		e.embedder.Close()
		e.embedder = nil
	}
}
