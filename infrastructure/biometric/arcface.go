package biometric

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"classmark.io/infrastructure/logger"
	"gocv.io/x/gocv"
)

// ArcFaceEmbedder produces identity embeddings with an ArcFace-family
// ONNX model. It implements faceauth.EmbeddingModel.
type ArcFaceEmbedder struct {
	net           gocv.Net
	inputSize     image.Point
	embeddingSize int
	mutex         sync.Mutex
}

// ArcFaceConfig holds configuration for the embedding model.
type ArcFaceConfig struct {
	ModelPath     string
	InputSize     image.Point
	EmbeddingSize int
	Backend       gocv.NetBackendType
	Target        gocv.NetTargetType
}

// NewArcFaceEmbedder loads the ONNX model from config.ModelPath.
func NewArcFaceEmbedder(config ArcFaceConfig) (*ArcFaceEmbedder, error) {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	net := gocv.ReadNet(config.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load embedding model from %s", config.ModelPath)
	}
	net.SetPreferableBackend(config.Backend)
	net.SetPreferableTarget(config.Target)

	logger.Info("embedding model loaded successfully", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"path":       config.ModelPath,
			"input_size": fmt.Sprintf("%dx%d", config.InputSize.X, config.InputSize.Y),
			"dimensions": config.EmbeddingSize,
		},
	})

	return &ArcFaceEmbedder{
		net:           net,
		inputSize:     config.InputSize,
		embeddingSize: config.EmbeddingSize,
	}, nil
}

// EmbedFace runs the canonical face crop through the network and returns
// the L2-normalized embedding. Input pixels are scaled to [0,1].
func (ae *ArcFaceEmbedder) EmbedFace(face image.Image) ([]float64, error) {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()

	mat, err := gocv.ImageToMatRGB(face)
	if err != nil {
		return nil, fmt.Errorf("failed to convert face crop to Mat: %v", err)
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(
		mat,
		1.0/255.0,
		ae.inputSize,
		gocv.NewScalar(0, 0, 0, 0),
		true,  // swap RB channels
		false, // crop
	)
	defer blob.Close()

	ae.net.SetInput(blob, "")
	output := ae.net.Forward("")
	defer output.Close()

	embedding := make([]float64, ae.embeddingSize)
	for i := 0; i < ae.embeddingSize; i++ {
		embedding[i] = float64(output.GetFloatAt(0, i))
	}
	return normalizeEmbedding(embedding), nil
}

// normalizeEmbedding performs L2 normalization so downstream cosine
// scores compare consistently across model versions.
func normalizeEmbedding(embedding []float64) []float64 {
	norm := 0.0
	for _, val := range embedding {
		norm += val * val
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return embedding
	}

	normalized := make([]float64, len(embedding))
	for i, val := range embedding {
		normalized[i] = val / norm
	}
	return normalized
}

// Close releases the network.
func (ae *ArcFaceEmbedder) Close() error {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()
	if !ae.net.Empty() {
		if err := ae.net.Close(); err != nil {
			return fmt.Errorf("failed to close embedding network: %v", err)
		}
	}
	return nil
}

// DefaultArcFaceConfig reads the model path from the environment with a
// conventional fallback.
func DefaultArcFaceConfig() ArcFaceConfig {
	modelPath := os.Getenv("ARCFACE_MODEL_PATH")
	if modelPath == "" {
		modelPath = "./models/arcface/arcface.onnx"
	}
	return ArcFaceConfig{
		ModelPath:     modelPath,
		InputSize:     image.Pt(112, 112),
		EmbeddingSize: 512,
		Backend:       gocv.NetBackendDefault,
		Target:        gocv.NetTargetCPU,
	}
}
