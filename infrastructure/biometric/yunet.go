package biometric

import (
	"fmt"
	"image"
	"os"
	"sync"

	"classmark.io/infrastructure/logger"
	"gocv.io/x/gocv"
)

// YuNetDetector provides face detection using the YuNet ONNX model. It
// implements faceauth.FaceDetector.
type YuNetDetector struct {
	detector            gocv.FaceDetectorYN
	confidenceThreshold float32
	nmsThreshold        float32
	topK                int
	mutex               sync.Mutex
}

// YuNetConfig holds configuration for the YuNet detector.
type YuNetConfig struct {
	ModelPath           string
	InputSize           image.Point
	ConfidenceThreshold float32
	NMSThreshold        float32
	TopK                int
}

// NewYuNetDetector loads the YuNet model from config.ModelPath.
func NewYuNetDetector(config YuNetConfig) (*YuNetDetector, error) {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	detector := gocv.NewFaceDetectorYN(
		config.ModelPath,
		"",
		image.Pt(config.InputSize.X, config.InputSize.Y),
	)
	detector.SetScoreThreshold(config.ConfidenceThreshold)
	detector.SetNMSThreshold(config.NMSThreshold)
	detector.SetTopK(config.TopK)

	logger.Info("YuNet model loaded successfully", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path":           config.ModelPath,
			"input_size":           fmt.Sprintf("%dx%d", config.InputSize.X, config.InputSize.Y),
			"confidence_threshold": config.ConfidenceThreshold,
			"nms_threshold":        config.NMSThreshold,
			"top_k":                config.TopK,
		},
	})

	return &YuNetDetector{
		detector:            detector,
		confidenceThreshold: config.ConfidenceThreshold,
		nmsThreshold:        config.NMSThreshold,
		topK:                config.TopK,
	}, nil
}

// DetectFaces returns the bounding box of every detected face.
func (yd *YuNetDetector) DetectFaces(img image.Image) ([]image.Rectangle, error) {
	yd.mutex.Lock()
	defer yd.mutex.Unlock()

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %v", err)
	}
	defer mat.Close()

	// The detector's input size must match this image.
	yd.detector.SetInputSize(image.Pt(mat.Cols(), mat.Rows()))

	facesMat := gocv.NewMat()
	defer facesMat.Close()
	yd.detector.Detect(mat, &facesMat)

	return parseDetections(facesMat, mat.Cols(), mat.Rows()), nil
}

// parseDetections reads YuNet's row format:
// [x, y, w, h, 5 landmark (x,y) pairs, score].
func parseDetections(facesMat gocv.Mat, imgWidth, imgHeight int) []image.Rectangle {
	var faces []image.Rectangle
	if facesMat.Empty() || facesMat.Rows() == 0 {
		return faces
	}

	for i := 0; i < facesMat.Rows(); i++ {
		x := int(facesMat.GetFloatAt(i, 0))
		y := int(facesMat.GetFloatAt(i, 1))
		w := int(facesMat.GetFloatAt(i, 2))
		h := int(facesMat.GetFloatAt(i, 3))

		if x >= 0 && y >= 0 && x+w <= imgWidth && y+h <= imgHeight && w > 0 && h > 0 {
			faces = append(faces, image.Rect(x, y, x+w, y+h))
		}
	}
	return faces
}

// Close releases the underlying detector.
func (yd *YuNetDetector) Close() {
	yd.mutex.Lock()
	defer yd.mutex.Unlock()
	yd.detector.Close()
}

// DefaultYuNetConfig reads the model path from the environment with a
// conventional fallback.
func DefaultYuNetConfig() YuNetConfig {
	modelPath := os.Getenv("YUNET_MODEL_PATH")
	if modelPath == "" {
		modelPath = "./models/yunet/face_detection_yunet_2023mar.onnx"
	}
	return YuNetConfig{
		ModelPath:           modelPath,
		InputSize:           image.Pt(320, 320),
		ConfidenceThreshold: 0.6,
		NMSThreshold:        0.3,
		TopK:                5000,
	}
}
