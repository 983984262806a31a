package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetIntPointer(data int) *int {
	return &data
}

// DecodeBase64Image decodes a base64 payload into raw image bytes.
// Data URIs with an image MIME prefix ("data:image/jpeg;base64,...") are
// accepted as well as bare base64 strings.
func DecodeBase64Image(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		if !strings.HasPrefix(data, "data:image/") {
			return nil, fmt.Errorf("unsupported data URI media type")
		}
		idx := strings.Index(data, ",")
		if idx < 0 || !strings.Contains(data[:idx], ";base64") {
			return nil, fmt.Errorf("malformed image data URI")
		}
		data = data[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	return raw, nil
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}
