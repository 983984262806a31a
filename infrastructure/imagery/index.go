package imagery

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"classmark.io/application/utils"
	"github.com/disintegration/imaging"
)

// Input carries a captured image in exactly one of two forms: encoded
// bytes (possibly unwrapped from a base64 data URI) or an already decoded
// pixel buffer. Decode collapses both into the canonical buffer consumed
// uniformly downstream.
type Input struct {
	encoded []byte
	decoded image.Image
}

func FromBytes(raw []byte) Input {
	return Input{encoded: raw}
}

// FromDataURI unwraps a "data:image/...;base64," URI or a bare base64
// string into an encoded-bytes input.
func FromDataURI(uri string) (Input, error) {
	raw, err := utils.DecodeBase64Image(uri)
	if err != nil {
		return Input{}, err
	}
	return Input{encoded: raw}, nil
}

func FromImage(img image.Image) Input {
	return Input{decoded: img}
}

// EncodedSize returns the encoded byte length, or 0 when the input
// arrived as a pixel buffer and no encoded form exists.
func (in Input) EncodedSize() int {
	return len(in.encoded)
}

// Decode returns the canonical NRGBA pixel buffer. Encoded inputs are
// decoded with the registered stdlib codecs; decoded inputs are cloned so
// callers can never mutate the original.
func (in Input) Decode() (*image.NRGBA, error) {
	if in.decoded != nil {
		return imaging.Clone(in.decoded), nil
	}
	if len(in.encoded) == 0 {
		return nil, fmt.Errorf("empty image input")
	}
	img, _, err := image.Decode(bytes.NewReader(in.encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(img), nil
}
