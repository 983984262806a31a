package utils

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestDecodeBase64Image(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(payload)

	cases := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "bare base64", input: encoded, want: payload},
		{name: "image data URI", input: "data:image/png;base64," + encoded, want: payload},
		{name: "non-image data URI", input: "data:text/plain;base64," + encoded, wantErr: true},
		{name: "data URI missing base64 marker", input: "data:image/png," + encoded, wantErr: true},
		{name: "data URI missing comma", input: "data:image/png;base64" + encoded, wantErr: true},
		{name: "invalid base64", input: "!!not base64!!", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DecodeBase64Image(c.input)
			if c.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, c.want) {
				t.Errorf("decoded = %v, want %v", got, c.want)
			}
		})
	}
}

func TestHasItemString(t *testing.T) {
	items := []string{"monday", "wednesday"}
	if !HasItemString(&items, "monday") {
		t.Error("expected monday to be present")
	}
	if HasItemString(&items, "friday") {
		t.Error("did not expect friday to be present")
	}
}
