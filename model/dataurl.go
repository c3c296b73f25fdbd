package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURL is a decoded data: URL, the wire form for image uploads.
type DataURL struct {
	MimeType string
	Data     []byte
}

// ParseDataURL parses a base64 data URL string.
func ParseDataURL(s string) (DataURL, error) {
	if !strings.HasPrefix(s, "data:") {
		return DataURL{}, fmt.Errorf("not a data URL")
	}
	rest := s[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep <= 0 {
		return DataURL{}, fmt.Errorf("data URL must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return DataURL{}, fmt.Errorf("malformed data URL payload: %v", err)
	}
	return DataURL{MimeType: rest[:sep], Data: data}, nil
}

// String re-encodes the data URL.
func (d DataURL) String() string {
	return "data:" + d.MimeType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}
