package report

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

// ErrInvalidDataURI is returned by DecodeDataURI for malformed input.
var ErrInvalidDataURI = errors.New("invalid data URI")

// EncodeDataURI wraps data in a base64 data URI.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI returns the MIME type and payload of a base64 data URI.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mimeType, data, nil
}

// Filename names a report after its type, date and a content hash prefix.
func Filename(rt model.ReportType, f model.Format, generatedAt time.Time, data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("hotel_%s_report_%s_%s.%s",
		rt, generatedAt.Format("20060102"), hex.EncodeToString(sum[:])[:8], f.Extension())
}
