// Package polyline decodes and encodes the polyline format used by mapping and
// routing providers on top of go-polyline, adding the byte offset of the first
// malformed character to every decode failure.
package polyline

import (
	"fmt"

	gopolyline "github.com/twpayne/go-polyline"

	"github.com/truckershub-backend/internal/domain"
)

const (
	precision = 1e5
	// 32-bit deltas never need more than 7 chunks
	maxChunks = 7
)

var codec = gopolyline.Codec{Dim: 2, Scale: precision}

// DecodeError describes why and where an encoded string is malformed
type DecodeError struct {
	Offset int
	Reason string
	err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("polyline: %s at offset %d", e.Reason, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// Decode turns an encoded polyline into coordinates in encoding order.
// An empty string yields an empty slice.
func Decode(encoded string) ([]domain.Coordinate, error) {
	buf := []byte(encoded)
	coords := make([]domain.Coordinate, 0, len(buf)/4)

	var lat, lon int
	pos := 0
	for pos < len(buf) {
		dLat, next, err := readValue(buf, pos)
		if err != nil {
			return nil, err
		}
		if next >= len(buf) {
			return nil, &DecodeError{Offset: next, Reason: "latitude without longitude"}
		}

		dLon, next, err := readValue(buf, next)
		if err != nil {
			return nil, err
		}
		pos = next

		lat += dLat
		lon += dLon
		coords = append(coords, domain.Coordinate{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}

	return coords, nil
}

// readValue decodes one zig-zag delta starting at pos and returns the offset after it
func readValue(buf []byte, pos int) (int, int, error) {
	v, rest, err := gopolyline.DecodeInt(buf[pos:])
	if err != nil {
		return 0, pos, decodeError(buf, pos, err)
	}

	next := len(buf) - len(rest)
	if next-pos > maxChunks {
		return 0, pos, &DecodeError{Offset: pos + maxChunks, Reason: "chunk group too long"}
	}
	return v, next, nil
}

// decodeError locates the failing byte of the group starting at pos
func decodeError(buf []byte, pos int, err error) *DecodeError {
	switch err {
	case gopolyline.ErrInvalidByte:
		for i := pos; i < len(buf); i++ {
			if b := buf[i]; b < 63 || b >= 127 {
				return &DecodeError{Offset: i, Reason: fmt.Sprintf("invalid character %q", b), err: err}
			}
		}
	case gopolyline.ErrUnterminatedSequence:
		return &DecodeError{Offset: len(buf), Reason: "unterminated chunk group", err: err}
	}
	return &DecodeError{Offset: pos, Reason: err.Error(), err: err}
}

// Encode is the exact inverse of Decode for coordinates rounded to 5 decimals
func Encode(coords []domain.Coordinate) string {
	flat := make([][]float64, len(coords))
	for i, c := range coords {
		flat[i] = []float64{c.Lat, c.Lon}
	}
	return string(codec.EncodeCoords(nil, flat))
}
