package polyline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopolyline "github.com/twpayne/go-polyline"

	"github.com/truckershub-backend/internal/domain"
)

const referenceEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referenceCoords = []domain.Coordinate{
	{Lat: 38.5, Lon: -120.2},
	{Lat: 40.7, Lon: -120.95},
	{Lat: 43.252, Lon: -126.453},
}

func assertCoordsEqual(t *testing.T, expected, actual []domain.Coordinate) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].Lat, actual[i].Lat, 1e-5, "lat of point %d", i)
		assert.InDelta(t, expected[i].Lon, actual[i].Lon, 1e-5, "lon of point %d", i)
	}
}

func TestDecode(t *testing.T) {
	t.Run("published reference vector", func(t *testing.T) {
		coords, err := Decode(referenceEncoded)
		require.NoError(t, err)
		assertCoordsEqual(t, referenceCoords, coords)
	})

	t.Run("decoding twice yields the same sequence", func(t *testing.T) {
		first, err := Decode(referenceEncoded)
		require.NoError(t, err)
		second, err := Decode(referenceEncoded)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty string", func(t *testing.T) {
		coords, err := Decode("")
		require.NoError(t, err)
		assert.Empty(t, coords)
	})

	t.Run("single point at origin", func(t *testing.T) {
		coords, err := Decode("??")
		require.NoError(t, err)
		assertCoordsEqual(t, []domain.Coordinate{{Lat: 0, Lon: 0}}, coords)
	})
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"truncated chunk group", "_p~iF~ps|"},
		{"latitude without longitude", "_p~iF"},
		{"character below alphabet", "_p~iF~ps|U "},
		{"character above alphabet", "_p~iF\x7f"},
		{"group never terminates", "~~~~~~~~~~"},
		{"dangling continuation at end", referenceEncoded + "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := Decode(tt.encoded)
			require.Error(t, err)
			assert.Nil(t, coords)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.GreaterOrEqual(t, decodeErr.Offset, 0)
			assert.LessOrEqual(t, decodeErr.Offset, len(tt.encoded))
		})
	}
}

func TestDecode_ErrorOffsets(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		offset  int
		cause   error
	}{
		{"space inside the second point", "_p~iF~ps|U_u lLnnqC", 12, gopolyline.ErrInvalidByte},
		{"delete character", "_p~iF\x7f", 5, gopolyline.ErrInvalidByte},
		{"unterminated last group", "_p~iF~ps|", 9, gopolyline.ErrUnterminatedSequence},
		{"latitude without longitude", "_p~iF", 5, nil},
		{"group longer than seven chunks", "~~~~~~~~?", 7, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.offset, decodeErr.Offset)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("reference vector", func(t *testing.T) {
		assert.Equal(t, referenceEncoded, Encode(referenceCoords))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", Encode(nil))
	})
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 50; n++ {
		coords := make([]domain.Coordinate, rng.Intn(40)+1)
		for i := range coords {
			coords[i] = domain.Coordinate{
				Lat: float64(rng.Intn(18000001)-9000000) / 1e5,
				Lon: float64(rng.Intn(36000001)-18000000) / 1e5,
			}
		}

		decoded, err := Decode(Encode(coords))
		require.NoError(t, err)
		assertCoordsEqual(t, coords, decoded)
	}
}
