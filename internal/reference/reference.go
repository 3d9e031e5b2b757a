// Package reference loads the static data the service ships with or imports
// from YAML: country driving rules and parking spot lists.
package reference

import (
	"bytes"
	_ "embed"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/geo"
)

//go:embed countries.yaml
var countriesYAML []byte

type countryFile struct {
	Countries []*domain.CountryInfo `yaml:"countries"`
}

// Countries returns the embedded country rules
func Countries() ([]*domain.CountryInfo, error) {
	return DecodeCountries(bytes.NewReader(countriesYAML))
}

// DecodeCountries parses a countries document and rejects unknown toll systems
// and codes that are not ISO 3166-1 alpha-2.
func DecodeCountries(r io.Reader) ([]*domain.CountryInfo, error) {
	var file countryFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, eris.Wrap(err, "decode countries")
	}

	seen := make(map[string]bool, len(file.Countries))
	for i, c := range file.Countries {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if len(c.Code) != 2 {
			return nil, eris.Errorf("country #%d: invalid code %q", i+1, c.Code)
		}
		if seen[c.Code] {
			return nil, eris.Errorf("country %s: duplicate entry", c.Code)
		}
		seen[c.Code] = true

		if c.TollSystem == "" {
			c.TollSystem = domain.TollNone
		}
		if !c.TollSystem.IsValid() {
			return nil, eris.Errorf("country %s: unknown toll system %q", c.Code, c.TollSystem)
		}
		if c.EmergencyNumbers.General == "" {
			c.EmergencyNumbers.General = "112"
		}
	}

	return file.Countries, nil
}

// spotRecord is one entry of a spot import file
type spotRecord struct {
	Name          string   `yaml:"name"`
	Address       string   `yaml:"address"`
	Country       string   `yaml:"country"`
	Description   string   `yaml:"description"`
	Lat           float64  `yaml:"lat"`
	Lon           float64  `yaml:"lon"`
	Category      string   `yaml:"category"`
	Facilities    []string `yaml:"facilities"`
	IsPaid        bool     `yaml:"is_paid"`
	PricePerNight float64  `yaml:"price_per_night"`
	TruckCapacity int      `yaml:"truck_capacity"`
}

type spotFile struct {
	Spots []spotRecord `yaml:"spots"`
}

// DecodeSpots parses a spot import file into new spots without IDs.
// Facilities are listed by name: toilet, shower, restaurant, shop, wifi, fuel.
func DecodeSpots(r io.Reader) ([]*domain.ParkingSpot, error) {
	var file spotFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, eris.Wrap(err, "decode spots")
	}

	spots := make([]*domain.ParkingSpot, 0, len(file.Spots))
	for i, rec := range file.Spots {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, eris.Errorf("spot #%d: name is required", i+1)
		}
		location := domain.Coordinate{Lat: rec.Lat, Lon: rec.Lon}
		if !geo.ValidateCoordinates(location) {
			return nil, eris.Errorf("spot %q: coordinates out of range", rec.Name)
		}

		spot := domain.NewParkingSpot(rec.Name, location, domain.ParkingCategory(strings.ToUpper(rec.Category)))
		spot.Address = rec.Address
		spot.Description = rec.Description
		if rec.Country != "" {
			spot.Country = strings.ToUpper(rec.Country)
		}
		spot.IsPaid = rec.IsPaid
		spot.PricePerNight = rec.PricePerNight
		spot.TruckCapacity = rec.TruckCapacity

		for _, f := range rec.Facilities {
			if err := setFacility(&spot.Facilities, f); err != nil {
				return nil, eris.Wrapf(err, "spot %q", rec.Name)
			}
		}

		spots = append(spots, spot)
	}

	return spots, nil
}

func setFacility(f *domain.Facilities, name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toilet":
		f.Toilet = true
	case "shower":
		f.Shower = true
	case "restaurant":
		f.Restaurant = true
	case "shop":
		f.Shop = true
	case "wifi":
		f.Wifi = true
	case "fuel":
		f.Fuel = true
	default:
		return eris.Errorf("unknown facility %q", name)
	}
	return nil
}
