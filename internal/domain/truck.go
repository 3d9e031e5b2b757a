package domain

import "math"

type TruckBodyType string

const (
	BodySattelzug  TruckBodyType = "SATTELZUG" // tractor unit for semi-trailers
	BodyGliederzug TruckBodyType = "GLIEDERZUG"
	BodySolo       TruckBodyType = "SOLO"
)

type TrailerType string

const (
	TrailerKoffer   TrailerType = "KOFFER"
	TrailerPlane    TrailerType = "PLANE"
	TrailerKuehler  TrailerType = "KUEHLER"
	TrailerTank     TrailerType = "TANK"
	TrailerTieflade TrailerType = "TIEFLADER"
)

// TruckSpecs - tractor dimensions in meters and tonnes
type TruckSpecs struct {
	Length        float64       `json:"length" bson:"length" validate:"gte=0"`
	Width         float64       `json:"width" bson:"width" validate:"gte=0"`
	Height        float64       `json:"height" bson:"height" validate:"gte=0"`
	Weight        float64       `json:"weight" bson:"weight" validate:"gte=0"`
	AxleLoad      float64       `json:"axle_load" bson:"axle_load" validate:"gte=0"`
	EmissionClass string        `json:"emission_class" bson:"emission_class"`
	BodyType      TruckBodyType `json:"body_type" bson:"body_type"`
}

type TrailerSpecs struct {
	Length   float64     `json:"length" bson:"length" validate:"gte=0"`
	Width    float64     `json:"width" bson:"width" validate:"gte=0"`
	Height   float64     `json:"height" bson:"height" validate:"gte=0"`
	Weight   float64     `json:"weight" bson:"weight" validate:"gte=0"`
	AxleLoad float64     `json:"axle_load" bson:"axle_load" validate:"gte=0"`
	Type     TrailerType `json:"type" bson:"type"`
}

// TruckProfile - tractor + trailer combination used to constrain routing
type TruckProfile struct {
	Tractor     TruckSpecs   `json:"tractor" bson:"tractor"`
	Trailer     TrailerSpecs `json:"trailer" bson:"trailer"`
	HasHazmat   bool         `json:"has_hazmat" bson:"has_hazmat"`
	HazmatClass string       `json:"hazmat_class,omitempty" bson:"hazmat_class,omitempty"`
}

// IsValid requires length, width, height and weight of both tractor and trailer to be positive
func (p TruckProfile) IsValid() bool {
	dims := [...]float64{
		p.Tractor.Length, p.Tractor.Width, p.Tractor.Height, p.Tractor.Weight,
		p.Trailer.Length, p.Trailer.Width, p.Trailer.Height, p.Trailer.Weight,
	}
	for _, d := range dims {
		if !(d > 0) {
			return false
		}
	}
	return true
}

func (p TruckProfile) TotalLength() float64 {
	return p.Tractor.Length + p.Trailer.Length
}

func (p TruckProfile) TotalWeight() float64 {
	return p.Tractor.Weight + p.Trailer.Weight
}

func (p TruckProfile) MaxHeight() float64 {
	return math.Max(p.Tractor.Height, p.Trailer.Height)
}

func (p TruckProfile) MaxWidth() float64 {
	return math.Max(p.Tractor.Width, p.Trailer.Width)
}

// DefaultTruckProfile - standard EU semi-trailer combination
func DefaultTruckProfile() TruckProfile {
	return TruckProfile{
		Tractor: TruckSpecs{
			Length:        16.5,
			Width:         2.55,
			Height:        4.0,
			Weight:        18.0,
			AxleLoad:      12.0,
			EmissionClass: "EURO 6",
			BodyType:      BodySattelzug,
		},
		Trailer: TrailerSpecs{
			Length:   13.6,
			Width:    2.55,
			Height:   4.0,
			Weight:   22.0,
			AxleLoad: 12.0,
			Type:     TrailerKoffer,
		},
	}
}

func LargeTruckProfile() TruckProfile {
	p := DefaultTruckProfile()
	p.Tractor.Length = 18.75
	p.Tractor.Weight = 20.0
	p.Tractor.BodyType = BodyGliederzug
	p.Trailer.Length = 15.65
	p.Trailer.Weight = 24.0
	return p
}
