package domain

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

var (
	// ErrNoRoute - the provider answered but found no path between the points
	ErrNoRoute = eris.New("no route between the requested points")

	// ErrProviderUnavailable - transport failure, non-2xx answer or unreadable body
	ErrProviderUnavailable = eris.New("routing provider unavailable")
)

// InstructionSign - GraphHopper style turn codes
type InstructionSign int

const (
	SignUTurn       InstructionSign = -98
	SignKeepLeft    InstructionSign = -7
	SignSharpLeft   InstructionSign = -3
	SignLeft        InstructionSign = -2
	SignSlightLeft  InstructionSign = -1
	SignContinue    InstructionSign = 0
	SignSlightRight InstructionSign = 1
	SignRight       InstructionSign = 2
	SignSharpRight  InstructionSign = 3
	SignFinish      InstructionSign = 4
	SignViaReached  InstructionSign = 5
	SignRoundabout  InstructionSign = 6
	SignKeepRight   InstructionSign = 7
)

type TurnInstruction struct {
	Distance   float64         `json:"distance" bson:"distance"` // meters
	Duration   int64           `json:"duration" bson:"duration"` // milliseconds
	Sign       InstructionSign `json:"sign" bson:"sign"`
	Text       string          `json:"text" bson:"text"`
	StreetName string          `json:"street_name,omitempty" bson:"street_name,omitempty"`
	Index      int             `json:"index" bson:"index"` // into the decoded point sequence
}

type RoutePoint struct {
	Name        string     `json:"name" bson:"name"`
	Location    Coordinate `json:"location" bson:"location"`
	Address     string     `json:"address,omitempty" bson:"address,omitempty"`
	IsTruckStop bool       `json:"is_truck_stop" bson:"is_truck_stop"`
}

type RouteDetails struct {
	DistanceMeters  float64           `json:"distance_meters" bson:"distance_meters"`
	DurationSeconds int64             `json:"duration_seconds" bson:"duration_seconds"`
	Points          string            `json:"points" bson:"points"` // encoded polyline
	Instructions    []TurnInstruction `json:"instructions" bson:"instructions"`
	Ascent          float64           `json:"ascent" bson:"ascent"`
	Descent         float64           `json:"descent" bson:"descent"`
}

type Route struct {
	ID                string       `json:"id" bson:"_id"`
	UserID            string       `json:"user_id" bson:"user_id"`
	Name              string       `json:"name" bson:"name"`
	StartPoint        RoutePoint   `json:"start_point" bson:"start_point"`
	EndPoint          RoutePoint   `json:"end_point" bson:"end_point"`
	Waypoints         []RoutePoint `json:"waypoints" bson:"waypoints"`
	TruckProfile      TruckProfile `json:"truck_profile" bson:"truck_profile"`
	Details           RouteDetails `json:"details" bson:"details"`
	IsSaved           bool         `json:"is_saved" bson:"is_saved"`
	EstimatedFuelCost float64      `json:"estimated_fuel_cost" bson:"estimated_fuel_cost"`
	EstimatedTollCost float64      `json:"estimated_toll_cost" bson:"estimated_toll_cost"`
	CreatedAt         time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" bson:"updated_at"`
	LastUsed          *time.Time   `json:"last_used,omitempty" bson:"last_used,omitempty"`
}

// FormattedDistance - "123.4 km"
func (r *Route) FormattedDistance() string {
	return fmt.Sprintf("%.1f km", r.Details.DistanceMeters/1000)
}

// FormattedDuration - "5h 12min", or "42 min" under one hour
func (r *Route) FormattedDuration() string {
	hours := r.Details.DurationSeconds / 3600
	minutes := (r.Details.DurationSeconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%d min", minutes)
}

// RouteRequest - what a routing provider is asked for.
// Points holds start, waypoints and end in travel order.
type RouteRequest struct {
	Points  []Coordinate
	Profile string
	Locale  string
	Truck   TruckProfile
}

func (r RouteRequest) Start() Coordinate { return r.Points[0] }

func (r RouteRequest) End() Coordinate { return r.Points[len(r.Points)-1] }

// RouteResult - the best path a provider returned
type RouteResult struct {
	DistanceMeters float64           `json:"distance_meters"`
	DurationMillis int64             `json:"duration_millis"`
	Points         string            `json:"points"`
	Instructions   []TurnInstruction `json:"instructions"`
	Ascent         float64           `json:"ascent"`
	Descent        float64           `json:"descent"`
	BBox           []float64         `json:"bbox,omitempty"`
}
