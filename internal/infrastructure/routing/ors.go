package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rotisserie/eris"
	"github.com/truckershub-backend/internal/domain"
	"go.uber.org/zap"
)

const (
	orsDirectionsPath = "/v2/directions/driving-hgv"
	orsRouteNotFound  = 2009
)

type orsClient struct {
	baseClient
	baseURL string
	apiKey  string
}

type orsRequest struct {
	Coordinates  [][2]float64 `json:"coordinates"`
	Instructions bool         `json:"instructions"`
	Language     string       `json:"language,omitempty"`
	Elevation    bool         `json:"elevation"`
	Options      *orsOptions  `json:"options,omitempty"`
}

type orsOptions struct {
	VehicleType   string            `json:"vehicle_type"`
	ProfileParams *orsProfileParams `json:"profile_params,omitempty"`
}

type orsProfileParams struct {
	Restrictions orsRestrictions `json:"restrictions"`
}

type orsRestrictions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Hazmat bool    `json:"hazmat,omitempty"`
}

type orsResponse struct {
	Routes []orsRoute `json:"routes"`
}

type orsRoute struct {
	Summary struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Ascent   float64 `json:"ascent"`
		Descent  float64 `json:"descent"`
	} `json:"summary"`
	Geometry string       `json:"geometry"`
	BBox     []float64    `json:"bbox"`
	Segments []orsSegment `json:"segments"`
}

type orsSegment struct {
	Steps []orsStep `json:"steps"`
}

type orsStep struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	Name        string  `json:"name"`
	WayPoints   []int   `json:"way_points"`
}

type orsError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// orsStepSigns maps ORS step types onto GraphHopper sign codes
var orsStepSigns = map[int]domain.InstructionSign{
	0:  domain.SignLeft,
	1:  domain.SignRight,
	2:  domain.SignSharpLeft,
	3:  domain.SignSharpRight,
	4:  domain.SignSlightLeft,
	5:  domain.SignSlightRight,
	6:  domain.SignContinue,
	7:  domain.SignRoundabout,
	8:  domain.SignRoundabout,
	9:  domain.SignUTurn,
	10: domain.SignFinish,
	11: domain.SignContinue,
	12: domain.SignKeepLeft,
	13: domain.SignKeepRight,
}

func (c *orsClient) Name() string { return ProviderORS }

func (c *orsClient) CalculateRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(c.body(req))
	if err != nil {
		return nil, eris.Wrap(err, "ors: encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orsDirectionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "ors: build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", c.apiKey)
	}

	c.logger.Debug("Calling OpenRouteService directions API", zap.Int("points", len(req.Points)))

	var resp orsResponse
	if err := c.do(httpReq, ProviderORS, &resp, orsNoRoute); err != nil {
		return nil, err
	}

	if len(resp.Routes) == 0 {
		return nil, eris.Wrap(domain.ErrNoRoute, "ors: empty routes")
	}

	return resp.Routes[0].toResult(), nil
}

func (c *orsClient) body(req domain.RouteRequest) orsRequest {
	coords := make([][2]float64, 0, len(req.Points))
	for _, p := range req.Points {
		coords = append(coords, [2]float64{p.Lon, p.Lat})
	}

	out := orsRequest{
		Coordinates:  coords,
		Instructions: true,
		Language:     c.localeFor(req),
		Options:      &orsOptions{VehicleType: "hgv"},
	}

	if req.Truck.IsValid() {
		out.Options.ProfileParams = &orsProfileParams{
			Restrictions: orsRestrictions{
				Length: req.Truck.TotalLength(),
				Width:  req.Truck.MaxWidth(),
				Height: req.Truck.MaxHeight(),
				Weight: req.Truck.TotalWeight(),
				Hazmat: req.Truck.HasHazmat,
			},
		}
	}
	return out
}

func orsNoRoute(status int, body []byte) error {
	var e orsError
	if json.Unmarshal(body, &e) == nil && e.Error.Code == orsRouteNotFound {
		return eris.Wrapf(domain.ErrNoRoute, "ors: %s", e.Error.Message)
	}
	return nil
}

func (r *orsRoute) toResult() *domain.RouteResult {
	var instructions []domain.TurnInstruction
	for _, seg := range r.Segments {
		for _, st := range seg.Steps {
			sign, ok := orsStepSigns[st.Type]
			if !ok {
				sign = domain.SignContinue
			}
			index := 0
			if len(st.WayPoints) > 0 {
				index = st.WayPoints[0]
			}
			instructions = append(instructions, domain.TurnInstruction{
				Distance:   st.Distance,
				Duration:   int64(st.Duration * 1000),
				Sign:       sign,
				Text:       st.Instruction,
				StreetName: st.Name,
				Index:      index,
			})
		}
	}
	if instructions == nil {
		instructions = []domain.TurnInstruction{}
	}

	var bbox []float64
	if len(r.BBox) == 4 {
		bbox = r.BBox
	}

	return &domain.RouteResult{
		DistanceMeters: r.Summary.Distance,
		DurationMillis: int64(r.Summary.Duration * 1000),
		Points:         r.Geometry,
		Instructions:   instructions,
		Ascent:         r.Summary.Ascent,
		Descent:        r.Summary.Descent,
		BBox:           bbox,
	}
}
