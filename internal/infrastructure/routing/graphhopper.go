package routing

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/truckershub-backend/internal/domain"
	"go.uber.org/zap"
)

type graphHopperClient struct {
	baseClient
	baseURL string
	apiKey  string
}

type ghResponse struct {
	Message string   `json:"message"`
	Paths   []ghPath `json:"paths"`
}

type ghPath struct {
	Distance     float64         `json:"distance"`
	Time         int64           `json:"time"`
	Points       string          `json:"points"`
	Ascend       float64         `json:"ascend"`
	Descend      float64         `json:"descend"`
	BBox         []float64       `json:"bbox"`
	Instructions []ghInstruction `json:"instructions"`
}

type ghInstruction struct {
	Distance   float64 `json:"distance"`
	Time       int64   `json:"time"`
	Sign       int     `json:"sign"`
	Text       string  `json:"text"`
	StreetName string  `json:"street_name"`
	Interval   []int   `json:"interval"`
}

func (c *graphHopperClient) Name() string { return ProviderGraphHopper }

func (c *graphHopperClient) CalculateRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/route?" + c.query(req).Encode()

	c.logger.Debug("Calling GraphHopper route API",
		zap.Int("points", len(req.Points)),
		zap.String("profile", c.profileFor(req)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "graphhopper: build request")
	}

	var resp ghResponse
	if err := c.do(httpReq, ProviderGraphHopper, &resp, ghNoRoute); err != nil {
		return nil, err
	}

	if len(resp.Paths) == 0 {
		return nil, eris.Wrapf(domain.ErrNoRoute, "graphhopper: %s", resp.Message)
	}

	return resp.Paths[0].toResult(), nil
}

func (c *graphHopperClient) query(req domain.RouteRequest) url.Values {
	q := url.Values{}
	for _, p := range req.Points {
		q.Add("point", formatFloat(p.Lat)+","+formatFloat(p.Lon))
	}
	q.Set("profile", c.profileFor(req))
	q.Set("locale", c.localeFor(req))
	q.Set("calc_points", "true")
	q.Set("instructions", "true")
	q.Set("points_encoded", "true")

	truck := req.Truck
	if truck.IsValid() {
		q.Set("vehicle_length", formatFloat(truck.TotalLength()))
		q.Set("vehicle_width", formatFloat(truck.MaxWidth()))
		q.Set("vehicle_height", formatFloat(truck.MaxHeight()))
		q.Set("vehicle_weight", formatFloat(truck.TotalWeight()))
	}
	if truck.HasHazmat {
		q.Set("hazmat", "true")
	}

	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	return q
}

// ghNoRoute recognises GraphHopper's 400 answer for unconnected points
func ghNoRoute(status int, body []byte) error {
	if status == http.StatusBadRequest && strings.Contains(string(body), "Connection between locations not found") {
		return eris.Wrap(domain.ErrNoRoute, "graphhopper: points not connected")
	}
	return nil
}

func (p *ghPath) toResult() *domain.RouteResult {
	instructions := make([]domain.TurnInstruction, 0, len(p.Instructions))
	for _, in := range p.Instructions {
		index := 0
		if len(in.Interval) > 0 {
			index = in.Interval[0]
		}
		instructions = append(instructions, domain.TurnInstruction{
			Distance:   in.Distance,
			Duration:   in.Time,
			Sign:       domain.InstructionSign(in.Sign),
			Text:       in.Text,
			StreetName: in.StreetName,
			Index:      index,
		})
	}

	var bbox []float64
	if len(p.BBox) == 4 {
		bbox = p.BBox
	}

	return &domain.RouteResult{
		DistanceMeters: p.Distance,
		DurationMillis: p.Time,
		Points:         p.Points,
		Instructions:   instructions,
		Ascent:         p.Ascend,
		Descent:        p.Descend,
		BBox:           bbox,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
