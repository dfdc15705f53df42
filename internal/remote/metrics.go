package remote

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"heatman/internal/models"
)

// Metric names consumed from the exporter.
const (
	MetricTemperature = "temperature"
	MetricCO2         = "co2"
)

// MetricGateway reads temperature and CO2 from a text exposition endpoint.
type MetricGateway struct {
	url    string
	client *http.Client
}

func NewMetricGateway(url string, client *http.Client) *MetricGateway {
	return &MetricGateway{url: url, client: client}
}

// FetchReadings fetches the exporter page once. There is no retry.
func (g *MetricGateway) FetchReadings(ctx context.Context) (models.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return models.Reading{}, fmt.Errorf("%w: build request: %w", ErrUnreachable, err)
	}
	body, err := get(req, g.client)
	if err != nil {
		return models.Reading{}, err
	}
	return ReadingFromExposition(ParseExposition(body))
}

// ParseExposition turns a "name value" per line page into a map. Comment lines
// and lines that do not have exactly two fields are dropped. Later duplicates win.
// Lines have no length limit.
func ParseExposition(body []byte) map[string]string {
	out := make(map[string]string)
	for _, raw := range bytes.Split(body, []byte("\n")) {
		if bytes.HasPrefix(raw, []byte("#")) {
			continue
		}
		fields := strings.Fields(string(raw))
		if len(fields) != 2 {
			continue
		}
		out[fields[0]] = fields[1]
	}
	return out
}

// ReadingFromExposition extracts the reading. NaN and infinite values are parse
// errors. CO2 is truncated to an integer, saturating at the int32 range.
func ReadingFromExposition(m map[string]string) (models.Reading, error) {
	tempStr, ok := m[MetricTemperature]
	if !ok {
		return models.Reading{}, fmt.Errorf("%w: %s", ErrMissingMetric, MetricTemperature)
	}
	co2Str, ok := m[MetricCO2]
	if !ok {
		return models.Reading{}, fmt.Errorf("%w: %s", ErrMissingMetric, MetricCO2)
	}

	temp, err := parseFinite(MetricTemperature, tempStr)
	if err != nil {
		return models.Reading{}, err
	}
	co2, err := parseFinite(MetricCO2, co2Str)
	if err != nil {
		return models.Reading{}, err
	}
	return models.Reading{Temperature: temp, CO2: saturateInt32(co2)}, nil
}

func parseFinite(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrParse, name, s)
	}
	return v, nil
}

func saturateInt32(v float64) int {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int(v)
	}
}
