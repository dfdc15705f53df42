// Package remote talks to the devices the controller depends on: the metrics
// exporter, the companion computer and the smart plug driving the heater.
package remote

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrUnreachable is a network or transport failure.
	ErrUnreachable = errors.New("remote unreachable")
	// ErrMalformedResponse means the remote answered without the expected fields.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrMissingMetric means the exporter did not publish a required metric.
	ErrMissingMetric = errors.New("missing metric")
	// ErrParse means a metric value was not numeric.
	ErrParse = errors.New("metric parse error")
	// ErrProbe is a liveness probe failure that is not evidence of the host being off.
	ErrProbe = errors.New("liveness probe failed")
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// get performs a GET and returns the body. Any transport failure or non-2xx
// status is reported as ErrUnreachable, a body over maxBodyBytes as
// ErrMalformedResponse.
func get(req *http.Request, client *http.Client) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUnreachable, req.URL.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnreachable, req.URL.Redacted(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrUnreachable, req.URL.Redacted(), resp.StatusCode)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: GET %s: body exceeds %d bytes", ErrMalformedResponse, req.URL.Redacted(), maxBodyBytes)
	}
	return body, nil
}
