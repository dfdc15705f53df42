package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Shelly Gen2 RPC methods.
const (
	methodGetStatus = "Shelly.GetStatus"
	methodSwitchSet = "Switch.Set"
)

// PlugClient switches the heater through a Shelly smart plug.
type PlugClient struct {
	baseURL  string
	switchID int
	client   *http.Client
}

// NewPlugClient expects the RPC base, e.g. "http://192.168.178.86/rpc/".
func NewPlugClient(baseURL string, switchID int, client *http.Client) *PlugClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &PlugClient{baseURL: baseURL, switchID: switchID, client: client}
}

// QueryPower returns the output state of the configured switch channel.
func (c *PlugClient) QueryPower(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+methodGetStatus, nil)
	if err != nil {
		return false, fmt.Errorf("%w: build request: %w", ErrUnreachable, err)
	}
	body, err := get(req, c.client)
	if err != nil {
		return false, err
	}
	return parseSwitchOutput(body, c.switchID)
}

// SetPower turns the switch on or off. The answer is not inspected; the next
// QueryPower confirms the change.
func (c *PlugClient) SetPower(ctx context.Context, on bool) error {
	q := url.Values{}
	q.Set("id", strconv.Itoa(c.switchID))
	q.Set("on", strconv.FormatBool(on))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+methodSwitchSet+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrUnreachable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: set switch:%d on=%t: %w", ErrUnreachable, c.switchID, on, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	return nil
}

// parseSwitchOutput reads {"switch:<id>": {"output": <bool>}} from a status document.
func parseSwitchOutput(body []byte, switchID int) (bool, error) {
	var status map[string]json.RawMessage
	if err := json.Unmarshal(body, &status); err != nil {
		return false, fmt.Errorf("%w: status is not a JSON object: %w", ErrMalformedResponse, err)
	}
	key := "switch:" + strconv.Itoa(switchID)
	raw, ok := status[key]
	if !ok {
		return false, fmt.Errorf("%w: %q missing", ErrMalformedResponse, key)
	}
	var sw struct {
		Output *bool `json:"output"`
	}
	if err := json.Unmarshal(raw, &sw); err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrMalformedResponse, key, err)
	}
	if sw.Output == nil {
		return false, fmt.Errorf("%w: %q.output missing", ErrMalformedResponse, key)
	}
	return *sw.Output, nil
}
