package connection

import "context"

// KeyInfo describes the loaded credential without exposing it.
type KeyInfo struct {
	Length       int    `json:"length"`
	Prefix       string `json:"prefix"`
	SDKAvailable bool   `json:"sdk_client_available"`
}

// KeyInfo reports the API key length, a redacted prefix, and whether the
// SDK path is usable.
func (c *Connection) KeyInfo() KeyInfo {
	prefix := c.apiKey
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}

	return KeyInfo{
		Length:       len(c.apiKey),
		Prefix:       prefix + "...",
		SDKAvailable: c.sdk != nil,
	}
}

// ProbeResult holds one named leg of a connection probe.
type ProbeResult struct {
	Name     string
	Envelope Envelope
}

// Probe exercises every access path against both resources and reports the
// envelopes in a fixed order. Failures are recorded, not returned.
func (c *Connection) Probe(ctx context.Context) []ProbeResult {
	return []ProbeResult{
		{Name: "teams_sdk", Envelope: c.ListTeamsSDK(ctx)},
		{Name: "teams_rest", Envelope: c.ListTeamsREST(ctx)},
		{Name: "meetings_sdk", Envelope: c.ListMeetingsSDK(ctx, nil)},
		{Name: "meetings_rest", Envelope: c.ListMeetingsREST(ctx, nil)},
	}
}
