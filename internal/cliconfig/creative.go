package cliconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// creativePayload is the JSON shape of the ad parameter blob the harness
// hands to InitAd.
type creativePayload struct {
	VideoURL        string   `json:"videoUrl"`
	ClickThroughURL string   `json:"clickThroughUrl,omitempty"`
	SkippableAfter  *float64 `json:"skippableAfter,omitempty"`
}

// CreativeParameters returns the JSON creative parameter blob for the
// session: the contents of CreativeFile when set, otherwise a blob
// assembled from the inline config fields.
func (c *Config) CreativeParameters() (string, error) {
	if c.CreativeFile != "" {
		b, err := os.ReadFile(c.CreativeFile)
		if err != nil {
			return "", fmt.Errorf("read creative file: %w", err)
		}
		return string(b), nil
	}

	p := creativePayload{
		VideoURL:        c.VideoURL,
		ClickThroughURL: c.ClickThroughURL,
	}
	if c.SkippableAfter > 0 {
		after := c.SkippableAfter
		p.SkippableAfter = &after
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode creative parameters: %w", err)
	}
	return string(b), nil
}
