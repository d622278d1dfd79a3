package oracle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// ErrMalformedResponse is returned when a reply cannot be decoded into the
// expected shape, even after stripping code fences.
var ErrMalformedResponse = errors.New("malformed oracle response")

var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// stripFences removes Markdown code fences around a JSON reply.
func stripFences(s string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(s, ""))
}

// decodeJSON parses raw into v. On failure it strips code fences and
// parses once more.
func decodeJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// sceneEnvelope holds both possible branches; only one is expected.
type sceneEnvelope struct {
	SuccessScene json.RawMessage `json:"successScene"`
	FailureScene json.RawMessage `json:"failureScene"`
}

// branch decodes the requested branch, accepting an object or a
// single-element array.
func (e *sceneEnvelope) branch(success bool) (*world.SceneDelta, error) {
	raw, name := e.FailureScene, "failureScene"
	if success {
		raw, name = e.SuccessScene, "successScene"
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, name)
	}

	if raw[0] == '[' {
		var list []world.SceneDelta
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, name, err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: empty %s", ErrMalformedResponse, name)
		}
		return &list[0], nil
	}

	var delta world.SceneDelta
	if err := json.Unmarshal(raw, &delta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, name, err)
	}
	return &delta, nil
}
