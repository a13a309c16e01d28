package exchange

import (
	"encoding/json"
	"fmt"
)

// UpstreamError reports a response whose envelope carried a falsy
// result flag. The entire raw body is retained; no further
// classification of the upstream failure is attempted.
type UpstreamError struct {
	Body []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("exmo: upstream error: %s", e.Body)
}

// checkEnvelope inspects a response for the optional result flag.
// Responses without an object envelope, or without a result field,
// pass through untouched.
func checkEnvelope(body []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil // not an object, nothing to check
	}
	raw, ok := envelope["result"]
	if !ok {
		return nil
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	switch v := value.(type) {
	case nil:
		return &UpstreamError{Body: body}
	case bool:
		if !v {
			return &UpstreamError{Body: body}
		}
	case float64:
		if v == 0 {
			return &UpstreamError{Body: body}
		}
	case string:
		if v == "" {
			return &UpstreamError{Body: body}
		}
	}
	return nil
}
