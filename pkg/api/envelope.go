package api

import (
	"bytes"
	"encoding/json"
)

// Result is the uniform envelope every successful API call resolves to.
// Raw keeps the untouched response body for callers that need shapes the
// envelope does not model.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

// Decode unmarshals the envelope's data payload into v. Decoding an empty
// payload is a no-op.
func (r *Result) Decode(v any) error {
	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// envelopeBody is the recognized already-normalized response shape.
type envelopeBody struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// normalizeResponse unifies the backend's heterogeneous response shapes.
// The backend is not controlled by this project, so the branch order is a
// compatibility contract, not a style choice:
//
//  1. a JSON object already carrying success=true passes through unchanged
//  2. any other HTTP 200 with a body is wrapped as {success:true, data:body}
//  3. everything else (201/204, empty bodies) passes through with the raw
//     body and the status class deciding success
//
// Error statuses never reach this function; they are rejected upstream by
// the error normalizer.
func normalizeResponse(status int, body []byte) *Result {
	if isJSONObject(body) {
		var env envelopeBody
		if err := json.Unmarshal(body, &env); err == nil && env.Success != nil && *env.Success {
			return &Result{
				Success: true,
				Data:    env.Data,
				Message: env.Message,
				Raw:     body,
			}
		}
	}
	if status == 200 && len(body) > 0 {
		return &Result{Success: true, Data: body, Raw: body}
	}
	return &Result{
		Success: status >= 200 && status < 300,
		Data:    body,
		Raw:     body,
	}
}

// isJSONObject reports whether body starts a JSON object.
func isJSONObject(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
