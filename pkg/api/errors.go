package api

import (
	"encoding/json"
)

// Backend-compatible fallback strings. The production backend reports its
// errors in Japanese; these must match what the existing UI expects.
const (
	apiErrorPrefix       = "API接続エラー: "
	connectFailedMessage = "サーバーに接続できません。ネットワーク接続を確認してください。"
)

// Error is the single failure shape every rejected call carries. Message is
// always non-empty and human-readable; when the backend supplied no
// structured message, one is synthesized from the transport error.
// HasStatus=false represents the "no HTTP status" cases (network failure,
// request never sent, client-side validation).
type Error struct {
	Message   string
	Status    int
	HasStatus bool
	Data      json.RawMessage
}

func (e *Error) Error() string { return e.Message }

// MarshalJSON renders the wire-compatible {success:false, message, status,
// data} object, with status and data explicitly null when absent.
func (e *Error) MarshalJSON() ([]byte, error) {
	var status any
	if e.HasStatus {
		status = e.Status
	}
	var data any
	if len(e.Data) > 0 {
		data = json.RawMessage(e.Data)
	}
	return json.Marshal(map[string]any{
		"success": false,
		"message": e.Message,
		"status":  status,
		"data":    data,
	})
}

// requestError covers failures before a request is sent: body marshaling,
// URL construction, client-side validation.
func requestError(err error) *Error {
	return &Error{Message: apiErrorPrefix + err.Error()}
}

// validationError covers client-side input validation. It never reaches the
// backend.
func validationError(message string) *Error {
	return &Error{Message: message}
}

// transportError covers a request that was sent but got no response
// (network failure or timeout).
func transportError() *Error {
	return &Error{Message: connectFailedMessage}
}

// errorBody is the structured backend error shape.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// responseError normalizes a non-2xx JSON response. The backend's own
// message wins; otherwise a statusText-derived fallback is synthesized.
func responseError(status int, statusText string, body []byte) *Error {
	e := &Error{Status: status, HasStatus: true, Data: body}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			e.Message = eb.Message
			return e
		}
		if eb.Error != "" {
			e.Message = eb.Error
			return e
		}
	}
	e.Message = apiErrorPrefix + statusText
	return e
}

// decodeBlobError handles errors on binary endpoints, where the error body
// arrives as a blob. The blob is read as text and parsed as JSON; only after
// that decode completes is the error constructed. A decodable message wins;
// an undecodable blob falls back to the statusText message with null data.
func decodeBlobError(status int, statusText string, body []byte) *Error {
	e := &Error{Status: status, HasStatus: true}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		e.Message = apiErrorPrefix + statusText
		return e
	}
	e.Data = body
	switch {
	case eb.Message != "":
		e.Message = eb.Message
	case eb.Error != "":
		e.Message = eb.Error
	default:
		e.Message = apiErrorPrefix + statusText
	}
	return e
}
