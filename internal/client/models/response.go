package models

import "github.com/goccy/go-json"

// APIResponse is the envelope every backend endpoint answers with:
// {success, data, message, status, error}. Data is kept raw so callers can
// decode it into the shape they expect.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Error   string          `json:"error"`
}

// DecodeData unmarshals the envelope's data field into v.
func (r *APIResponse) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}
