package models

// Envelope is the loose response shape the backend uses for operations whose
// body callers do not otherwise interpret (send-otp, register). The client
// also synthesises envelopes for empty and non-JSON success bodies.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// EnvelopeFrom adapts an already-decoded JSON body. Objects are mapped
// field by field; any other value ends up in Data with Success set.
func EnvelopeFrom(v any) Envelope {
	switch body := v.(type) {
	case Envelope:
		return body
	case map[string]any:
		env := Envelope{Success: true, Data: body}
		if s, ok := body["success"].(bool); ok {
			env.Success = s
		}
		if m, ok := body["message"].(string); ok {
			env.Message = m
		}
		if d, ok := body["data"]; ok {
			env.Data = d
		}
		return env
	default:
		return Envelope{Success: true, Data: v}
	}
}
