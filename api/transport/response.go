package transport

// Envelope wraps every API response so clients branch on a single success
// flag before reading the payload. Code carries the machine-readable error
// code, Message the human-readable detail.
type Envelope struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message interface{} `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data, meta interface{}) Envelope {
	return Envelope{Success: true, Data: data, Meta: meta}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, message, meta interface{}) Envelope {
	return Envelope{Code: code, Message: message, Meta: meta}
}
