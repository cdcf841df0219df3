package response

// Envelope is the response body shared by the JSON APIs.
// Use OK / OKMessage / Fail to construct instances.
type Envelope[T any] struct {
	Success bool `json:"success"`
	// Error is a short caller-facing error summary; empty on success.
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// OK returns a successful response with data.
func OK[T any](data T) *Envelope[T] {
	return &Envelope[T]{Success: true, Data: data}
}

// OKMessage returns a successful response with a message and data.
func OKMessage[T any](message string, data T) *Envelope[T] {
	return &Envelope[T]{Success: true, Message: message, Data: data}
}

// Fail returns an error response. message may repeat errText when there is
// nothing more specific to say.
func Fail(errText, message string) *Envelope[any] {
	return &Envelope[any]{Success: false, Error: errText, Message: message}
}
