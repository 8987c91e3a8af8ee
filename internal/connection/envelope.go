package connection

// Method identifies which access path produced an envelope.
type Method string

const (
	MethodSDK  Method = "sdk"
	MethodREST Method = "rest"
)

// Envelope is the standardized result of every connection call. Success
// implies Data is present and Error is empty; failure implies Error is
// populated. StatusCode is set whenever an HTTP status was observed.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Method     Method `json:"method"`
	StatusCode int    `json:"status_code,omitempty"`
}

func success(method Method, data any, statusCode int) Envelope {
	return Envelope{
		Success:    true,
		Data:       data,
		Method:     method,
		StatusCode: statusCode,
	}
}

func failure(method Method, message string, statusCode int) Envelope {
	return Envelope{
		Success:    false,
		Error:      message,
		Method:     method,
		StatusCode: statusCode,
	}
}
