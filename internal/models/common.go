package models

// Error carries the stable message key on failures so clients can match on
// it regardless of the locale Message was rendered in.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// RateLimitResponse is the wire shape of a 429, distinct from the business
// error envelope so clients can machine-read the retry hint.
type RateLimitResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
