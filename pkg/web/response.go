// Package web defines common components for a web application.
package web

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Warning               string `json:"warning,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Warn wraps a given warning err and the unchanged data into json friendly response.
func Warn(err error, data any) Response {
	return Response{Warning: err.Error(), Data: data}
}
