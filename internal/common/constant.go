// Package common holds constants and helpers shared by cpguide packages.
package common

const (
	// AuthorizationHeader carries the bearer token on outbound API requests.
	AuthorizationHeader = "Authorization"
	// RequestIDHeader tags every outbound API request for log correlation.
	RequestIDHeader = "X-Request-ID"

	BearerPrefix = "Bearer "
)
