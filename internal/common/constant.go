// Package common contains shared constants and sentinel errors used across
// gophfeed components.
package common

// AuthorizationHeaderName is the HTTP header carrying request credentials.
const AuthorizationHeaderName = "Authorization"

// BearerScheme and BasicScheme are the accepted Authorization schemes.
const (
	BearerScheme = "Bearer"
	BasicScheme  = "Basic"
)

// RequestIDHeaderName is echoed back on every response.
const RequestIDHeaderName = "X-Request-ID"

// CommentPreviewLimit is how many of the newest comments a feed entry embeds.
const CommentPreviewLimit = 3
