package common

const (
	// AccessTokenHeaderName is the gRPC metadata key used to carry the
	// session token on inbound and outbound calls.
	AccessTokenHeaderName = "access_token"

	// APIKeyHeaderName carries the public API key of the collection endpoint.
	APIKeyHeaderName = "apikey"

	// SessionCookieName is the HttpOnly cookie holding the session token
	// issued to browsers.
	SessionCookieName = "realty_session"

	// TraceIDHeaderName is echoed back on every HTTP response.
	TraceIDHeaderName = "X-Trace-ID"
)
