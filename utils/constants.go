package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the default time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the default time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Aggregation constants
const (
	// HomeRandomBlogLimit caps the random blog sample on the landing payload
	HomeRandomBlogLimit = 3
)

// ContextKey is the type for request-scoped context values
type ContextKey string

// Context keys for request-scoped observability values
const (
	RequestIDKey ContextKey = "request_id"
	UserAgentKey ContextKey = "user_agent"
	IPAddressKey ContextKey = "ip_address"
	EndpointKey  ContextKey = "endpoint"
	TimeoutKey   ContextKey = "timeout"
)

// Permission codenames consumed by the ownership policy.
const (
	// PermViewAllMailings grants list-wide visibility over mailings
	PermViewAllMailings = "view_all_mailings"

	// PermSetMailingStatus mirrors the declared mailing permission; no
	// operation checks it (kept unenforced pending product clarification)
	PermSetMailingStatus = "set_mailing_status"
)
