// Package common contains shared constants and sentinel errors used across
// RecipeX server components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName is the standard metadata/header key accepted as an
// alternative carrier, in the "Bearer <token>" form.
const AuthorizationHeaderName = "authorization"

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

// DateTimeLayout is the wire format of measurement timestamps.
const DateTimeLayout = "2006-01-02 15:04:05"
