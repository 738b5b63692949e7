package common

// SessionExpiredMessage is the sentinel message the backend places in an
// otherwise success-shaped response body when the session is no longer
// valid. The HTTP layer treats it exactly like a 401.
const SessionExpiredMessage = "Session expired, please login again"

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"
