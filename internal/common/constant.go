package common

import "time"

// SessionCookieName is the cookie that carries the signed auth token.
const SessionCookieName = "auth-token"

// SessionTTL is the lifetime of both the token and the session cookie.
const SessionTTL = 7 * 24 * time.Hour
