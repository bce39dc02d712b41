package http

import "net/http"

// SessionCookie identifies the dashboard session. Sessions exist so that
// concurrent users each see their own imported dataset; there is no login.
const SessionCookie = "insightflow_session"

// DefaultSession is used when no session cookie is present.
const DefaultSession = "default"

// sessionID resolves the caller's session from the request cookie.
func sessionID(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return DefaultSession
}
