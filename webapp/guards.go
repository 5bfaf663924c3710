package webapp

import "net/http"

// Route guards. Both read only the in-memory session state: no network calls,
// no token parsing, so a guard decision never blocks on the backend.

// PublicRoute redirects signed-in users to the dashboard; anonymous visitors
// pass through.
func (s *Server) PublicRoute(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state.SignedIn() {
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// ProtectedRoute redirects anonymous visitors to the login page; signed-in
// users pass through.
func (s *Server) ProtectedRoute(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.state.SignedIn() {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
