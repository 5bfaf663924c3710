package webapp

import (
	"net/http"
	"net/url"

	"github.com/mindmate-app/mindmate-client/callback"
	"github.com/mindmate-app/mindmate-client/users"
	"github.com/rs/zerolog/log"
)

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		if err := s.sessions.Login(r.Context(), email, password); err != nil {
			// The failure notice is already queued; keep the typed email.
			http.Redirect(w, r, RouteLogin+"?email="+url.QueryEscape(email), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// SignupSubmissionHandler processes the registration form submission
func (s *Server) SignupSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		firstName := r.FormValue("first_name")

		retry := RouteSignup + "?email=" + url.QueryEscape(email) + "&first_name=" + url.QueryEscape(firstName)

		if err := users.ValidatePasswordStrength(password); err != nil {
			s.notices.Error(err.Error())
			http.Redirect(w, r, retry, http.StatusSeeOther)
			return
		}

		if err := s.sessions.Signup(r.Context(), email, password, firstName); err != nil {
			http.Redirect(w, r, retry, http.StatusSeeOther)
			return
		}

		// Registration does not sign the user in; they verify their email and
		// then log in.
		http.Redirect(w, r, RouteLogin+"?email="+url.QueryEscape(email), http.StatusSeeOther)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.Logout(r.Context()); err != nil {
			log.Err(err).Msg("Logout failed")
		}
		http.Redirect(w, r, RouteLanding, http.StatusSeeOther)
	}
}

// GoogleRedirectHandler asks the backend for the Google consent URL and sends
// the browser there.
func (s *Server) GoogleRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := s.sessions.SocialLogin(r.Context(), "google")
		if err != nil {
			log.Err(err).Msg("Failed to start Google login")
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// OAuthCallbackHandler receives the browser back from Google with the
// one-time authorization code.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")

		result, err := s.oauth.Exchange(r.Context(), code)
		if err != nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		switch result.Outcome {
		case callback.OutcomeSuccess:
			if err := s.sessions.GoogleLogin(r.Context(), result.AccessToken, result.RefreshToken); err != nil {
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)

		case callback.OutcomeRequiresLinking:
			s.pendingLinkLock.Lock()
			s.pendingLink = result
			s.pendingLinkLock.Unlock()
			s.renderLinkPrompt(w, result)

		default:
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		}
	}
}

// LinkPromptData contains data for rendering the account-linking prompt
type LinkPromptData struct {
	pageData
	Email  string
	Detail string
}

func (s *Server) renderLinkPrompt(w http.ResponseWriter, result *callback.ExchangeResult) {
	tmpl, err := ParseTemplate("link_google.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse link template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	data := LinkPromptData{
		pageData: s.newPageData(),
		Email:    result.Email,
		Detail:   result.Detail,
	}
	s.render(w, "link_google.html", tmpl, data)
}

// LinkGoogleHandler resolves the pending linking offer: the user either
// confirmed or cancelled on the prompt page.
func (s *Server) LinkGoogleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		s.pendingLinkLock.Lock()
		pending := s.pendingLink
		s.pendingLink = nil
		s.pendingLinkLock.Unlock()

		if pending == nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		if r.FormValue("decision") != "link" {
			s.notices.Error("Google account not linked.")
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		if err := s.oauth.Link(r.Context(), pending.Email, pending.PartialAccessToken); err != nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, RouteLogin+"?email="+url.QueryEscape(pending.Email), http.StatusSeeOther)
	}
}
