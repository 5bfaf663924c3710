package webapp

func (s *Server) initRoutes() {
	// Public pages: signed-in users are bounced to the dashboard.
	s.RegisterRouteFunc("GET "+RouteLanding, ChainMiddleware(s.LandingPageHandler(), s.PageMiddleware(s.PublicRoute)...))
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware(s.PublicRoute)...))
	s.RegisterRouteFunc("GET "+RouteSignup, ChainMiddleware(s.SignupPageHandler(), s.PageMiddleware(s.PublicRoute)...))
	s.RegisterRouteFunc("GET "+RouteResources, ChainMiddleware(s.ResourcesPageHandler(), s.PageMiddleware()...))

	// Auth actions
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthSignup, ChainMiddleware(s.SignupSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthGoogle, ChainMiddleware(s.GoogleRedirectHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLink, ChainMiddleware(s.LinkGoogleHandler(), s.PageMiddleware()...))

	// Protected pages: anonymous visitors are bounced to the login page.
	s.RegisterRouteFunc("GET "+RouteDashboard, ChainMiddleware(s.DashboardPageHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("GET "+RouteJournal, ChainMiddleware(s.JournalPageHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("GET "+RouteChat, ChainMiddleware(s.ChatPageHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("GET "+RouteProfile, ChainMiddleware(s.ProfilePageHandler(), s.PageMiddleware(s.ProtectedRoute)...))

	// Feature actions, all protected
	s.RegisterRouteFunc("POST "+RouteMoodLog, ChainMiddleware(s.MoodLogHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("POST "+RouteJournalNew, ChainMiddleware(s.JournalNewHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("POST "+RouteJournalDelete, ChainMiddleware(s.JournalDeleteHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("POST "+RouteChatSend, ChainMiddleware(s.ChatSendHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("POST "+RouteChatNew, ChainMiddleware(s.ChatNewHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("GET "+RouteChatExport, ChainMiddleware(s.ChatExportHandler(), s.PageMiddleware(s.ProtectedRoute)...))
	s.RegisterRouteFunc("POST "+RouteProfileUpdate, ChainMiddleware(s.ProfileUpdateHandler(), s.PageMiddleware(s.ProtectedRoute)...))

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStaticCSS, FileServerHandler())
}
