package webapp

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteLanding   = "/"
	RouteLogin     = "/login"
	RouteSignup    = "/signup"
	RouteResources = "/resources"

	// Protected pages
	RouteDashboard = "/dashboard"
	RouteJournal   = "/journal"
	RouteChat      = "/chat"
	RouteProfile   = "/profile"

	// Auth actions
	RouteAuthLogin  = "/auth/login"
	RouteAuthSignup = "/auth/signup"
	RouteAuthLogout = "/auth/logout"
	RouteAuthGoogle = "/auth/google"
	RouteCallback   = "/callback"
	RouteAuthLink   = "/auth/link-google"

	// Feature actions
	RouteMoodLog       = "/mood/log"
	RouteJournalNew    = "/journal/new"
	RouteJournalDelete = "/journal/{id}/delete"
	RouteChatSend      = "/chat/send"
	RouteChatNew       = "/chat/new"
	RouteChatExport    = "/chat/{id}/export"
	RouteProfileUpdate = "/profile/update"

	// Static assets
	RouteStaticCSS = "/css/{file}"
)
