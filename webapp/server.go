// Package webapp serves the MindMate pages: public landing/login/signup routes,
// protected dashboard/journal/chat/profile routes, and the OAuth callback. Route
// access is decided purely from the in-memory session state.
package webapp

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/mindmate-app/mindmate-client/authn"
	"github.com/mindmate-app/mindmate-client/callback"
	"github.com/mindmate-app/mindmate-client/chats"
	"github.com/mindmate-app/mindmate-client/conversations"
	"github.com/mindmate-app/mindmate-client/internal/config"
	"github.com/mindmate-app/mindmate-client/journal"
	"github.com/mindmate-app/mindmate-client/moods"
	"github.com/mindmate-app/mindmate-client/session"
	"github.com/mindmate-app/mindmate-client/users"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string

	config   config.Config
	state    *session.State
	sessions *authn.Service
	oauth    *callback.Handler
	notices  *NoticeBoard

	profiles      *users.Service
	moodLogs      *moods.Service
	journals      *journal.Service
	chat          *chats.Service
	conversations *conversations.Service

	// pendingLink holds the linking offer from the last OAuth callback until
	// the user confirms or declines it.
	pendingLinkLock sync.Mutex
	pendingLink     *callback.ExchangeResult
}

// Services groups the backend bindings the pages call into.
type Services struct {
	Profiles      *users.Service
	MoodLogs      *moods.Service
	Journals      *journal.Service
	Chat          *chats.Service
	Conversations *conversations.Service
}

func New(cfg config.Config, state *session.State, sessions *authn.Service, oauth *callback.Handler, notices *NoticeBoard, svcs Services) *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		config:        cfg,
		state:         state,
		sessions:      sessions,
		oauth:         oauth,
		notices:       notices,
		profiles:      svcs.Profiles,
		moodLogs:      svcs.MoodLogs,
		journals:      svcs.Journals,
		chat:          svcs.Chat,
		conversations: svcs.Conversations,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
