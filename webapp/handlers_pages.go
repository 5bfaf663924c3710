package webapp

import (
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/chats"
	"github.com/mindmate-app/mindmate-client/conversations"
	"github.com/mindmate-app/mindmate-client/journal"
	"github.com/mindmate-app/mindmate-client/moods"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// pageData is the template model shared by every page.
type pageData struct {
	AppName string
	Notices []Notice
}

func (s *Server) newPageData() pageData {
	return pageData{
		AppName: s.config.GetAppName(),
		Notices: s.notices.Drain(),
	}
}

func (s *Server) render(w http.ResponseWriter, tmplName string, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", tmplName).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) LandingPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("landing.html")
	if err != nil {
		panic("Failed to parse landing template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "landing.html", tmpl, s.newPageData())
	}
}

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	pageData
	Email string // Preserve email on error
}

func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			pageData: s.newPageData(),
			Email:    r.URL.Query().Get("email"),
		}
		s.render(w, "login.html", tmpl, data)
	}
}

// SignupPageData contains data for rendering the signup page
type SignupPageData struct {
	pageData
	Email     string
	FirstName string
}

func (s *Server) SignupPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("signup.html")
	if err != nil {
		panic("Failed to parse signup template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := SignupPageData{
			pageData:  s.newPageData(),
			Email:     r.URL.Query().Get("email"),
			FirstName: r.URL.Query().Get("first_name"),
		}
		s.render(w, "signup.html", tmpl, data)
	}
}

func (s *Server) ResourcesPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("resources.html")
	if err != nil {
		panic("Failed to parse resources template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "resources.html", tmpl, s.newPageData())
	}
}

// DashboardPageData contains data for rendering the dashboard
type DashboardPageData struct {
	pageData
	FirstName  string
	LatestMood *moods.Log
	MoodLogs   []moods.Log
	MoodScale  []int
}

func (s *Server) DashboardPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := DashboardPageData{
			pageData:  s.newPageData(),
			MoodScale: []int{1, 2, 3, 4, 5},
		}
		if user := s.state.User(); user != nil {
			data.FirstName = user.FirstName
		}

		latest, err := s.moodLogs.Latest(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to fetch latest mood log")
		}
		data.LatestMood = latest

		logs, err := s.moodLogs.All(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to fetch mood logs")
		}
		data.MoodLogs = logs

		s.render(w, "dashboard.html", tmpl, data)
	}
}

// JournalPageData contains data for rendering the journal page
type JournalPageData struct {
	pageData
	Entries []journal.Entry
}

func (s *Server) JournalPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("journal.html")
	if err != nil {
		panic("Failed to parse journal template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.journals.All(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to fetch journal entries")
			s.notices.Error("Could not load your journal entries.")
		}
		data := JournalPageData{
			pageData: s.newPageData(),
			Entries:  entries,
		}
		s.render(w, "journal.html", tmpl, data)
	}
}

// ChatPageData contains data for rendering the chat page
type ChatPageData struct {
	pageData
	Conversations []conversations.Conversation
	Current       *conversations.Conversation
	Messages      []chats.Message
}

func (s *Server) ChatPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("chat.html")
	if err != nil {
		panic("Failed to parse chat template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		convs, err := s.conversations.List(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to fetch conversations")
			s.notices.Error("Could not load your conversations.")
		}

		data := ChatPageData{
			Conversations: convs,
		}

		if raw := r.URL.Query().Get("conversation"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				for i := range convs {
					if convs[i].ID == id {
						data.Current = &convs[i]
						break
					}
				}
			}
		}
		if data.Current == nil && len(convs) > 0 {
			data.Current = &convs[0]
		}

		if data.Current != nil {
			messages, err := s.chat.Messages(r.Context(), data.Current.ID)
			if err != nil {
				log.Err(err).Msg("Failed to fetch conversation messages")
			}
			data.Messages = messages
		}

		data.pageData = s.newPageData()
		s.render(w, "chat.html", tmpl, data)
	}
}

// ProfilePageData contains data for rendering the profile page
type ProfilePageData struct {
	pageData
	Email      string
	FirstName  string
	IsVerified bool
}

func (s *Server) ProfilePageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("profile.html")
	if err != nil {
		panic("Failed to parse profile template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := ProfilePageData{pageData: s.newPageData()}
		if user := s.state.User(); user != nil {
			data.Email = user.Email
			data.FirstName = user.FirstName
			data.IsVerified = user.IsVerified
		}
		s.render(w, "profile.html", tmpl, data)
	}
}
