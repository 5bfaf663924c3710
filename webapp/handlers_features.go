package webapp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/internal/utils"
	"github.com/mindmate-app/mindmate-client/journal"
	"github.com/mindmate-app/mindmate-client/users"
	"github.com/rs/zerolog/log"
)

func (s *Server) MoodLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		mood, err := strconv.Atoi(r.FormValue("mood"))
		if err != nil {
			s.notices.Error("Pick a mood between 1 and 5.")
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
			return
		}

		if _, err := s.moodLogs.Create(r.Context(), mood); err != nil {
			log.Err(err).Msg("Failed to record mood")
			s.notices.Error("Could not record your mood.")
		} else {
			s.notices.Success("Mood recorded.")
		}
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

func (s *Server) JournalNewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		draft := journal.NewEntry{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
		}
		if raw := r.FormValue("mood"); raw != "" {
			if mood, err := strconv.Atoi(raw); err == nil {
				draft.Mood = utils.Ptr(mood)
			}
		}
		if raw := r.FormValue("tags"); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					draft.Tags = append(draft.Tags, tag)
				}
			}
		}

		if _, err := s.journals.Create(r.Context(), draft); err != nil {
			log.Err(err).Msg("Failed to create journal entry")
			s.notices.Error("Could not save your entry.")
		} else {
			s.notices.Success("Entry saved.")
		}
		http.Redirect(w, r, RouteJournal, http.StatusSeeOther)
	}
}

func (s *Server) JournalDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid entry id", http.StatusBadRequest)
			return
		}

		if err := s.journals.Delete(r.Context(), id); err != nil {
			log.Err(err).Msg("Failed to delete journal entry")
			s.notices.Error("Could not delete the entry.")
		}
		http.Redirect(w, r, RouteJournal, http.StatusSeeOther)
	}
}

func (s *Server) ChatNewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := s.conversations.Create(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to create conversation")
			s.notices.Error("Could not start a conversation.")
			http.Redirect(w, r, RouteChat, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, RouteChat+"?conversation="+conv.ID.String(), http.StatusSeeOther)
	}
}

func (s *Server) ChatSendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		convID, err := uuid.Parse(r.FormValue("conversation_id"))
		if err != nil {
			http.Error(w, "Invalid conversation id", http.StatusBadRequest)
			return
		}

		if _, err := s.chat.Send(r.Context(), convID, r.FormValue("message")); err != nil {
			log.Err(err).Msg("Failed to send chat message")
			s.notices.Error("Could not send your message.")
		}
		http.Redirect(w, r, RouteChat+"?conversation="+convID.String(), http.StatusSeeOther)
	}
}

func (s *Server) ChatExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid conversation id", http.StatusBadRequest)
			return
		}

		pdf, err := s.chat.ExportPDF(r.Context(), id)
		if err != nil {
			log.Err(err).Msg("Failed to export conversation")
			s.notices.Error("Could not export the conversation.")
			http.Redirect(w, r, RouteChat, http.StatusSeeOther)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="conversation.pdf"`)
		_, _ = w.Write(pdf)
	}
}

func (s *Server) ProfileUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		update := users.ProfileUpdate{FirstName: r.FormValue("first_name")}
		if _, err := s.profiles.Update(r.Context(), update); err != nil {
			log.Err(err).Msg("Failed to update profile")
			s.notices.Error("Could not update your profile.")
		} else {
			s.notices.Success("Profile updated.")
		}
		http.Redirect(w, r, RouteProfile, http.StatusSeeOther)
	}
}
