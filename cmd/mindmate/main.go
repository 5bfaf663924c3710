package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/mindmate-app/mindmate-client/authn"
	"github.com/mindmate-app/mindmate-client/callback"
	"github.com/mindmate-app/mindmate-client/chats"
	"github.com/mindmate-app/mindmate-client/conversations"
	"github.com/mindmate-app/mindmate-client/credentials"
	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/internal/config"
	"github.com/mindmate-app/mindmate-client/journal"
	"github.com/mindmate-app/mindmate-client/moods"
	"github.com/mindmate-app/mindmate-client/session"
	"github.com/mindmate-app/mindmate-client/users"
	"github.com/mindmate-app/mindmate-client/webapp"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	app, err := buildApp(c)
	if err != nil {
		return fmt.Errorf("buildApp: %w", err)
	}

	server := &http.Server{Addr: c.GetPort(), Handler: app}
	go listenAndServe(server)
	waitForStopSignal()
	returnError = shutdown(server)
	return returnError
}

func buildApp(c config.Config) (*webapp.Server, error) {
	creds, err := credentials.NewFileRepo(c.GetDataFolder(), c.GetCredentialsKey())
	if err != nil {
		return nil, fmt.Errorf("credentials.NewFileRepo: %w", err)
	}

	snapshots, err := session.NewFileSnapshotRepo(c.GetDataFolder())
	if err != nil {
		return nil, fmt.Errorf("session.NewFileSnapshotRepo: %w", err)
	}
	state := session.NewState(snapshots)

	// The redirect URI registered with the backend's OAuth configuration must
	// land on this app's callback route or Google logins dead-end.
	if cb, err := url.Parse(c.GetCallbackURL()); err != nil || cb.Path != webapp.RouteCallback {
		log.Printf("Warning: callback URL %q does not point at %s\n", c.GetCallbackURL(), webapp.RouteCallback)
	} else {
		log.Printf("OAuth callback registered at %s\n", c.GetCallbackURL())
	}

	api := httpclient.New(c.GetAPIBaseURL(), creds)

	notices := webapp.NewNoticeBoard()
	sessions := authn.NewService(api, creds, state, notices)
	oauth := callback.NewHandler(api, creds, sessions, notices)

	// Pick up the previous session, if any survived a restart.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sessions.Restore(ctx); err != nil {
		log.Printf("No session restored: %v\n", err)
	}

	return webapp.New(c, state, sessions, oauth, notices, webapp.Services{
		Profiles:      users.NewService(api, state),
		MoodLogs:      moods.NewService(api),
		Journals:      journal.NewService(api),
		Chat:          chats.NewService(api),
		Conversations: conversations.NewService(api),
	}), nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
