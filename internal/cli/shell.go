package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/set-night/zeno/internal/config"
	"github.com/set-night/zeno/internal/domain"
	"github.com/set-night/zeno/internal/service"
	"github.com/set-night/zeno/internal/ui"
)

// Shell is the interactive surface: it routes between the login/signup,
// chat, history, and profile views, gated on whether a credential is
// present. Views never run in parallel; every action completes before the
// next prompt.
type Shell struct {
	term    *ui.Terminal
	auth    *service.AuthFlow
	chat    *service.ChatSession
	history *service.HistoryManager
	profile *service.ProfileManager

	// redirectDelay is the pause between a successful registration and the
	// switch back to the login view.
	redirectDelay time.Duration

	// rendered counts the chat messages already on screen, so each
	// transcript change only paints what is new or changed.
	rendered int
}

func NewShell(term *ui.Terminal, auth *service.AuthFlow, chat *service.ChatSession, history *service.HistoryManager, profile *service.ProfileManager) *Shell {
	s := &Shell{
		term:          term,
		auth:          auth,
		chat:          chat,
		history:       history,
		profile:       profile,
		redirectDelay: config.RegisterRedirectDelay,
	}
	chat.OnChange = s.renderChatUpdate
	return s
}

// renderChatUpdate runs after every transcript mutation and keeps the newest
// state on screen: new messages are appended to the output, and an in-place
// change (a message marked undelivered after a failed send) repaints the
// newest entry.
func (s *Shell) renderChatUpdate() {
	transcript := s.chat.Transcript()
	n := len(transcript)
	switch {
	case n == 0 || n < s.rendered:
		// Transcript replaced wholesale by a (re)load.
		s.term.Println(ui.RenderTranscript(transcript))
	case n == s.rendered:
		s.term.Println(ui.FormatMessage(transcript[n-1]))
	default:
		for _, m := range transcript[s.rendered:] {
			s.term.Println(ui.FormatMessage(m))
		}
	}
	s.rendered = n
}

// Run drives the view loop until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		var err error
		if s.auth.Authenticated() {
			err = s.chatView(ctx)
		} else {
			err = s.authView(ctx)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

var errQuit = errors.New("quit")

func (s *Shell) authView(ctx context.Context) error {
	showLogin := true
	for !s.auth.Authenticated() {
		if showLogin {
			s.term.Println("-- Login to Zeno --  (type /signup to create an account, /quit to exit)")
			email, err := s.term.ReadLine("Email: ")
			if err != nil {
				return err
			}
			switch email {
			case "/signup":
				showLogin = false
				continue
			case "/quit":
				return errQuit
			}
			password, err := s.term.ReadLine("Password: ")
			if err != nil {
				return err
			}
			// Failure text already surfaced through the notifier.
			s.auth.Login(ctx, email, password)
			continue
		}

		s.term.Println("-- Create Your Zeno Account --  (type /login to go back)")
		name, err := s.term.ReadLine("Name: ")
		if err != nil {
			return err
		}
		if name == "/login" {
			showLogin = true
			continue
		}
		email, err := s.term.ReadLine("Email: ")
		if err != nil {
			return err
		}
		password, err := s.term.ReadLine(fmt.Sprintf("Password (min %d chars): ", config.MinPasswordLength))
		if err != nil {
			return err
		}
		if err := s.auth.Register(ctx, name, email, password); err == nil {
			time.Sleep(s.redirectDelay)
			showLogin = true
		}
	}
	return nil
}

func (s *Shell) chatView(ctx context.Context) error {
	s.rendered = 0
	s.chat.LoadHistory(ctx)
	s.term.Println("(/history, /profile, /logout, /quit)")

	for s.auth.Authenticated() {
		line, err := s.term.ReadLine("> ")
		if err != nil {
			return err
		}

		switch line {
		case "/history":
			if err := s.historyView(ctx); err != nil {
				return err
			}
			continue
		case "/profile":
			if err := s.profileView(ctx); err != nil {
				return err
			}
			continue
		case "/logout":
			return s.auth.Logout()
		case "/quit":
			return errQuit
		}

		if s.chat.Busy() || strings.TrimSpace(line) == "" {
			continue
		}

		s.term.Println("Thinking...")
		// Rendering happens through OnChange on every mutation, so the
		// optimistic message and its undelivered marker show up even when
		// the send fails; the failure text itself comes via the notifier.
		s.chat.Send(ctx, line)
	}
	return nil
}

func (s *Shell) historyView(ctx context.Context) error {
	s.term.Println("-- Chat History --  (delete <id>, clear, back)")
	if err := s.history.Load(ctx); err == nil {
		for _, m := range s.history.Messages() {
			s.term.Println(ui.FormatHistoryEntry(m))
		}
		if len(s.history.Messages()) == 0 {
			s.term.Println("No chat history available.")
		}
	}

	for {
		line, err := s.term.ReadLine("history> ")
		if err != nil {
			return err
		}
		switch {
		case line == "back":
			return nil
		case line == "clear":
			if s.history.Clear(ctx) == nil {
				s.term.Println("History cleared.")
			}
		case len(line) > 7 && line[:7] == "delete ":
			if s.history.Delete(ctx, line[7:]) == nil {
				s.term.Println("Message deleted.")
			}
		default:
			s.term.Println("Commands: delete <id>, clear, back")
		}
	}
}

func (s *Shell) profileView(ctx context.Context) error {
	if err := s.profile.Load(ctx); err != nil {
		return nil
	}

	for s.auth.Authenticated() {
		p := s.profile.Snapshot()
		s.term.Println("-- User Profile --")
		s.term.Printf("Name : %s\n", p.Name)
		s.term.Printf("Email : %s\n", p.Email)
		registered := "N/A"
		if !p.CreatedAt.IsZero() {
			registered = p.CreatedAt.Local().Format("2006-01-02")
		}
		s.term.Printf("Registered On : %s\n", registered)
		if msg := s.profile.Status(); msg != "" {
			s.term.Println(msg)
		}

		line, err := s.term.ReadLine("profile> (edit, delete, back) ")
		if err != nil {
			return err
		}
		switch line {
		case "back":
			return nil
		case "delete":
			// On success the teardown logs the session out; the caller's
			// loop falls back to the login view.
			s.profile.DeleteAccount(ctx)
		case "edit":
			if err := s.editProfile(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Shell) editProfile(ctx context.Context) error {
	s.profile.StartEdit()
	curName, curEmail := s.profile.Fields()

	name, err := s.term.ReadLine("Name [" + curName + "]: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = curName
	}
	email, err := s.term.ReadLine("Email [" + curEmail + "]: ")
	if err != nil {
		return err
	}
	if email == "" {
		email = curEmail
	}

	if err := s.profile.Save(ctx, name, email); errors.Is(err, domain.ErrNoChanges) {
		s.profile.CancelEdit()
	}
	return nil
}
