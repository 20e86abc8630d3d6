// Package cli wires the services into the cobra command tree and the
// interactive shell.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/set-night/zeno/internal/api"
	"github.com/set-night/zeno/internal/config"
	"github.com/set-night/zeno/internal/credential"
	"github.com/set-night/zeno/internal/service"
	"github.com/set-night/zeno/internal/ui"
)

// app holds one fully wired set of client components. Every command builds
// it the same way, so scripted subcommands and the interactive shell share
// identical behavior.
type app struct {
	cfg     *config.Config
	creds   *credential.Store
	term    *ui.Terminal
	auth    *service.AuthFlow
	chat    *service.ChatSession
	history *service.HistoryManager
	profile *service.ProfileManager
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	tokenPath := cfg.TokenFile
	if tokenPath == "" {
		tokenPath, err = credential.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	creds, err := credential.Open(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	term := ui.NewTerminal(os.Stdin, os.Stdout)
	client := api.New(cfg.APIBaseURL, creds)

	auth := service.NewAuthFlow(client, creds, term)
	chat := service.NewChatSession(client, term)
	history := service.NewHistoryManager(client, term, term)
	profile := service.NewProfileManager(client, term, term, auth.Logout)

	return &app{
		cfg:     cfg,
		creds:   creds,
		term:    term,
		auth:    auth,
		chat:    chat,
		history: history,
		profile: profile,
	}, nil
}

func (a *app) requireAuth() error {
	if !a.creds.Authenticated() {
		return fmt.Errorf("not logged in, run `zeno login` first")
	}
	return nil
}

// NewRootCmd builds the zeno command tree. Running the root with no
// subcommand starts the interactive shell.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zeno",
		Short:         "Terminal client for the Zeno chat service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			shell := NewShell(a.term, a.auth, a.chat, a.history, a.profile)
			return shell.Run(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newSendCmd(),
		newHistoryCmd(),
		newProfileCmd(),
	)
	return root
}
