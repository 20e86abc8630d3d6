package cli

import (
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	var name, email string
	var deleteAccount bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			if deleteAccount {
				return a.profile.DeleteAccount(cmd.Context())
			}

			if err := a.profile.Load(cmd.Context()); err != nil {
				return err
			}
			current := a.profile.Snapshot()

			if name != "" || email != "" {
				// Both fields are resupplied on edit; a missing flag keeps
				// the loaded value.
				if name == "" {
					name = current.Name
				}
				if email == "" {
					email = current.Email
				}
				if err := a.profile.Save(cmd.Context(), name, email); err != nil {
					return err
				}
				a.term.Println(a.profile.Status())
				return nil
			}

			a.term.Printf("Name : %s\n", current.Name)
			a.term.Printf("Email : %s\n", current.Email)
			if !current.CreatedAt.IsZero() {
				a.term.Printf("Registered On : %s\n", current.CreatedAt.Local().Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new profile name")
	cmd.Flags().StringVar(&email, "email", "", "new profile email")
	cmd.Flags().BoolVar(&deleteAccount, "delete-account", false, "permanently delete the account")
	return cmd
}
