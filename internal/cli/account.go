package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create the single local account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			username, err := askLine("Username")
			if err != nil {
				return err
			}
			password, err := promptPasswordTwice("Password")
			if err != nil {
				return err
			}

			user, err := env.services.AuthService.RegisterUser(cmd.Context(), username, password)
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Account %q created.\n", user.Username)
			return nil
		},
	}
}

func newLoginCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify the account credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			fmt.Printf("Welcome back, %s.\n", sess.username)
			return nil
		},
	}
}

func newChangePasswordCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			newPassword, err := promptPasswordTwice("New password")
			if err != nil {
				return err
			}
			if err := env.services.AuthService.ChangePassword(cmd.Context(), sess.userID, sess.password, newPassword); err != nil {
				return renderErr(err)
			}
			fmt.Println("Password changed.")
			return nil
		},
	}
}

func newDeleteAccountCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the account together with all files and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			ok, err := askYesNo("Delete the account and every stored file?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}

			removal, err := env.services.AuthService.DeleteAccount(cmd.Context(), sess.userID, sess.password)
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Account deleted: %d file(s) and %d event(s) removed.\n", removal.FilesRemoved, removal.EventsRemoved)
			for _, w := range removal.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			return nil
		},
	}
}

func newWhoamiCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show account details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			user, err := env.services.AuthService.GetUserInfo(cmd.Context(), sess.userID)
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Username: %s\n", user.Username)
			fmt.Printf("Created:  %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newEventsCmd(state *rootState) *cobra.Command {
	limit := 20

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the activity history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			events, err := env.services.AuthService.GetUserEvents(cmd.Context(), sess.userID, limit)
			if err != nil {
				return renderErr(err)
			}
			if len(events) == 0 {
				fmt.Println("No events recorded.")
				return nil
			}
			for _, e := range events {
				fmt.Printf("%s  %s\n", e.OccurredAt.Format("2006-01-02 15:04:05"), e.Description)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show (0 = all)")
	return cmd
}

func newSecurityCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "security",
		Short: "Show lockout state and failed-attempt counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			status, err := env.services.AuthService.GetSecurityStatus(cmd.Context())
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Locked:             %v\n", status.Locked)
			fmt.Printf("Failed attempts:    %d/%d\n", status.FailedAttempts, status.MaxAttempts)
			fmt.Printf("Attempts remaining: %d\n", status.RemainingAttempts)
			return nil
		},
	}
}

func newResetAttemptsCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-attempts",
		Short: "Clear the failed-attempt counter and unlock the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.services.AuthService.ResetFailedAttempts(cmd.Context()); err != nil {
				return renderErr(err)
			}
			fmt.Println("Failed attempts reset; the account is unlocked.")
			return nil
		},
	}
}
