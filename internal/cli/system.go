package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortifile/fortifile/internal/service"
)

func newStatusCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the database, key file and blob directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			status, err := env.services.SystemService.GetSystemStatus(cmd.Context())
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Database:       %s (%.2f MB)\n", existsLabel(status.DatabaseExists), status.DatabaseSizeMB)
			fmt.Printf("Key file:       %s\n", existsLabel(status.KeyFileExists))
			fmt.Printf("Blob directory: %s (%d blobs, %.2f MB)\n", existsLabel(status.BlobDirExists), status.BlobCount, status.BlobSizeMB)
			fmt.Printf("Initialized:    %v\n", status.Initialized)
			return nil
		},
	}
}

func newVerifyCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check consistency between the database and the blob directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			report, err := env.services.SystemService.VerifySystemIntegrity(cmd.Context())
			if err != nil {
				return renderErr(err)
			}
			if report.OK {
				fmt.Println("Integrity check passed.")
				return nil
			}
			for _, issue := range report.Issues {
				fmt.Printf("issue: %s\n", issue)
			}
			return fmt.Errorf("integrity check found %d issue(s)", len(report.Issues))
		},
	}
}

func newBackupCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dir>",
		Short: "Copy the database to a backup directory",
		Long: `Copy the database file to the given directory.

The encryption key and the encrypted blobs are never included, so a leaked
backup can neither decrypt nor expose file contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			report, err := env.services.SystemService.BackupSystem(cmd.Context(), args[0])
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Backup written to %s:\n", report.BackupDir)
			for _, item := range report.Items {
				fmt.Printf("  - %s\n", item)
			}
			return nil
		},
	}
}

func newResetCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Wipe the database, key file and all encrypted blobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			fmt.Println("This permanently destroys the account, the encryption key and every stored file.")
			confirmation, err := askLine(fmt.Sprintf("Type %q to confirm", service.ResetConfirmationPhrase))
			if err != nil {
				return err
			}

			report, err := env.services.SystemService.ResetSystem(cmd.Context(), confirmation)
			if err != nil {
				return renderErr(err)
			}
			fmt.Println("System reset. Removed:")
			for _, item := range report.RemovedItems {
				fmt.Printf("  - %s\n", item)
			}
			return nil
		},
	}
}

func existsLabel(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}
