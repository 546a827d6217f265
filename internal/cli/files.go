package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUploadCmd(state *rootState) *cobra.Command {
	displayName := ""

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Encrypt a file and store it in the vault",
		Args:  cobra.ExactArgs(1),
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
			file, err := env.services.FileService.UploadFile(cmd.Context(), sess.userID, args[0], displayName)
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Stored %q (id=%d).\n", file.DisplayName, file.FileID)
			return nil
		},
	}
	cmd.Flags().StringVar(&displayName, "name", "", "display name (default: source file name)")
	return cmd
}

func newFilesCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List stored files",
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
			files, err := env.services.FileService.GetUserFiles(cmd.Context(), sess.userID)
			if err != nil {
				return renderErr(err)
			}
			if len(files) == 0 {
				fmt.Println("No files stored.")
				return nil
			}
			for _, f := range files {
				fmt.Printf("%d\t%s\t%s\t%.2f MB\n", f.FileID, f.DisplayName, f.UploadedAt.Format("2006-01-02 15:04:05"), f.SizeMB)
			}
			return nil
		},
	}
}

func newDownloadCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "download <id> <output-path>",
		Short: "Decrypt a stored file to the given path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := parseID(args[0])
			if err != nil {
				return err
			}

			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			if err := env.services.FileService.DownloadFile(cmd.Context(), sess.userID, fileID, args[1]); err != nil {
				return renderErr(err)
			}
			fmt.Printf("Saved to %s.\n", args[1])
			return nil
		},
	}
}

func newDeleteCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored file and its encrypted blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := parseID(args[0])
			if err != nil {
				return err
			}

			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			sess, err := authenticate(cmd.Context(), env)
			if err != nil {
				return err
			}
			if err := env.services.FileService.DeleteFile(cmd.Context(), sess.userID, fileID); err != nil {
				return renderErr(err)
			}
			fmt.Println("File deleted.")
			return nil
		},
	}
}

func newStorageCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Show the physical state of the encrypted blob directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openApp(cmd.Context(), state)
			if err != nil {
				return err
			}
			defer env.Close()

			info, err := env.services.FileService.GetStorageInfo(cmd.Context())
			if err != nil {
				return renderErr(err)
			}
			fmt.Printf("Directory:   %s\n", info.Directory)
			fmt.Printf("Blobs:       %d\n", info.TotalFiles)
			fmt.Printf("Total size:  %.2f MB\n", info.TotalSizeMB)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid file id %q", arg)
	}
	return id, nil
}
