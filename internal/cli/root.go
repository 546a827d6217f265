// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

// Package cli exposes every FortiFile operation as a cobra subcommand.
// Each command opens the storage stack, runs one operation, and exits;
// there is no long-lived session between invocations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fortifile/fortifile/internal/app"
	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/crypto"
	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/internal/service"
	"github.com/fortifile/fortifile/internal/store"
)

type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootState struct {
	configPath string
	dataDir    string
}

func NewRootCmd(v VersionInfo) *cobra.Command {
	state := &rootState{}

	cmd := &cobra.Command{
		Use:           "fortifile",
		Short:         "Encrypted personal file vault with a single local account",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&state.configPath, "config", "", "path to a JSON config file")
	cmd.PersistentFlags().StringVar(&state.dataDir, "data-dir", "", "directory holding the database, key file and encrypted blobs")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fortifile %s\ncommit: %s\nbuilt: %s\n", v.Version, v.Commit, v.Date)
		},
	}

	cmd.AddCommand(
		newRegisterCmd(state),
		newLoginCmd(state),
		newChangePasswordCmd(state),
		newDeleteAccountCmd(state),
		newWhoamiCmd(state),
		newEventsCmd(state),
		newSecurityCmd(state),
		newResetAttemptsCmd(state),
		newUploadCmd(state),
		newFilesCmd(state),
		newDownloadCmd(state),
		newDeleteCmd(state),
		newStorageCmd(state),
		newStatusCmd(state),
		newVerifyCmd(state),
		newBackupCmd(state),
		newResetCmd(state),
		versionCmd,
	)
	return cmd
}

// appEnv is the per-invocation application stack: config, open storages,
// keychain and services. Callers must Close it when the command finishes.
type appEnv struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *service.Services
	log      *logger.Logger
}

func openApp(ctx context.Context, state *rootState) (*appEnv, error) {
	overrides := &config.StructuredConfig{
		JSONFilePath: strings.TrimSpace(state.configPath),
	}
	if dir := strings.TrimSpace(state.dataDir); dir != "" {
		overrides.Storage = config.Storage{
			DB:    config.DB{Path: filepath.Join(dir, config.DefaultDatabasePath)},
			Files: config.Files{SecureDir: filepath.Join(dir, config.DefaultSecureFileDir)},
			Key:   config.Key{Path: filepath.Join(dir, config.DefaultKeyPath)},
		}
	}

	cfg, err := config.GetStructuredConfigWithOverrides(overrides)
	if err != nil {
		return nil, err
	}

	log := logger.NewDesktopLogger("fortifile")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	keychain, err := crypto.NewKeyChainService(cfg.Storage.Key, log)
	if err != nil {
		_ = storages.DB.Close()
		return nil, err
	}

	return &appEnv{
		cfg:      cfg,
		storages: storages,
		services: service.NewServices(storages, keychain, *cfg, log),
		log:      log,
	}, nil
}

func (e *appEnv) Close() {
	_ = e.storages.DB.Close()
}

// renderErr translates service-layer sentinels into the operator-facing
// wording. Infrastructure details stay in the log file.
func renderErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(app.MessageFor(err))
}

// session carries the credentials of an interactive sign-in so a command
// can re-use them (e.g. delete-account re-verifies the password).
type session struct {
	userID   int64
	username string
	password string
}

// authenticate prompts for credentials and signs in. On failure it prints
// the remaining-attempts hint before surfacing the error.
func authenticate(ctx context.Context, env *appEnv) (session, error) {
	username, err := askLine("Username")
	if err != nil {
		return session{}, err
	}
	password, err := promptPassword("Password")
	if err != nil {
		return session{}, err
	}

	result, err := env.services.AuthService.AuthenticateUser(ctx, username, password)
	if err != nil {
		if result.Locked {
			fmt.Println("The account is now locked. Run `fortifile reset-attempts` to unlock it.")
		} else if errors.Is(err, service.ErrInvalidPassword) || errors.Is(err, service.ErrUserNotFound) {
			fmt.Printf("Attempts remaining before lockout: %d\n", result.RemainingAttempts)
		}
		return session{}, renderErr(err)
	}

	return session{userID: result.UserID, username: result.Username, password: password}, nil
}
