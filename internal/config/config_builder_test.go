package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that building with no
// configs fails validation: an empty config has no storage paths.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	_ = cfg
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{Path: "merged.db"}}},
		&StructuredConfig{App: App{MaxLoginAttempts: 5}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "merged.db", cfg.Storage.DB.Path)
	assert.Equal(t, 5, cfg.App.MaxLoginAttempts)
}

// TestBuild_FirstSourceWins verifies the merge priority: a value that is
// already set is not overwritten by a later (lower-priority) source.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{Path: "override.db"}}},
		&StructuredConfig{Storage: Storage{DB: DB{Path: "ignored.db"}}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "override.db", cfg.Storage.DB.Path)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_FillsEveryRequiredField verifies that the defaults alone
// produce a valid configuration.
func TestWithDefaults_FillsEveryRequiredField(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabasePath, cfg.Storage.DB.Path)
	assert.Equal(t, DefaultKeyPath, cfg.Storage.Key.Path)
	assert.Equal(t, DefaultSecureFileDir, cfg.Storage.Files.SecureDir)
	assert.Equal(t, DefaultMaxLoginAttempts, cfg.App.MaxLoginAttempts)
	assert.Positive(t, cfg.App.BcryptCost)
}

// ── withOverrides ─────────────────────────────────────────────────────────────

// TestWithOverrides_NilIsNoop verifies that nil overrides append nothing.
func TestWithOverrides_NilIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.withOverrides(nil)
	assert.Empty(t, b.configs)
}

// TestWithOverrides_BeatsDefaults verifies that caller overrides take
// precedence over the built-in defaults.
func TestWithOverrides_BeatsDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().
		withOverrides(&StructuredConfig{Storage: Storage{DB: DB{Path: "/tmp/x.db"}}}).
		withDefaults().
		build()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DB.Path)
	assert.Equal(t, DefaultSecureFileDir, cfg.Storage.Files.SecureDir)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("STORAGE_DB_PATH", "env.db")
	t.Setenv("APP_MAX_LOGIN_ATTEMPTS", "7")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env.db", b.configs[0].Storage.DB.Path)
	assert.Equal(t, 7, b.configs[0].App.MaxLoginAttempts)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoopWhenNoPathSpecified verifies that withJSON appends nothing
// when no config has a JSONFilePath.
func TestWithJSON_NoopWhenNoPathSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.withJSON()
	assert.Empty(t, b.configs)
}

// TestWithJSON_AppendsParsedFile verifies that a JSON file referenced by an
// earlier source is parsed and merged.
func TestWithJSON_AppendsParsedFile(t *testing.T) {
	var jsonCfg StructuredJSONConfig
	jsonCfg.Storage.DB.Path = "from-json.db"
	path := writeTempJSONConfig(t, jsonCfg)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.Len(t, b.configs, 2)
	assert.Equal(t, "from-json.db", b.configs[1].Storage.DB.Path)
}

// TestWithJSON_ErrorOnMissingFile verifies that a nonexistent JSON path sets
// the builder error.
func TestWithJSON_ErrorOnMissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()
	assert.Error(t, b.err)
}

// ── validate ──────────────────────────────────────────────────────────────────

// TestValidate_RejectsNonPositiveThreshold verifies the app-level invariant.
func TestValidate_RejectsNonPositiveThreshold(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.MaxLoginAttempts = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

// TestValidate_RejectsEmptyStoragePaths verifies the storage invariants.
func TestValidate_RejectsEmptyStoragePaths(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *StructuredConfig)
	}{
		{"empty db path", func(cfg *StructuredConfig) { cfg.Storage.DB.Path = "" }},
		{"empty key path", func(cfg *StructuredConfig) { cfg.Storage.Key.Path = "" }},
		{"empty blob dir", func(cfg *StructuredConfig) { cfg.Storage.Files.SecureDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
		})
	}
}
