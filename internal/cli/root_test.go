package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_RegistersAllCommands(t *testing.T) {
	root := NewRootCmd(VersionInfo{Version: "test"})

	registered := make(map[string]bool)
	for _, c := range root.Commands() {
		registered[c.Name()] = true
	}

	expected := []string{
		"register", "login", "change-password", "delete-account",
		"whoami", "events", "security", "reset-attempts",
		"upload", "files", "download", "delete", "storage",
		"status", "verify", "backup", "reset", "version",
	}
	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	root := NewRootCmd(VersionInfo{})

	require.NotNil(t, root.PersistentFlags().Lookup("config"))
	require.NotNil(t, root.PersistentFlags().Lookup("data-dir"))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "42", want: 42},
		{arg: "0", wantErr: true},
		{arg: "-3", wantErr: true},
		{arg: "abc", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
