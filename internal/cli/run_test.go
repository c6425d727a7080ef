package cli_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/internal/cli"
	"github.com/macropower/folio/pkg/config"
)

func writeRecords(t *testing.T, n int) string {
	t.Helper()

	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "record %d\n", i+1)
	}

	path := filepath.Join(t.TempDir(), "records.txt")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

//nolint:paralleltest // Sets the default logger.
func TestRunPrintsPage(t *testing.T) {
	records := writeRecords(t, 20)

	tcs := map[string]struct {
		err  error
		want string
		args []string
	}{
		"first page": {
			args: []string{"--rows", "3"},
			want: "record 1\nrecord 2\nrecord 3\n",
		},
		"initial page": {
			args: []string{"--rows", "3", "--page", "2"},
			want: "record 4\nrecord 5\nrecord 6\n",
		},
		"last partial page": {
			args: []string{"--rows", "6", "--page", "4"},
			want: "record 19\nrecord 20\n",
		},
		"configured rows": {
			args: []string{"--page", "2"},
			want: "record 11\nrecord 12\nrecord 13\nrecord 14\nrecord 15\nrecord 16\nrecord 17\nrecord 18\nrecord 19\nrecord 20\n",
		},
		"missing page": {
			args: []string{"--rows", "5", "--page", "5"},
			err:  assert.AnError,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			args := append([]string{records, "--config", cfgPath}, tc.args...)

			got, err := execute(t, args...)
			if tc.err != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "page 5")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

//nolint:paralleltest // Sets the default logger.
func TestRunPolicyDeniesInitialPage(t *testing.T) {
	records := writeRecords(t, 50)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := `apiVersion: folio.jacobcolvin.com/v1beta1
kind: Configuration
policy:
  rules:
    - name: first-pages
      allow: proposed.page <= 2
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	_, err := execute(t, records, "--config", cfgPath, "--page", "3")
	require.Error(t, err)

	got, err := execute(t, records, "--config", cfgPath, "--page", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "record 11\n"), "got %q", got)
}

//nolint:paralleltest // Sets the default logger.
func TestRunInvalidConfig(t *testing.T) {
	records := writeRecords(t, 5)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := `apiVersion: folio.jacobcolvin.com/v1beta1
kind: Configuration
paginator:
  rowsPerPage: -1
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	_, err := execute(t, records, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

//nolint:paralleltest // Sets the default logger.
func TestRunWriteConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	_, err := execute(t, "--config", cfgPath, "--write-config")
	require.NoError(t, err)

	assert.FileExists(t, cfgPath)
	assert.FileExists(t, filepath.Join(dir, config.SchemaFile))
}

//nolint:paralleltest // Sets the default logger.
func TestRunShowConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	got, err := execute(t, "--config", cfgPath, "--show-config")
	require.NoError(t, err)

	plain := ansi.Strip(got)
	assert.Contains(t, plain, "apiVersion: "+config.APIVersion)
	assert.Contains(t, plain, "rowsPerPage: 10")
}
