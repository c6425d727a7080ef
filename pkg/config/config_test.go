package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/config"
	"github.com/macropower/folio/pkg/paginator"
	"github.com/macropower/folio/pkg/paginator/widgets"
	"github.com/macropower/folio/pkg/source"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, config.APIVersion, cfg.APIVersion)
	assert.Equal(t, config.Kind, cfg.Kind)
	require.NotNil(t, cfg.Paginator)
	assert.Equal(t, config.DefaultRowsPerPage, *cfg.Paginator.RowsPerPage)
	assert.Equal(t, config.DefaultTemplate, cfg.Paginator.Template)
	assert.Equal(t, source.DefaultReload, cfg.Source.Reload)
	assert.NotNil(t, cfg.Policy)
	assert.NotNil(t, cfg.UI)
	require.NoError(t, cfg.Validate())
}

func TestDefaultYAMLIsValid(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes(config.DefaultYAML())
	require.NoError(t, l.Validate())

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{10, 25, 50, 0}, cfg.Paginator.RowsPerPageOptions)
	require.Len(t, cfg.Policy.Rules, 1)
	assert.Equal(t, "bounded-rows", cfg.Policy.Rules[0].Name)
}

func TestLoaderValidateAndLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		validateErr string
		loadErr     string
	}{
		"minimal": {
			input: "apiVersion: folio.jacobcolvin.com/v1beta1\nkind: Configuration\n",
		},
		"invalid yaml": {
			input:       "apiVersion: folio.jacobcolvin.com/v1beta1\nkind: Configuration\ninvalid: [unclosed\n",
			validateErr: "sequence end token",
			loadErr:     "sequence end token",
		},
		"missing required fields": {
			input:       "paginator:\n  rowsPerPage: 5\n",
			validateErr: "missing properties",
		},
		"wrong kind": {
			input:       "apiVersion: folio.jacobcolvin.com/v1beta1\nkind: Pager\n",
			validateErr: "kind",
		},
		"rows per page below minimum": {
			input:       "apiVersion: folio.jacobcolvin.com/v1beta1\nkind: Configuration\npaginator:\n  rowsPerPage: 0\n",
			validateErr: "rowsPerPage",
			loadErr:     "rowsPerPage must be positive",
		},
		"bad policy expression": {
			input: `apiVersion: folio.jacobcolvin.com/v1beta1
kind: Configuration
policy:
  rules:
    - name: broken
      allow: proposed.page <
`,
			loadErr: `rule "broken"`,
		},
		"valid policy expression": {
			input: `apiVersion: folio.jacobcolvin.com/v1beta1
kind: Configuration
policy:
  rules:
    - name: ok
      allow: proposed.page <= 100
`,
		},
		"bad reload expression": {
			input: `apiVersion: folio.jacobcolvin.com/v1beta1
kind: Configuration
source:
  reload: op.nope(
`,
			loadErr: "reload expression",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.input))

			err := l.Validate()
			if tc.validateErr != "" {
				require.ErrorContains(t, err, tc.validateErr)
			} else {
				require.NoError(t, err)
			}

			cfg, err := l.Load()
			if tc.loadErr != "" {
				require.ErrorContains(t, err, tc.loadErr)
				assert.Nil(t, cfg)

				return
			}

			if tc.validateErr == "" {
				require.NoError(t, err)
				assert.Equal(t, config.APIVersion, cfg.APIVersion)
			}
		})
	}
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup   func(t *testing.T) string
		wantErr bool
	}{
		"valid file": {
			setup: func(t *testing.T) string {
				t.Helper()

				return writeTemp(t, "apiVersion: folio.jacobcolvin.com/v1beta1\nkind: Configuration\n")
			},
		},
		"missing file": {
			setup: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantErr: true,
		},
		"directory": {
			setup: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l, err := config.NewLoaderFromFile(tc.setup(t))
			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, l)

				return
			}

			require.NoError(t, err)
			require.NoError(t, l.Validate())
		})
	}
}

func TestPaginatorBuild(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Paginator.InitialPage = paginator.Int(2)
	cfg.Paginator.PageLinks = paginator.Int(3)
	cfg.Paginator.Labels = &config.Labels{Next: "next"}

	pc := cfg.Paginator.Build(100, 0)
	assert.Equal(t, 10, pc.RowsPerPage)
	assert.Equal(t, 100, pc.TotalRecords)
	assert.Equal(t, []string{"footer"}, pc.Containers)
	assert.Equal(t, 2, pc.Attributes[paginator.AttrInitialPage])
	assert.Equal(t, 3, pc.Attributes[widgets.AttrPageLinks])
	assert.Equal(t, "next", pc.Attributes[widgets.AttrNextPageLinkLabel])
	assert.NotContains(t, pc.Attributes, widgets.AttrFirstPageLinkLabel)

	assert.Equal(t, 25, cfg.Paginator.Build(100, 25).RowsPerPage)

	reg := paginator.NewRegistry()
	widgets.RegisterDefaults(reg)

	p := paginator.New(pc, paginator.WithRegistry(reg))
	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, 3, p.Int(widgets.AttrPageLinks))
}

func TestConfigWrite(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup  func(t *testing.T) string
		errMsg string
	}{
		"new file": {
			setup: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(t.TempDir(), "nested", "config.yaml")
			},
		},
		"existing file is kept": {
			setup: func(t *testing.T) string {
				t.Helper()

				return writeTemp(t, "existing")
			},
		},
		"path is directory": {
			setup: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
			errMsg: "path is a directory",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := tc.setup(t)

			before, _ := os.ReadFile(path) //nolint:errcheck // Missing is fine.

			cfg := config.NewConfig()
			cfg.Paginator.RowsPerPage = paginator.Int(42)

			err := cfg.Write(path)
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)

				return
			}

			require.NoError(t, err)

			got, err := os.ReadFile(path)
			require.NoError(t, err)

			if before != nil {
				assert.Equal(t, before, got)

				return
			}

			l := config.NewLoaderFromBytes(got)
			require.NoError(t, l.Validate())

			loaded, err := l.Load()
			require.NoError(t, err)
			assert.Equal(t, 42, *loaded.Paginator.RowsPerPage)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	t.Run("writes config and schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "folio", "config.yaml")
		require.NoError(t, config.WriteDefaultConfig(path, false))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultYAML(), got)

		schema, err := os.ReadFile(filepath.Join(filepath.Dir(path), config.SchemaFile))
		require.NoError(t, err)
		assert.Contains(t, string(schema), "rowsPerPage")
	})

	t.Run("keeps existing file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "existing")
		require.NoError(t, config.WriteDefaultConfig(path, false))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "existing", string(got))
	})

	t.Run("force creates backup", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "existing")
		require.NoError(t, config.WriteDefaultConfig(path, true))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)

		var backup string
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".old" {
				backup = filepath.Join(filepath.Dir(path), e.Name())
			}
		}

		require.NotEmpty(t, backup)

		content, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, "existing", string(content))
	})

	t.Run("path is directory", func(t *testing.T) {
		t.Parallel()

		require.ErrorContains(t, config.WriteDefaultConfig(t.TempDir(), true), "path is a directory")
	})
}

//nolint:paralleltest // Uses t.Setenv.
func TestGetPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	assert.Equal(t, filepath.Join("/xdg", "folio", "config.yaml"), config.GetPath())
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
