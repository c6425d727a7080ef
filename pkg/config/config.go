package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/folio/pkg/policy"
	"github.com/macropower/folio/pkg/source"
	"github.com/macropower/folio/pkg/ui"
	"github.com/macropower/folio/pkg/yaml"
)

const (
	// APIVersion is the current configuration API version.
	APIVersion = "folio.jacobcolvin.com/v1beta1"
	// Kind is the configuration kind.
	Kind = "Configuration"

	// SchemaFile is the name of the JSON schema written next to the config.
	SchemaFile = "config.v1beta1.json"

	schemaURL = "https://raw.githubusercontent.com/macropower/folio/refs/heads/main/pkg/config/" + SchemaFile
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	ValidAPIVersions = []string{APIVersion}
	ValidKinds       = []string{Kind}

	// Schema returns the JSON schema for [Config].
	Schema = sync.OnceValues(func() ([]byte, error) {
		return yaml.NewSchemaGenerator(&Config{}).Generate()
	})

	// DefaultValidator returns the validator for [Config] documents.
	DefaultValidator = sync.OnceValues(func() (*yaml.Validator, error) {
		data, err := Schema()
		if err != nil {
			return nil, fmt.Errorf("generate schema: %w", err)
		}

		return yaml.NewValidator(schemaURL, data)
	})
)

// DefaultYAML returns the embedded default configuration.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Paginator holds the paginator defaults.
	Paginator *Paginator `json:"paginator,omitempty" jsonschema:"title=Paginator"`
	// Policy holds the rules that approve page change requests.
	Policy *policy.Policy `json:"policy,omitempty" jsonschema:"title=Policy"`
	// Source configures the record source.
	Source *Source `json:"source,omitempty" jsonschema:"title=Source"`
	// UI configures the terminal interface.
	UI *ui.Config `json:"ui,omitempty" jsonschema:"title=UI"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version,required"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind,required"`
}

// Source configures how records are loaded.
type Source struct {
	// Reload is a CEL expression deciding which file events reload a watched
	// source. Variables: op (fsnotify op bits), file (path).
	Reload string `json:"reload,omitempty" jsonschema:"title=Reload Expression"`
}

// NewConfig creates a [Config] with default values.
func NewConfig() *Config {
	c := &Config{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Paginator == nil {
		c.Paginator = &Paginator{}
	}

	c.Paginator.EnsureDefaults()

	if c.Policy == nil {
		c.Policy = policy.New()
	}

	if c.Source == nil {
		c.Source = &Source{}
	}

	if c.Source.Reload == "" {
		c.Source.Reload = source.DefaultReload
	}

	if c.UI == nil {
		c.UI = ui.NewConfig()
	} else {
		c.UI.EnsureDefaults()
	}
}

// Validate runs the checks that cannot be expressed in the schema. Errors
// carry the path of the offending field.
func (c *Config) Validate() error {
	pb := yaml.NewPathBuilder().Root()

	err := c.Paginator.Validate()
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(pb.Child("paginator").Build()))
	}

	if c.Policy != nil {
		for i, r := range c.Policy.Rules {
			err := r.Compile()
			if err != nil {
				path := yaml.NewPathBuilder().Root().Child("policy").Child("rules").Index(uint(i)).Child("allow").Build()

				return yaml.NewError(fmt.Errorf("rule %q: %w", r.Name, err), yaml.WithPath(path))
			}
		}
	}

	err = source.CheckReload(c.Source.Reload)
	if err != nil {
		path := yaml.NewPathBuilder().Root().Child("source").Child("reload").Build()

		return yaml.NewError(err, yaml.WithPath(path))
	}

	err = c.UI.Validate()
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("ui").Build()))
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	extendSchemaWithEnums(jss, "apiVersion", "API Version", ValidAPIVersions)
	extendSchemaWithEnums(jss, "kind", "Kind", ValidKinds)
}

func extendSchemaWithEnums(jss *jsonschema.Schema, property, title string, values []string) {
	prop, ok := jss.Properties.Get(property)
	if !ok {
		panic(property + " property not found in schema")
	}

	for _, v := range values {
		prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: v,
			Title: title,
		})
	}

	_, _ = jss.Properties.Set(property, prop)
}

// MarshalYAML serializes the config on top of the embedded default, keeping
// its comments.
func (c Config) MarshalYAML() ([]byte, error) {
	data, err := yaml.Marshal(c.withoutTypeMeta())
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	var values map[string]any

	err = yaml.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	b, err := yaml.MergeRootFromValue(defaultConfigYAML, values)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// withoutTypeMeta avoids recursing into MarshalYAML.
func (c Config) withoutTypeMeta() any {
	type plain Config

	return plain(c)
}

// Write writes the config to path, unless a file already exists there.
func (c Config) Write(path string) error {
	exists, err := fileExists(path)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	return writeFile(path, b)
}

// WriteDefaultConfig writes the embedded default config.yaml and the JSON
// schema to the directory of path. An existing config is only replaced when
// force is set, in which case it is kept as a backup.
func WriteDefaultConfig(path string, force bool) error {
	exists, err := fileExists(path)
	if err != nil {
		return err
	}

	if exists && force {
		backupPath := filepath.Join(filepath.Dir(path),
			fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano()))

		slog.Info("backing up existing config file",
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing config file to backup: %w", err)
		}

		exists = false
	}

	if exists {
		slog.Debug("configuration file already exists, skipping write",
			slog.String("path", path),
		)
	} else {
		slog.Info("write default configuration",
			slog.String("path", path),
		)

		err = writeFile(path, defaultConfigYAML)
		if err != nil {
			return err
		}
	}

	schema, err := Schema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	schemaPath := filepath.Join(filepath.Dir(path), SchemaFile)
	slog.Debug("write JSON schema",
		slog.String("path", schemaPath),
	)

	err = os.WriteFile(schemaPath, schema, 0o600)
	if err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}

	return nil
}

// GetPath returns the default config path.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "folio", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "folio", "config.yaml")
	}

	tmpConfig := filepath.Join(os.TempDir(), "folio", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmpConfig),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpConfig
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		return false, fmt.Errorf("%s: path is a directory", path)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: unknown file state", path)
	}

	return true, nil
}

func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

func readFile(path string) ([]byte, error) {
	_, err := fileExists(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}
