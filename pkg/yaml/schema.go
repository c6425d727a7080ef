package yaml

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// SchemaGenerator reflects a JSON schema from a Go value.
type SchemaGenerator struct {
	reflector *jsonschema.Reflector
	value     any
	packages  []string
}

// NewSchemaGenerator creates a [SchemaGenerator] for v. Doc comments from
// packages (import paths under the current module) are added as
// descriptions.
func NewSchemaGenerator(v any, packages ...string) *SchemaGenerator {
	return &SchemaGenerator{
		reflector: &jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			DoNotReference:             true,
		},
		value:    v,
		packages: packages,
	}
}

// Generate returns the indented JSON schema.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	for _, pkg := range g.packages {
		module, dir, ok := splitModule(pkg)
		if !ok {
			return nil, fmt.Errorf("%s: not a module package", pkg)
		}

		err := g.reflector.AddGoComments(module, dir)
		if err != nil {
			return nil, fmt.Errorf("add comments from %s: %w", pkg, err)
		}
	}

	jss := g.reflector.Reflect(g.value)

	data, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}

// splitModule splits "github.com/owner/repo/pkg/x" into the module path and
// the "./pkg/x" directory.
func splitModule(pkg string) (string, string, bool) {
	parts := strings.SplitN(pkg, "/", 4)
	if len(parts) < 4 {
		return "", "", false
	}

	return strings.Join(parts[:3], "/"), "./" + parts[3], true
}
