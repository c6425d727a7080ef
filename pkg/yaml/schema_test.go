package yaml_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/yaml"
)

type schemaTarget struct {
	Name string `json:"name" jsonschema:"title=Name,required"`
	Rows int    `json:"rows,omitempty" jsonschema:"minimum=1"`
}

func TestSchemaGenerator(t *testing.T) {
	t.Parallel()

	data, err := yaml.NewSchemaGenerator(&schemaTarget{}).Generate()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, []any{"name"}, schema["required"])

	v := yaml.MustNewValidator("target.json", data)

	require.NoError(t, v.Validate(map[string]any{"name": "x", "rows": 2}))

	var yamlErr *yaml.Error
	require.ErrorAs(t, v.Validate(map[string]any{"name": "x", "rows": 0}), &yamlErr)
	assert.Equal(t, "$.rows", yamlErr.Path.String())
}

func TestSchemaGeneratorBadPackage(t *testing.T) {
	t.Parallel()

	_, err := yaml.NewSchemaGenerator(&schemaTarget{}, "example.com/x").Generate()
	require.ErrorContains(t, err, "not a module package")
}
