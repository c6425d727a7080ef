package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/yaml"
)

func TestMergeRootFromValue(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value  any
		input  string
		want   string
		errMsg string
	}{
		"adds new fields": {
			input: "kind: Configuration\n",
			value: map[string]string{"apiVersion": "folio.jacobcolvin.com/v1beta1"},
			want:  "kind: Configuration\napiVersion: folio.jacobcolvin.com/v1beta1\n",
		},
		"overwrites existing fields": {
			input: "rows: 10\n",
			value: map[string]int{"rows": 25},
			want:  "rows: 25\n",
		},
		"preserves comments": {
			input: "# Rows per page.\nrows: 10\n",
			value: map[string]string{"kind": "Configuration"},
			want:  "# Rows per page.\nrows: 10\nkind: Configuration\n",
		},
		"nested map": {
			input: "kind: Configuration\n",
			value: map[string]any{
				"paginator": map[string]int{"rowsPerPage": 5},
			},
			want: "kind: Configuration\npaginator:\n  rowsPerPage: 5\n",
		},
		"empty document": {
			input:  ``,
			value:  map[string]string{"key": "value"},
			errMsg: "merge yaml",
		},
		"invalid input": {
			input:  `invalid: [yaml`,
			value:  map[string]string{"key": "value"},
			errMsg: "parse yaml",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := yaml.MergeRootFromValue([]byte(tc.input), tc.value)
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}
