package expr_test

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/google/cel-go/cel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/expr"
)

func TestPagingFunctions(t *testing.T) {
	t.Parallel()

	env, err := expr.NewEnvironment(
		cel.Variable("rpp", cel.IntType),
		cel.Variable("total", cel.IntType),
		cel.Variable("offset", cel.IntType),
	)
	require.NoError(t, err)

	tcs := map[string]struct {
		expression string
		vars       map[string]any
		wantErr    error
		want       bool
	}{
		"total pages": {
			expression: `totalPages(rpp, total) == 3`,
			vars:       map[string]any{"rpp": 10, "total": 25, "offset": 0},
			want:       true,
		},
		"total pages unlimited": {
			expression: `totalPages(rpp, total) == UNLIMITED`,
			vars:       map[string]any{"rpp": 10, "total": -1, "offset": 0},
			want:       true,
		},
		"total pages unknown": {
			expression: `totalPages(rpp, total) == 0`,
			vars:       map[string]any{"rpp": 0, "total": 25, "offset": 0},
			want:       true,
		},
		"page of": {
			expression: `pageOf(offset, rpp) == 3`,
			vars:       map[string]any{"rpp": 10, "total": 25, "offset": 24},
			want:       true,
		},
		"page of without rows": {
			expression: `pageOf(offset, rpp)`,
			vars:       map[string]any{"rpp": 0, "total": 25, "offset": 24},
			wantErr:    expr.ErrNotBool,
		},
		"math extension": {
			expression: `math.greatest(rpp, 50) == 50`,
			vars:       map[string]any{"rpp": 10, "total": 25, "offset": 0},
			want:       true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			program, err := env.Compile(tc.expression)
			require.NoError(t, err)

			got, err := expr.EvalBool(program, tc.vars)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFileEventFunctions(t *testing.T) {
	t.Parallel()

	env, err := expr.NewEnvironment(
		cel.Variable("op", cel.IntType),
		cel.Variable("file", cel.StringType),
	)
	require.NoError(t, err)

	tcs := map[string]struct {
		expression string
		op         fsnotify.Op
		file       string
		want       bool
	}{
		"single flag": {
			expression: `op.has(fs.WRITE)`,
			op:         fsnotify.Write,
			want:       true,
		},
		"single flag missing": {
			expression: `op.has(fs.REMOVE)`,
			op:         fsnotify.Write,
			want:       false,
		},
		"any of several flags": {
			expression: `op.has(fs.CREATE, fs.RENAME, fs.REMOVE)`,
			op:         fsnotify.Rename | fsnotify.Chmod,
			want:       true,
		},
		"none of several flags": {
			expression: `op.has(fs.CREATE, fs.WRITE)`,
			op:         fsnotify.Chmod,
			want:       false,
		},
		"path base": {
			expression: `pathBase(file) == "records.txt"`,
			file:       "/var/data/records.txt",
			want:       true,
		},
		"path ext": {
			expression: `pathExt(file) in [".log", ".txt"]`,
			file:       "/var/data/records.txt",
			want:       true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			program, err := env.Compile(tc.expression)
			require.NoError(t, err)

			got, err := expr.EvalBool(program, map[string]any{
				"op":   int64(tc.op),
				"file": tc.file,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	env := expr.MustNewEnvironment(cel.Variable("op", cel.IntType))

	_, err := env.Compile(`op.has()`)
	require.Error(t, err)

	_, err = env.Compile(`undefined > 1`)
	require.Error(t, err)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(3), expr.TotalPages(10, 25))
	assert.Equal(t, int64(expr.Unlimited), expr.TotalPages(10, expr.Unlimited))
	assert.Equal(t, int64(0), expr.TotalPages(0, 25))
	assert.Equal(t, int64(0), expr.TotalPages(10, 0))
}
