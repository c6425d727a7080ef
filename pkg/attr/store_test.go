package attr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/event"
)

func newStore(t *testing.T) (*attr.Store, *[]attr.Change) {
	t.Helper()

	bus := event.NewBus()
	s := attr.NewStore(bus)

	s.Define("size", attr.Definition{Value: 10, Validator: attr.IntAtLeast(0)})
	s.Define("name", attr.Definition{
		Value:     "",
		Validator: attr.IsString,
		Setter: func(v any) any {
			return strings.ToLower(v.(string))
		},
	})
	s.Define("id", attr.Definition{Value: 1, ReadOnly: true})
	s.Define("opts", attr.Definition{Value: []int{}, Validator: attr.IsIntSlice})

	var changes []attr.Change
	for _, name := range s.Names() {
		bus.On(name+attr.ChangeSuffix, func(e *event.Event) {
			changes = append(changes, e.Payload.(attr.Change))
		})
	}

	return s, &changes
}

func TestStoreSet(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value   any
		opts    []attr.SetOpt
		name    string
		want    any
		changes []attr.Change
		ok      bool
	}{
		"valid value": {
			name:    "size",
			value:   20,
			ok:      true,
			want:    20,
			changes: []attr.Change{{Name: "size", PreviousValue: 10, NewValue: 20}},
		},
		"invalid value": {
			name:  "size",
			value: -1,
			want:  10,
		},
		"wrong type": {
			name:  "size",
			value: "20",
			want:  10,
		},
		"equal value": {
			name:  "size",
			value: 10,
			ok:    true,
			want:  10,
		},
		"silent": {
			name:  "size",
			value: 30,
			opts:  []attr.SetOpt{attr.Silent()},
			ok:    true,
			want:  30,
		},
		"setter": {
			name:    "name",
			value:   "ABC",
			ok:      true,
			want:    "abc",
			changes: []attr.Change{{Name: "name", PreviousValue: "", NewValue: "abc"}},
		},
		"read only": {
			name:  "id",
			value: 2,
			want:  1,
		},
		"read only forced": {
			name:    "id",
			value:   2,
			opts:    []attr.SetOpt{attr.Force()},
			ok:      true,
			want:    2,
			changes: []attr.Change{{Name: "id", PreviousValue: 1, NewValue: 2}},
		},
		"unknown": {
			name:  "missing",
			value: 1,
		},
		"equal slice": {
			name:  "opts",
			value: []int{},
			ok:    true,
			want:  []int{},
		},
		"changed slice": {
			name:    "opts",
			value:   []int{10, 20},
			ok:      true,
			want:    []int{10, 20},
			changes: []attr.Change{{Name: "opts", PreviousValue: []int{}, NewValue: []int{10, 20}}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, changes := newStore(t)

			assert.Equal(t, tc.ok, s.Set(tc.name, tc.value, tc.opts...))
			assert.Equal(t, tc.want, s.Get(tc.name))
			assert.Equal(t, tc.changes, *changes)
		})
	}
}

func TestStoreGet(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)

	assert.Equal(t, 10, attr.Get[int](s, "size"))
	assert.Empty(t, attr.Get[string](s, "size"))
	assert.Zero(t, attr.Get[int](s, "missing"))
	assert.True(t, s.Defined("size"))
	assert.False(t, s.Defined("missing"))
	assert.Equal(t, []string{"size", "name", "id", "opts"}, s.Names())
}

func TestStoreRedefine(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)

	require.True(t, s.Set("size", 50))
	s.Define("size", attr.Definition{Value: 5})

	assert.Equal(t, 5, s.Get("size"))
	assert.Equal(t, []string{"size", "name", "id", "opts"}, s.Names())
}

func TestValidators(t *testing.T) {
	t.Parallel()

	positiveInt := attr.All(attr.IsInt, attr.IntAtLeast(1))

	assert.True(t, positiveInt(1))
	assert.False(t, positiveInt(0))
	assert.False(t, positiveInt("1"))
	assert.True(t, attr.IsBool(false))
	assert.False(t, attr.IsBool(0))
	assert.True(t, attr.IsString(""))
	assert.True(t, attr.IsIntSlice([]int(nil)))
	assert.False(t, attr.IsIntSlice([]string{}))
}
