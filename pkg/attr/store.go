package attr

import (
	"reflect"

	"github.com/macropower/folio/pkg/event"
)

// ChangeSuffix is appended to an attribute name to form its change event name.
const ChangeSuffix = "Change"

// Validator reports whether v is an acceptable value.
type Validator func(v any) bool

// Setter normalizes an accepted value before it is stored.
type Setter func(v any) any

// Definition configures an attribute.
type Definition struct {
	// Value is the initial value. It is stored without validation.
	Value any
	// Validator rejects values before they are stored.
	Validator Validator
	// Setter normalizes values after validation.
	Setter Setter
	// ReadOnly attributes can only be changed with [Force].
	ReadOnly bool
}

// Change is the payload of an attribute change event.
type Change struct {
	PreviousValue any
	NewValue      any
	Name          string
}

type attribute struct {
	value any
	def   Definition
}

// Store holds attribute values.
type Store struct {
	bus   *event.Bus
	attrs map[string]*attribute
	order []string
}

// NewStore creates a new [Store] that emits change events on bus.
func NewStore(bus *event.Bus) *Store {
	if bus == nil {
		bus = event.NewBus()
	}

	return &Store{
		bus:   bus,
		attrs: make(map[string]*attribute),
	}
}

// Define registers an attribute. Redefining an existing attribute replaces its
// definition and resets its value.
func (s *Store) Define(name string, def Definition) {
	if _, ok := s.attrs[name]; !ok {
		s.order = append(s.order, name)
	}

	s.attrs[name] = &attribute{value: def.Value, def: def}
}

// Defined reports whether name has been registered.
func (s *Store) Defined(name string) bool {
	_, ok := s.attrs[name]
	return ok
}

// Names returns attribute names in definition order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Get returns the value of name, or nil if it is not defined.
func (s *Store) Get(name string) any {
	a, ok := s.attrs[name]
	if !ok {
		return nil
	}

	return a.value
}

// SetOpt configures a single [Store.Set] call.
type SetOpt func(*setOptions)

type setOptions struct {
	silent bool
	force  bool
}

// Silent suppresses the change event.
func Silent() SetOpt {
	return func(o *setOptions) {
		o.silent = true
	}
}

// Force bypasses the read-only check. It is reserved for the owner of the
// store, which uses it to seed lifecycle attributes.
func Force() SetOpt {
	return func(o *setOptions) {
		o.force = true
	}
}

// Set validates and stores value. It returns false when the attribute is
// unknown, read-only, or the value fails validation; in that case nothing is
// stored and no event is emitted.
func (s *Store) Set(name string, value any, opts ...SetOpt) bool {
	o := &setOptions{}
	for _, opt := range opts {
		opt(o)
	}

	a, ok := s.attrs[name]
	if !ok {
		return false
	}

	if a.def.ReadOnly && !o.force {
		return false
	}

	if a.def.Validator != nil && !a.def.Validator(value) {
		return false
	}

	if a.def.Setter != nil {
		value = a.def.Setter(value)
	}

	prev := a.value
	a.value = value

	if o.silent || equal(prev, value) {
		return true
	}

	s.bus.Emit(name+ChangeSuffix, Change{
		Name:          name,
		PreviousValue: prev,
		NewValue:      value,
	})

	return true
}

// Get returns the value of name converted to T. The zero value is returned
// when the attribute is missing or holds a different type.
func Get[T any](s *Store, name string) T {
	v, _ := s.Get(name).(T) //nolint:errcheck // Zero value on mismatch.
	return v
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if ta.Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}
