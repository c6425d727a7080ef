// Package attr provides a validated key/value attribute store.
//
// Attributes are registered with [Store.Define] together with a default value,
// an optional [Validator] and an optional [Setter]. [Store.Set] rejects invalid
// values silently and emits a "<name>Change" event carrying a [Change] on the
// store's [event.Bus] whenever a stored value changes.
//
// Read-only attributes can only be written with the [Force] option.
package attr
