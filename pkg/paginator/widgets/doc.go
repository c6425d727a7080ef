// Package widgets provides the standard paginator components.
//
// Each component is registered under the name used as its template
// placeholder, for example "{PageLinks}". Use [RegisterDefaults] to add all of
// them to a [paginator.Registry].
//
// Components keep a cached rendering that is refreshed from the paginator's
// change events. Link components implement [Activator] and components that
// offer a choice of values implement [Selector]; both call back into the
// paginator's request API.
package widgets
