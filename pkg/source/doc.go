// Package source provides the records paged through by folio: the lines of a
// file or reader.
//
// A file [Source] can watch its file with fsnotify and reload on change. An
// optional CEL expression filters which file events trigger a reload; it has
// access to `op` (int, the event flags) and `file` (string, the event path).
package source
