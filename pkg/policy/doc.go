// Package policy decides whether a requested paginator state change is
// applied, by evaluating CEL (Common Expression Language) rules.
//
// Rules have access to two variables, `proposed` and `before`, each a map
// with the int fields `page`, `rowsPerPage`, `totalRecords` and
// `recordOffset`. See package expr for the available functions.
package policy
