// Package expr provides CEL (Common Expression Language) environments for
// evaluating paging policies and file event filters.
//
// Environments include the CEL math, strings and lists extensions and these
// additions:
//   - `UNLIMITED` (int): the totalRecords value of an unbounded record set
//   - `totalPages(rowsPerPage, totalRecords)` (int): number of pages, UNLIMITED
//     for an unbounded record set, or 0 when rowsPerPage is not set
//   - `pageOf(offset, rowsPerPage)` (int): the 1-based page holding offset
//   - `fs.CREATE`, `fs.WRITE`, `fs.REMOVE`, `fs.RENAME`, `fs.CHMOD` (int):
//     file event flags, tested with `op.has(fs.WRITE)`
//   - `pathBase(path)` and `pathExt(path)` (string)
//
// Variables are declared by the caller with [cel.Variable].
package expr
