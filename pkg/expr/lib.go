package expr

import (
	"math"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/ast"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"github.com/google/cel-go/ext"
)

// Unlimited mirrors the paginator's unbounded totalRecords value.
const Unlimited = -1

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Math(),
		ext.Strings(),
		ext.Lists(),

		cel.Constant("UNLIMITED", types.IntType, types.Int(Unlimited)),

		cel.Constant("fs.CREATE", types.IntType, types.Int(fsnotify.Create)),
		cel.Constant("fs.REMOVE", types.IntType, types.Int(fsnotify.Remove)),
		cel.Constant("fs.WRITE", types.IntType, types.Int(fsnotify.Write)),
		cel.Constant("fs.RENAME", types.IntType, types.Int(fsnotify.Rename)),
		cel.Constant("fs.CHMOD", types.IntType, types.Int(fsnotify.Chmod)),

		// `totalPages` returns the number of pages.
		// Example: proposed.page <= totalPages(proposed.rowsPerPage, proposed.totalRecords).
		cel.Function("totalPages",
			cel.Overload("total_pages_int_int", []*cel.Type{cel.IntType, cel.IntType}, cel.IntType,
				cel.BinaryBinding(func(rpp, total ref.Val) ref.Val {
					r, ok := rpp.Value().(int64)
					if !ok {
						return types.NewErr("totalPages: invalid rowsPerPage")
					}

					t, ok := total.Value().(int64)
					if !ok {
						return types.NewErr("totalPages: invalid totalRecords")
					}

					return types.Int(TotalPages(r, t))
				}),
			),
		),

		// `pageOf` returns the page holding a record offset.
		// Example: pageOf(proposed.recordOffset, proposed.rowsPerPage) == proposed.page.
		cel.Function("pageOf",
			cel.Overload("page_of_int_int", []*cel.Type{cel.IntType, cel.IntType}, cel.IntType,
				cel.BinaryBinding(func(offset, rpp ref.Val) ref.Val {
					o, ok := offset.Value().(int64)
					if !ok {
						return types.NewErr("pageOf: invalid offset")
					}

					r, ok := rpp.Value().(int64)
					if !ok {
						return types.NewErr("pageOf: invalid rowsPerPage")
					}

					if r <= 0 || o < 0 {
						return types.Int(0)
					}

					return types.Int(o/r + 1)
				}),
			),
		),

		// `has` macro and function for checking if a file event has specific
		// flags.
		// Example: op.has(fs.CREATE).
		// Example: op.has(fs.CREATE, fs.RENAME, fs.REMOVE).
		cel.Macros(
			cel.ReceiverVarArgMacro("has", hasVarArgMacro),
		),
		cel.Function("@has",
			cel.Overload("@has_int_int", []*cel.Type{cel.IntType, cel.IntType}, cel.BoolType,
				cel.BinaryBinding(func(event, flag ref.Val) ref.Val {
					eventValue, errVal := toOp(event)
					if errVal != nil {
						return errVal
					}

					flagValue, errVal := toOp(flag)
					if errVal != nil {
						return errVal
					}

					return types.Bool(eventValue.Has(flagValue))
				}),
			),
			cel.Overload("@has_int_list_int", []*cel.Type{cel.IntType, cel.ListType(cel.IntType)}, cel.BoolType,
				cel.BinaryBinding(func(event, flags ref.Val) ref.Val {
					eventValue, errVal := toOp(event)
					if errVal != nil {
						return errVal
					}

					flagsList, ok := flags.(traits.Lister)
					if !ok {
						return types.NewErr("has: invalid flags list")
					}

					flagSize, ok := flagsList.Size().(types.Int)
					if !ok {
						return types.NewErr("has: invalid flags list size")
					}

					// True if the event has any of the flags.
					for i := range flagSize {
						flagValue, errVal := toOp(flagsList.Get(i))
						if errVal != nil {
							return errVal
						}

						if eventValue.Has(flagValue) {
							return types.True
						}
					}

					return types.False
				}),
			),
		),

		// `pathBase` returns the last element of the path.
		// Example: pathBase(file) == "records.txt".
		cel.Function("pathBase",
			cel.Overload("path_base", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(path ref.Val) ref.Val {
					pathValue, ok := path.Value().(string)
					if !ok {
						return types.NewErr("pathBase: invalid string value")
					}

					return types.String(filepath.Base(pathValue))
				}),
			),
		),

		// `pathExt` returns the file extension of the path.
		// Example: pathExt(file) in [".log", ".txt"].
		cel.Function("pathExt",
			cel.Overload("path_ext", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(path ref.Val) ref.Val {
					pathValue, ok := path.Value().(string)
					if !ok {
						return types.NewErr("pathExt: invalid string value")
					}

					return types.String(filepath.Ext(pathValue))
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

// TotalPages returns the number of pages for the given rows per page and
// total records, [Unlimited] for an unbounded record set, or 0 when
// rowsPerPage is not positive.
func TotalPages(rowsPerPage, totalRecords int64) int64 {
	switch {
	case rowsPerPage <= 0:
		return 0
	case totalRecords == Unlimited:
		return Unlimited
	case totalRecords <= 0:
		return 0
	}

	return (totalRecords + rowsPerPage - 1) / rowsPerPage
}

//nolint:ireturn // Following CEL's function signature.
func toOp(v ref.Val) (fsnotify.Op, ref.Val) {
	i, ok := v.Value().(int64)
	if !ok {
		return 0, types.NewErr("has: invalid flag value")
	}

	if i < 0 || i > math.MaxUint32 {
		return 0, types.NewErr("has: flag value out of range")
	}

	return fsnotify.Op(i), nil //nolint:gosec // G115: range checked above.
}

//nolint:ireturn // Following CEL's function signature.
func hasVarArgMacro(meh cel.MacroExprFactory, target ast.Expr, args []ast.Expr) (ast.Expr, *cel.Error) {
	switch len(args) {
	case 0:
		return nil, meh.NewError(target.ID(), "has() requires at least one argument")
	case 1:
		return meh.NewCall("@has", target, args[0]), nil
	default:
		return meh.NewCall("@has", target, meh.NewList(args...)), nil
	}
}
