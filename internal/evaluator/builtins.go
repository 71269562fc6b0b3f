package evaluator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/variant"
)

// NewGlobalEnv builds the top-level environment: the variant and trampoline
// intrinsics closed over the registry, the general-purpose builtins, and
// the trampoline flag for code that runs outside any function.
func NewGlobalEnv(reg *variant.Registry) *Environment {
	return NewGlobalEnvWithOutput(reg, os.Stdout)
}

// NewGlobalEnvWithOutput routes print output to w. Tests use a buffer.
func NewGlobalEnvWithOutput(reg *variant.Registry, w io.Writer) *Environment {
	env := NewEnvironment()
	env.Set(config.TcoActiveName, FALSE)

	env.Set(config.AdtNewFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) < 1 {
			return newError(line, col, "%s needs a constructor name", config.AdtNewFuncName)
		}
		name, ok := args[0].(*String)
		if !ok {
			return newError(line, col, "%s: constructor name must be a string", config.AdtNewFuncName)
		}
		ctor, ok := reg.LookupConstructor(name.Value)
		if !ok {
			return newError(line, col, "unknown constructor %s", name.Value)
		}
		fields := make([]interface{}, len(args)-1)
		for i, a := range args[1:] {
			fields[i] = a
		}
		val, err := variant.New(ctor, fields...)
		if err != nil {
			return newError(line, col, "%s", err)
		}
		return &Data{Value: val}
	}})

	env.Set(config.AdtIsFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) != 2 {
			return newError(line, col, "%s takes a value and a constructor name", config.AdtIsFuncName)
		}
		name, ok := args[1].(*String)
		if !ok {
			return newError(line, col, "%s: constructor name must be a string", config.AdtIsFuncName)
		}
		d, ok := args[0].(*Data)
		if !ok {
			return FALSE
		}
		return nativeBool(d.Value.Is(name.Value))
	}})

	env.Set(config.AdtTagFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		d, err := dataArg(config.AdtTagFuncName, line, col, args)
		if err != nil {
			return err
		}
		return &Integer{Value: int64(d.Value.TagID())}
	}})

	env.Set(config.AdtFieldFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) != 2 {
			return newError(line, col, "%s takes a value and a field index", config.AdtFieldFuncName)
		}
		d, ok := args[0].(*Data)
		if !ok {
			return newError(line, col, "%s: not a data value: %s", config.AdtFieldFuncName, args[0].Type())
		}
		idx, ok := args[1].(*Integer)
		if !ok {
			return newError(line, col, "%s: field index must be an integer", config.AdtFieldFuncName)
		}
		field, err := d.Value.Field(int(idx.Value))
		if err != nil {
			return newError(line, col, "%s", err)
		}
		return field.(Object)
	}})

	env.Set(config.MatchFailName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		msg := "match failed"
		if len(args) == 1 {
			if s, ok := args[0].(*String); ok {
				msg = s.Value
			}
		}
		return newError(line, col, "%s", msg)
	}})

	env.Set(config.TcoCallFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) < 1 {
			return newError(line, col, "%s needs a target function", config.TcoCallFuncName)
		}
		return &TcoMarker{Target: args[0], Args: args[1:]}
	}})

	env.Set(config.TcoIsFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) != 1 {
			return newError(line, col, "%s takes one argument", config.TcoIsFuncName)
		}
		_, ok := args[0].(*TcoMarker)
		return nativeBool(ok)
	}})

	env.Set(config.TcoInvokeFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		m, err := markerArg(config.TcoInvokeFuncName, line, col, args)
		if err != nil {
			return err
		}
		return applyWithMode(m.Target, m.Args, true, line, col)
	}})

	env.Set(config.TcoTargetFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		m, err := markerArg(config.TcoTargetFuncName, line, col, args)
		if err != nil {
			return err
		}
		return m.Target
	}})

	env.Set(config.TcoArgFuncName, &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) != 2 {
			return newError(line, col, "%s takes a marker and an index", config.TcoArgFuncName)
		}
		m, ok := args[0].(*TcoMarker)
		if !ok {
			return newError(line, col, "%s: not a tail-call marker", config.TcoArgFuncName)
		}
		idx, ok := args[1].(*Integer)
		if !ok || idx.Value < 0 || int(idx.Value) >= len(m.Args) {
			return newError(line, col, "%s: argument index out of range", config.TcoArgFuncName)
		}
		return m.Args[idx.Value]
	}})

	env.Set("print", &Builtin{Fn: func(line, col int, args ...Object) Object {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.Inspect()
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return NIL
	}})

	env.Set("len", &Builtin{Fn: func(line, col int, args ...Object) Object {
		if len(args) != 1 {
			return newError(line, col, "len takes one argument")
		}
		switch a := args[0].(type) {
		case *String:
			return &Integer{Value: int64(len(a.Value))}
		case *Data:
			return &Integer{Value: int64(a.Value.Arity())}
		default:
			return newError(line, col, "len not supported for %s", args[0].Type())
		}
	}})

	return env
}

func dataArg(name string, line, col int, args []Object) (*Data, *Error) {
	if len(args) != 1 {
		return nil, newError(line, col, "%s takes one argument", name)
	}
	d, ok := args[0].(*Data)
	if !ok {
		return nil, newError(line, col, "%s: not a data value: %s", name, args[0].Type())
	}
	return d, nil
}

func markerArg(name string, line, col int, args []Object) (*TcoMarker, *Error) {
	if len(args) != 1 {
		return nil, newError(line, col, "%s takes one argument", name)
	}
	m, ok := args[0].(*TcoMarker)
	if !ok {
		return nil, newError(line, col, "%s: not a tail-call marker", name)
	}
	return m, nil
}
