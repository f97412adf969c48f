package compiler

import (
	"github.com/dop251/goja/parser"
	"go.uber.org/zap"
)

// Dialect selects how strictly the engine treats the scenario source.
type Dialect int

const (
	// DialectJS is the default ECMAScript parse.
	DialectJS Dialect = iota
	// DialectJSRelaxed tolerates regexp constructs the engine cannot
	// compile, deferring the failure to first use.
	DialectJSRelaxed
)

// Engine is the external source-to-executable transpiler the adapter
// delegates to. The adapter only controls what is fed in.
type Engine interface {
	Lower(filename, src string, dialect Dialect) (string, error)
}

// GojaEngine lowers source through the goja ECMAScript parser. The output
// is directly executable by the same engine, so lowering is verification.
type GojaEngine struct{}

func (GojaEngine) Lower(filename, src string, dialect Dialect) (string, error) {
	mode := parser.Mode(0)
	if dialect == DialectJSRelaxed {
		mode |= parser.IgnoreRegExpErrors
	}
	if _, err := parser.ParseFile(nil, filename, src, mode); err != nil {
		return "", err
	}
	return src, nil
}

// LoweredSource is canonical source the engine has accepted, ready for
// scope binding.
type LoweredSource struct {
	Text       string
	CallTarget string
}

// Adapter hands canonical source to the configured engine and classifies
// failures: a missing engine is a host misconfiguration, a parse failure is
// a problem with the submitted source.
type Adapter struct {
	engine  Engine
	dialect Dialect
}

func NewAdapter(engine Engine, dialect Dialect) *Adapter {
	return &Adapter{engine: engine, dialect: dialect}
}

// DefaultAdapter returns an adapter backed by the embedded goja engine.
func DefaultAdapter() *Adapter {
	return NewAdapter(GojaEngine{}, DialectJS)
}

func (a *Adapter) Lower(canon *CanonicalSource) (*LoweredSource, error) {
	if a == nil || a.engine == nil {
		return nil, ErrTranspilerUnavailable
	}
	lowered, err := a.engine.Lower("scenario.js", canon.Text, a.dialect)
	if err != nil {
		Logger().Debug("transpilation failed",
			zap.String("source", canon.Text),
			zap.Error(err))
		return nil, &SyntaxError{Source: canon.Text, Wrapped: err}
	}
	return &LoweredSource{Text: lowered, CallTarget: canon.CallTarget}, nil
}
