// Package engine implements the event interpreter (spec §2 component 4,
// §4.2-§4.5): the methods the parser calls, in order, for every
// declaration of a FlatZinc-style model, incrementally maintaining a
// symbol table, a feature accumulator, and the two derived graphs, and
// finally closing everything into the finished, read-only feature row.
//
// Mirrors the teacher's (lvlath) per-operation method style in
// core/methods.go: validate first, mutate under clearly labeled stages,
// return a wrapped sentinel error rather than panic.
package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/mzfeat/expr"
	"github.com/katalvlaran/mzfeat/feature"
	"github.com/katalvlaran/mzfeat/fgraph"
	"github.com/katalvlaran/mzfeat/symtab"
)

// Catalogue reports whether a constraint name is a recognised global
// constraint (spec §4.3 step 1). Implemented by internal/catalogue;
// declared here, not imported from there, to avoid a dependency from
// the core engine onto a concrete data table — any catalogue
// implementation satisfying this interface can be injected via
// WithCatalogue.
type Catalogue interface {
	IsGlobal(name string) bool
}

type nopCatalogue struct{}

func (nopCatalogue) IsGlobal(string) bool { return false }

// Engine is the streaming interpreter. One Engine extracts the feature
// row for exactly one model instance; construct a fresh Engine per
// instance.
type Engine struct {
	symtab    *symtab.Table
	acc       *feature.Accumulator
	catalogue Catalogue
	logger    logrus.FieldLogger
	analyser  *fgraph.Analyser

	vg            *fgraph.Graph
	nextConID     int
	conVars       map[int][]int // constraint id -> sorted variable ids, for CG construction
	seenGlobals   map[string]bool
	objectiveName string
	labelled      map[int]bool

	// Internal running moments not directly exposed as accumulator keys
	// (the accumulator's key set is fixed to the observable feature set;
	// these are scratch state for the finaliser).
	domVarsSum, domVarsSumSq, domVarsN          float64
	degVarsSum, degVarsSumSq                    float64
	domdegVarsSum, domdegVarsSumSq, domdegVarsN float64
	domConsSum, domConsSumSq                    float64
	degConsSum, degConsSumSq                    float64
	domdegConsSum, domdegConsSumSq              float64

	finalized bool
	graphRes  fgraph.Result
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithCatalogue injects the global-constraint name table.
func WithCatalogue(cat Catalogue) Option {
	return func(e *Engine) { e.catalogue = cat }
}

// WithGraphTimeout overrides the per-metric wall-clock budget used by
// the graph analyser (spec §4.6, default 2s).
func WithGraphTimeout(an *fgraph.Analyser) Option {
	return func(e *Engine) { e.analyser = an }
}

// WithoutGraphFeatures builds the accumulator without the 20 gr_* keys
// (CLI's --no-graph mode) and skips graph analysis entirely at Finalize.
func WithoutGraphFeatures() Option {
	return func(e *Engine) { e.acc = feature.NewNoGraph() }
}

// New constructs an Engine ready to receive the parser's declaration
// sequence (spec §6 parser contract).
func New(opts ...Option) *Engine {
	e := &Engine{
		symtab:      symtab.New(),
		acc:         feature.New(),
		catalogue:   nopCatalogue{},
		logger:      logrus.StandardLogger(),
		analyser:    fgraph.NewAnalyser(),
		vg:          fgraph.NewGraph(),
		conVars:     make(map[int][]int),
		seenGlobals: make(map[string]bool),
		labelled:    make(map[int]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Features returns a read-only snapshot of the feature map. Valid only
// after Finalize has returned; calling it earlier returns whatever
// partial state has accumulated so far (never an error — spec §7: "no
// error is propagated through the feature accumulator").
func (e *Engine) Features() map[string]float64 {
	return e.acc.Snapshot()
}

// SortedKeys returns every feature key in lexicographic order, the
// fixed column order every output format renders in.
func (e *Engine) SortedKeys() []string {
	return e.acc.SortedKeys()
}

// GraphAnalysisTimedOut reports whether the graph analyser (if it ran)
// stopped early due to a per-metric timeout (spec §4.6/§6: CLI exit
// code 8).
func (e *Engine) GraphAnalysisTimedOut() bool {
	return e.finalized && e.graphRes.TimedOut
}

func (e *Engine) warnf(kind string, format string, args ...interface{}) {
	e.logger.WithField("kind", kind).Warn(fmt.Sprintf(format, args...))
}
