// Package mzfeat extracts a fixed vector of structural and statistical
// features from a FlatZinc-style constraint model, for use as a
// training signal by search/solver-portfolio selectors.
//
// What is mzfeat?
//
//	A single-pass, streaming feature extractor that brings together:
//
//	  • A parser-facing event interface (engine): variable, array,
//	    constraint, and solve-goal declarations accumulate directly
//	    into running statistics, never materialising the model itself.
//	  • Two derived graphs (fgraph): the variable graph and the
//	    constraint graph, analysed for degree/diameter/clustering
//	    under a per-metric wall-clock budget.
//	  • A tagged expression value (expr) and an alias-resolving symbol
//	    table (symtab) underlying both.
//
// Why mzfeat?
//
//   - Streaming    — one pass over the declaration sequence, no
//     intermediate AST retained past the statistics it feeds.
//   - Partial-on-failure — a graph-analysis timeout or a malformed
//     input line never aborts extraction; the feature row degrades
//     gracefully instead.
//   - Small core — expr, symtab and feature use only the standard
//     library; engine and fgraph add logrus for warnings; CLI/config
//     concerns pull in the rest.
//
// Everything is organized under a handful of packages:
//
//	expr/            — the tagged constraint-value union (int/bool/
//	                   float/set/array/ident) shared by the reader,
//	                   symbol table, and engine.
//	symtab/          — variable/array/alias bookkeeping with domain
//	                   size and const-folding.
//	feature/         — the accumulator: keys, running moments,
//	                   histograms, entropy.
//	engine/          — the event interpreter that drives feature/ and
//	                   fgraph/ from a declaration sequence.
//	fgraph/          — the derived variable/constraint graphs and
//	                   their degree/diameter/clustering analysis.
//	internal/catalogue/ — the recognised global-constraint name table.
//	internal/fznreader/ — a narrow FlatZinc-subset reader feeding engine.
//	internal/output/    — csv/dict/pp feature-row formatters.
//	internal/config/    — optional mzfeat.yaml CLI defaults.
//	cmd/mzfeat/         — the extract CLI.
package mzfeat
