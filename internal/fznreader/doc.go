// Package fznreader implements a narrow reader for the declaration
// shapes engine.Engine actually consumes: var/array/constraint/solve
// statements, in the textual form MiniZinc's `mzn2fzn` emits. It is
// explicitly not a general FlatZinc grammar — predicate signatures are
// skipped, annotations beyond the ones engine reads are parsed but
// otherwise passed through opaquely, characters the tokenizer does not
// recognise are dropped without a warning, and a statement the parser
// cannot read becomes a Warning rather than a fatal error, mirroring
// the "no error is propagated through the feature accumulator" stance
// of the engine itself.
package fznreader
