package fznreader

import "os"

// ReadFile loads path and feeds its declarations to sink via Read. The
// only error it can return is the filesystem read failure; everything
// the parser itself stumbles over is reported through Result.Warnings
// instead, so a CLI caller can still emit a partial feature row for a
// malformed model (spec §7's "never abort on bad input" philosophy,
// extended to the reader).
func ReadFile(path string, sink Sink) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Read(string(data), sink), nil
}
