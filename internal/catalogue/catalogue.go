// Package catalogue holds the two static lookup tables a feature
// extraction run needs but that are not themselves part of the engine's
// per-instance state: the recognised global-constraint names (so
// UpdateCons can tell "all_different_int" apart from a mere decomposed
// "int_ne" chain) and the bucket each one falls into.
//
// Grounded on the original static_features.cc's init_globals() table:
// a representative subset of MiniZinc's global-constraint library, not
// an exhaustive reproduction (spec Non-goals: "a hand-maintained
// complete global-constraint catalogue" is explicitly out of scope).
package catalogue

import "sync"

// Bucket names the gc_* sub-count a global constraint contributes to
// in the original feature extractor. mzfeat's own feature set (package
// feature) only tracks the two aggregate counters gc_global_cons and
// gc_diff_globs, but the bucket is kept alongside the name for any
// caller (the pp formatter, future feature additions) that wants the
// finer classification.
type Bucket string

const (
	BucketAllDiff      Bucket = "gc_all_diff"
	BucketAllEqual     Bucket = "gc_all_equal"
	BucketAmong        Bucket = "gc_among"
	BucketArrayInt     Bucket = "gc_array_int"
	BucketArraySet     Bucket = "gc_array_set"
	BucketAtLeastMost  Bucket = "gc_at_least_most"
	BucketBinPacking   Bucket = "gc_bin_packing"
	BucketBoolLin      Bucket = "gc_bool_lin"
	BucketCircuit      Bucket = "gc_circuit"
	BucketCount        Bucket = "gc_count"
	BucketCumulative   Bucket = "gc_cumulative"
	BucketDecrIncr     Bucket = "gc_decr_inc"
	BucketDiffn        Bucket = "gc_diffn"
	BucketDisjoint     Bucket = "gc_disjoint"
	BucketGlobalCard   Bucket = "gc_global_card"
	BucketLinkSet      Bucket = "gc_link_set"
	BucketInverse      Bucket = "gc_inverse"
	BucketMaxMinInt    Bucket = "gc_max_min_int"
	BucketMember       Bucket = "gc_member"
	BucketNvalue       Bucket = "gc_nvalue"
	BucketPrecede      Bucket = "gc_precede"
	BucketRange        Bucket = "gc_range"
	BucketRegular      Bucket = "gc_regular"
	BucketSchedule     Bucket = "gc_schedule"
	BucketSetWeights   Bucket = "gc_set_weights"
	BucketSort         Bucket = "gc_sort"
	BucketTable        Bucket = "gc_table"
)

var buildOnce = sync.OnceValue(buildGlobals)

func buildGlobals() map[string]Bucket {
	return map[string]Bucket{
		"all_different_int":                     BucketAllDiff,
		"all_equal_int":                         BucketAllEqual,
		"among":                                  BucketAmong,
		"among_seq_int":                         BucketAmong,
		"among_seq_bool":                        BucketAmong,
		"array_int_lt":                          BucketArrayInt,
		"array_int_lq":                          BucketArrayInt,
		"gecode_array_set_element_intersect":    BucketArraySet,
		"gecode_array_set_element_intersect_in": BucketArraySet,
		"gecode_array_set_element_partition":    BucketArraySet,
		"gecode_array_set_element_union":        BucketArraySet,
		"array_set_partition":                   BucketArraySet,
		"at_least_int":                          BucketAtLeastMost,
		"at_most_int":                           BucketAtLeastMost,
		"gecode_bin_packing_load":               BucketBinPacking,
		"bool_lin_eq":                           BucketBoolLin,
		"bool_lin_ne":                           BucketBoolLin,
		"bool_lin_le":                           BucketBoolLin,
		"bool_lin_lt":                           BucketBoolLin,
		"bool_lin_ge":                           BucketBoolLin,
		"bool_lin_gt":                           BucketBoolLin,
		"gecode_circuit":                        BucketCircuit,
		"gecode_circuit_cost":                   BucketCircuit,
		"gecode_circuit_cost_array":              BucketCircuit,
		"count":                                  BucketCount,
		"cumulatives":                            BucketCumulative,
		"decreasing_bool":                        BucketDecrIncr,
		"decreasing_int":                         BucketDecrIncr,
		"increasing_bool":                        BucketDecrIncr,
		"increasing_int":                         BucketDecrIncr,
		"gecode_nooverlap":                       BucketDiffn,
		"disjoint":                               BucketDisjoint,
		"global_cardinality":                     BucketGlobalCard,
		"global_cardinality_closed":              BucketGlobalCard,
		"global_cardinality_low_up":              BucketGlobalCard,
		"global_cardinality_low_up_closed":       BucketGlobalCard,
		"gecode_int_set_channel":                 BucketLinkSet,
		"gecode_link_set_to_booleans":            BucketLinkSet,
		"inverse_offsets":                        BucketInverse,
		"maximum_int":                            BucketMaxMinInt,
		"minimum_int":                            BucketMaxMinInt,
		"member_bool":                            BucketMember,
		"gecode_member_bool_reif":                BucketMember,
		"member_int":                             BucketMember,
		"gecode_member_int_reif":                 BucketMember,
		"nvalue":                                 BucketNvalue,
		"gecode_precede":                         BucketPrecede,
		"gecode_range":                           BucketRange,
		"regular":                                BucketRegular,
		"gecode_schedule_unary":                  BucketSchedule,
		"gecode_schedule_unary_optional":         BucketSchedule,
		"gecode_set_weights":                     BucketSetWeights,
		"sort":                                   BucketSort,
		"table_bool":                             BucketTable,
		"table_int":                              BucketTable,
		// FlatZinc builtin names for the same constraints, since
		// fznreader passes through whatever identifier the model file
		// uses and MiniZinc's own globals differ from Gecode's solver
		// extensions above in naming convention.
		"all_different_int_flatzinc": BucketAllDiff,
		"fzn_all_different_int":      BucketAllDiff,
		"fzn_among":                  BucketAmong,
		"fzn_count_eq":               BucketCount,
		"fzn_cumulative":             BucketCumulative,
		"fzn_table_int":              BucketTable,
		"fzn_global_cardinality":     BucketGlobalCard,
		"fzn_circuit":                BucketCircuit,
		"fzn_regular":                BucketRegular,
		"fzn_inverse":                BucketInverse,
		"fzn_sort":                   BucketSort,
	}
}

// Catalogue is the read-only, lazily-built global-constraint name table.
// The zero value is ready to use.
type Catalogue struct{}

// New returns a Catalogue. Construction is free: the underlying table is
// shared and built at most once process-wide via sync.OnceValue.
func New() Catalogue { return Catalogue{} }

// IsGlobal reports whether name is a recognised global constraint,
// satisfying engine.Catalogue.
func (Catalogue) IsGlobal(name string) bool {
	_, ok := buildOnce()[name]
	return ok
}

// BucketOf returns the classification bucket for name, or ("", false)
// if name is not in the table.
func (Catalogue) BucketOf(name string) (Bucket, bool) {
	b, ok := buildOnce()[name]
	return b, ok
}
