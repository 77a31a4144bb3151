package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mzfeat/expr"
	"github.com/katalvlaran/mzfeat/symtab"
)

// stubCatalogue treats names is a fixed set as global constraints, for
// tests that need gc_* counters to move.
type stubCatalogue map[string]bool

func (c stubCatalogue) IsGlobal(name string) bool { return c[name] }

func TestEmptyModelFinalizesWithZeroedFeatures(t *testing.T) {
	e := New()
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 0.0, feats["v_num_vars"])
	assert.Equal(t, 0.0, feats["c_num_cons"])
	assert.Equal(t, 0.0, feats["v_min_dom_vars"], "unseeded running-min resolves to 0, not +Inf")
	assert.Equal(t, 0.0, feats["v_ratio_vars"], "0/0 ratio guards to 0 rather than NaN")
	assert.False(t, e.GraphAnalysisTimedOut())
}

func TestSingleBooleanVariableNoConstraints(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("b", symtab.KindBool, 2, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 1.0, feats["v_num_vars"])
	assert.Equal(t, 1.0, feats["d_bool_vars"])
	assert.Equal(t, 2.0, feats["v_min_dom_vars"])
	assert.Equal(t, 2.0, feats["v_max_dom_vars"])
	assert.Equal(t, 2.0, feats["v_avg_dom_vars"])
	assert.Equal(t, 0.0, feats["v_cv_dom_vars"], "a single sample has zero spread")
	assert.Equal(t, 0.0, feats["v_min_deg_vars"], "an unreferenced variable has degree 0")
}

func TestTwoIntVarsWithEqConstraint(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateVariable("y", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateCons([]expr.Value{
		expr.String("int_eq"), expr.String("x"), expr.String("y"),
	}, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 2.0, feats["v_num_vars"])
	assert.Equal(t, 1.0, feats["c_num_cons"])
	assert.Equal(t, 1.0, feats["d_int_cons"])
	assert.Equal(t, 1.0, feats["v_min_deg_vars"], "both variables are referenced exactly once")
	assert.Equal(t, 1.0, feats["v_max_deg_vars"])
	assert.True(t, e.vg.HasEdge(0, 1), "a binary constraint inserts exactly one VG edge")
}

func TestArrayAllDifferentWithMinimize(t *testing.T) {
	e := New(WithCatalogue(stubCatalogue{"all_different": true}))
	require.NoError(t, e.UpdateVarArray("a", 1, 3, symtab.KindInt, 5, nil))
	require.NoError(t, e.UpdateCons([]expr.Value{
		expr.String("all_different"), expr.String("a"),
	}, nil))
	require.NoError(t, e.SetObjectiveVariable("a[1]"))
	require.NoError(t, e.SetSolveGoal(2, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 3.0, feats["v_num_vars"], "three synthesized array elements")
	assert.Equal(t, 1.0, feats["c_num_cons"])
	assert.Equal(t, 1.0, feats["gc_global_cons"])
	assert.Equal(t, 1.0, feats["gc_diff_globs"])
	assert.Equal(t, 1.0, feats["v_min_deg_vars"], "each element is referenced by the one all_different constraint")
	assert.Equal(t, 2.0, feats["s_goal"])
	assert.Equal(t, 5.0, feats["o_dom"])
	assert.Equal(t, 1.0, feats["o_deg"])
}

func TestAliasClusterCountsOneVariableAndOneAlias(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateAssignedVariable("y", symtab.KindInt, 10, expr.String("x"), nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 1.0, feats["v_num_vars"], "the alias itself is not counted as a variable")
	assert.Equal(t, 1.0, feats["v_num_aliases"])
	assert.Equal(t, 0.5, feats["v_ratio_bounded"], "one alias against one real variable plus itself")
}

func TestAliasChainCollapsesForConstraintDegree(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateAssignedVariable("y", symtab.KindInt, 10, expr.String("x"), nil))
	require.NoError(t, e.UpdateAssignedVariable("z", symtab.KindInt, 10, expr.String("y"), nil))
	require.NoError(t, e.UpdateCons([]expr.Value{
		expr.String("int_eq"), expr.String("z"), expr.String("z"),
	}, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 1.0, feats["v_min_deg_vars"], "both z references collapse onto x through the alias chain")
	assert.Equal(t, 2.0, feats["v_num_aliases"], "y and z are both aliases")
}

func TestDegreeZeroConstraintIsSkippedAndWarned(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateCons([]expr.Value{
		expr.String("int_eq"), expr.Int(1), expr.Int(1),
	}, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 0.0, feats["c_num_cons"], "a constraint touching no variable is not counted")
}

func TestSearchAnnotationCountsDistinctLabelledVars(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateVariable("y", symtab.KindInt, 10, nil))

	search := expr.Array(
		expr.String("int_search"),
		expr.Array(expr.String("x"), expr.String("x"), expr.String("y")),
		expr.String("first_fail"),
		expr.String("indomain_min"),
	)
	require.NoError(t, e.SetSolveGoal(1, &search))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.Equal(t, 2.0, feats["s_labelled_vars"], "x is named twice but counted once")
	assert.Equal(t, 1.0, feats["s_first_fail"])
	assert.Equal(t, 1.0, feats["s_indomain_min"])
}

func TestSeqSearchRecursesIntoSubAnnotations(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindBool, 2, nil))
	require.NoError(t, e.UpdateVariable("y", symtab.KindInt, 10, nil))

	search := expr.Array(
		expr.String("seq_search"),
		expr.Array(
			expr.String("bool_search"),
			expr.String("x"),
			expr.String("input_order"),
			expr.String("indomain_min"),
		),
		expr.Array(
			expr.String("int_search"),
			expr.String("y"),
			expr.String("first_fail"),
			expr.String("indomain_max"),
		),
	)
	require.NoError(t, e.SetSolveGoal(3, &search))

	feats := e.Features()
	assert.Equal(t, 1.0, feats["s_input_order"])
	assert.Equal(t, 1.0, feats["s_first_fail"])
	assert.Equal(t, 1.0, feats["s_indomain_min"])
	assert.Equal(t, 1.0, feats["s_indomain_max"])
	assert.Equal(t, 2.0, feats["s_labelled_vars"])
}

func TestVNumVarsEqualsSumOfKindCounters(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("b", symtab.KindBool, 2, nil))
	require.NoError(t, e.UpdateVariable("i", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateVarArray("f", 1, 2, symtab.KindFloat, 1, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	sum := feats["d_bool_vars"] + feats["d_int_vars"] + feats["d_float_vars"] + feats["d_set_vars"]
	assert.Equal(t, feats["v_num_vars"], sum)
	assert.Equal(t, 1.0, feats["d_ratio_bool_vars"]*feats["v_num_vars"])
}

func TestMinNeverExceedsAvgNeverExceedsMax(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("a", symtab.KindInt, 3, nil))
	require.NoError(t, e.UpdateVariable("b", symtab.KindInt, 7, nil))
	require.NoError(t, e.UpdateVariable("c", symtab.KindInt, 11, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.LessOrEqual(t, feats["v_min_dom_vars"], feats["v_avg_dom_vars"])
	assert.LessOrEqual(t, feats["v_avg_dom_vars"], feats["v_max_dom_vars"])
	assert.GreaterOrEqual(t, feats["v_cv_dom_vars"], 0.0)
}

func TestVGEdgeInsertionIsIdempotentAcrossConstraints(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateVariable("y", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateCons([]expr.Value{expr.String("int_eq"), expr.String("x"), expr.String("y")}, nil))
	require.NoError(t, e.UpdateCons([]expr.Value{expr.String("int_ne"), expr.String("x"), expr.String("y")}, nil))

	assert.Equal(t, 1, e.vg.EdgeCount(), "repeated pairing across constraints still yields one VG edge")
}

func TestFinalizeRunsGraphAnalysisAndExposesTimeoutFlag(t *testing.T) {
	e := New()
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateVariable("y", symtab.KindInt, 10, nil))
	require.NoError(t, e.UpdateCons([]expr.Value{expr.String("int_eq"), expr.String("x"), expr.String("y")}, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	assert.NotEqual(t, -1.0, feats["gr_vg_min_deg"], "graph features are computed for a non-empty VG")
	assert.False(t, e.GraphAnalysisTimedOut())
}

func TestWithoutGraphFeaturesSkipsAnalyserEntirely(t *testing.T) {
	e := New(WithoutGraphFeatures())
	require.NoError(t, e.UpdateVariable("x", symtab.KindInt, 10, nil))
	require.NoError(t, e.Finalize(context.Background()))

	feats := e.Features()
	_, present := feats["gr_vg_min_deg"]
	assert.False(t, present, "the no-graph accumulator never carries gr_* keys")
	assert.False(t, e.GraphAnalysisTimedOut())
}
