package engine

import (
	"context"

	"github.com/katalvlaran/mzfeat/feature"
	"github.com/katalvlaran/mzfeat/fgraph"
	"github.com/katalvlaran/mzfeat/symtab"
)

// Finalize closes the feature row (spec §4.5): variable-level moment
// statistics over every declared scalar and array-element variable,
// constraint/global-constraint ratios, objective-variable features,
// and — unless the engine was built WithoutGraphFeatures — the two
// derived-graph metrics (spec §4.6), via the injected Analyser. It is
// not idempotent: a second call counts every variable into v_num_vars
// and the running moments again, so it is called exactly once.
func (e *Engine) Finalize(ctx context.Context) error {
	e.finalizeVariableMoments()
	e.finalizeRatios()
	e.finalizeConstraintMoments()
	e.finalizeObjective()

	if e.acc.HasGraphFeatures() {
		cg := fgraph.BuildCG(e.conVars)
		e.graphRes = e.analyser.Run(ctx, e.vg, cg, e.acc)
	}

	e.acc.ReleaseHistograms()
	e.finalized = true
	return nil
}

// finalizeVariableMoments implements spec §4.5 step 1: walk every
// declared name, classify it, and fold non-assigned scalar/array-element
// variables into the running dom/deg/domdeg moments. v_num_vars counts
// only non-array, non-assigned variables (array headers and constants
// are not "variables" for this count — spec §4.1's v_num_vars
// boundary scenario 2). Each such variable is also added as a VG vertex,
// so a variable no counted constraint references is an isolated vertex.
func (e *Engine) finalizeVariableMoments() {
	e.symtab.Range(func(name string, vi *symtab.VarInfo) {
		if vi.IsArray || vi.Assigned {
			return
		}
		e.acc.Inc("v_num_vars")
		e.vg.AddVertex(vi.ID)

		dom := vi.DomSize
		e.domVarsSum += dom
		e.domVarsSumSq += dom * dom
		e.domVarsN++
		e.acc.Observe("dom_vars", dom)
		e.acc.UpdateMin("v_min_dom_vars", dom)
		e.acc.UpdateMax("v_max_dom_vars", dom)

		deg := float64(vi.Degree)
		e.degVarsSum += deg
		e.degVarsSumSq += deg * deg
		e.acc.Observe("deg_vars", deg)
		e.acc.UpdateMin("v_min_deg_vars", deg)
		e.acc.UpdateMax("v_max_deg_vars", deg)

		if vi.Degree > 0 {
			domdeg := dom / deg
			e.domdegVarsSum += domdeg
			e.domdegVarsSumSq += domdeg * domdeg
			e.domdegVarsN++
			e.acc.Observe("domdeg_vars", domdeg)
			e.acc.UpdateMin("v_min_domdeg_vars", domdeg)
			e.acc.UpdateMax("v_max_domdeg_vars", domdeg)
		}
	})

	e.acc.ResolveMin("v_min_dom_vars")
	e.acc.ResolveMin("v_min_deg_vars")
	e.acc.ResolveMin("v_min_domdeg_vars")

	e.acc.Set("v_avg_dom_vars", feature.Mean(e.domVarsSum, e.domVarsN))
	e.acc.Set("v_cv_dom_vars", feature.CV(e.domVarsSum, e.domVarsSumSq, e.domVarsN))
	e.acc.Set("v_entropy_dom_vars", e.acc.Entropy("dom_vars"))

	e.acc.Set("v_avg_deg_vars", feature.Mean(e.degVarsSum, e.domVarsN))
	e.acc.Set("v_cv_deg_vars", feature.CV(e.degVarsSum, e.degVarsSumSq, e.domVarsN))
	e.acc.Set("v_entropy_deg_vars", e.acc.Entropy("deg_vars"))

	e.acc.Set("v_avg_domdeg_vars", feature.Mean(e.domdegVarsSum, e.domdegVarsN))
	e.acc.Set("v_cv_domdeg_vars", feature.CV(e.domdegVarsSum, e.domdegVarsSumSq, e.domdegVarsN))
	e.acc.Set("v_entropy_domdeg_vars", e.acc.Entropy("domdeg_vars"))
}

// finalizeConstraintMoments closes the per-constraint dom/deg/domdeg
// averages that UpdateCons accumulated incrementally into
// e.degConsSum/... (spec §4.3 step 5/§4.5 step 2). c_sum_dom_cons and
// c_logprod_dom_cons were already written directly by UpdateCons; only
// the avg/cv/entropy closures are deferred to here, matching the
// variable-side pattern above.
func (e *Engine) finalizeConstraintMoments() {
	numCons := e.acc.Get("c_num_cons")

	e.acc.ResolveMin("c_min_dom_cons")
	e.acc.ResolveMin("c_min_deg_cons")
	e.acc.ResolveMin("c_min_domdeg_cons")

	e.acc.Set("c_avg_dom_cons", feature.Mean(e.domConsSum, numCons))
	e.acc.Set("c_cv_dom_cons", feature.CV(e.domConsSum, e.domConsSumSq, numCons))
	e.acc.Set("c_entropy_dom_cons", e.acc.Entropy("dom_cons"))

	e.acc.Set("c_avg_deg_cons", feature.Mean(e.degConsSum, numCons))
	e.acc.Set("c_cv_deg_cons", feature.CV(e.degConsSum, e.degConsSumSq, numCons))
	e.acc.Set("c_entropy_deg_cons", e.acc.Entropy("deg_cons"))

	e.acc.Set("c_avg_domdeg_cons", feature.Mean(e.domdegConsSum, numCons))
	e.acc.Set("c_cv_domdeg_cons", feature.CV(e.domdegConsSum, e.domdegConsSumSq, numCons))
	e.acc.Set("c_entropy_domdeg_cons", e.acc.Entropy("domdeg_cons"))
}

// finalizeRatios implements spec §4.5 step 3: every d_ratio_*/gc_ratio_*
// feature is a SafeDiv of a running count by its matching total.
func (e *Engine) finalizeRatios() {
	numVars := e.acc.Get("v_num_vars")
	for _, kind := range []string{"bool", "int", "float", "set"} {
		e.acc.Set("d_ratio_"+kind+"_vars", feature.SafeDiv(e.acc.Get("d_"+kind+"_vars"), numVars))
	}

	numConsClassified := e.acc.Get("d_array_cons") + e.acc.Get("d_bool_cons") +
		e.acc.Get("d_float_cons") + e.acc.Get("d_int_cons") + e.acc.Get("d_set_cons")
	for _, kind := range []string{"array", "bool", "float", "int", "set"} {
		e.acc.Set("d_ratio_"+kind+"_cons", feature.SafeDiv(e.acc.Get("d_"+kind+"_cons"), numConsClassified))
	}

	numCons := e.acc.Get("c_num_cons")
	total := numVars + numCons
	e.acc.Set("v_ratio_vars", feature.SafeDiv(numVars, total))
	e.acc.Set("c_ratio_cons", feature.SafeDiv(numCons, total))

	numAliases := e.acc.Get("v_num_aliases")
	numConsts := e.acc.Get("v_num_consts")
	e.acc.Set("v_ratio_bounded", feature.SafeDiv(numAliases+numConsts, numVars+numAliases+numConsts))

	globalCons := e.acc.Get("gc_global_cons")
	diffGlobs := e.acc.Get("gc_diff_globs")
	e.acc.Set("gc_ratio_globs", feature.SafeDiv(globalCons, numCons))
	e.acc.Set("gc_ratio_diff", feature.SafeDiv(diffGlobs, globalCons))
}

// finalizeObjective implements spec §4.5 step 4: the o_* features are
// only meaningful when the solve goal is minimize/maximize (s_goal>1)
// and the objective variable named by SetObjectiveVariable resolves to
// a real, non-assigned variable. Otherwise they stay at their 0.0
// default, per spec §8's "satisfy-only model" boundary scenario.
func (e *Engine) finalizeObjective() {
	if e.acc.Get("s_goal") <= 1 || e.objectiveName == "" {
		return
	}
	vi := e.symtab.Lookup(e.objectiveName)
	if vi.Alias != nil {
		vi = vi.Alias
	}
	if vi.ID < 0 {
		e.warnf("InvariantViolation", "objective variable %q does not resolve to a declared variable", e.objectiveName)
		return
	}

	avgDom := e.acc.Get("v_avg_dom_vars")
	stdDom := feature.StdDev(e.domVarsSum, e.domVarsSumSq, e.domVarsN)
	avgDeg := e.acc.Get("v_avg_deg_vars")
	stdDeg := feature.StdDev(e.degVarsSum, e.degVarsSumSq, e.domVarsN)

	e.acc.Set("o_dom", vi.DomSize)
	e.acc.Set("o_deg", float64(vi.Degree))
	e.acc.Set("o_dom_avg", feature.SafeDiv(vi.DomSize, avgDom))
	e.acc.Set("o_dom_std", feature.SafeDiv(vi.DomSize-avgDom, stdDom))
	e.acc.Set("o_deg_avg", feature.SafeDiv(float64(vi.Degree), avgDeg))
	e.acc.Set("o_deg_std", feature.SafeDiv(float64(vi.Degree)-avgDeg, stdDeg))
	if vi.Degree > 0 {
		e.acc.Set("o_dom_deg", vi.DomSize/float64(vi.Degree))
	}
	e.acc.Set("o_deg_cons", feature.SafeDiv(float64(vi.Degree), e.acc.Get("c_num_cons")))
}
