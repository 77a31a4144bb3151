package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/mzfeat/expr"
)

var boundsDomainTags = []string{"bounds", "boundsZ", "boundsR", "boundsD", "domain"}

// decompositionCategories are the five buckets a non-global constraint
// name is classified into by the prefix before its first underscore
// (spec §4.3 step 1).
var decompositionCategories = map[string]bool{
	"array": true, "bool": true, "float": true, "int": true, "set": true,
}

// UpdateCons ingests one constraint declaration: params[0] must be the
// constraint name (a String), params[1:] are its arguments, and anns is
// its annotation list (spec §4.3).
func (e *Engine) UpdateCons(params []expr.Value, anns []expr.Value) error {
	if len(params) == 0 || params[0].Kind() != expr.KindString {
		e.warnf("InvariantViolation", "constraint declaration missing a name")
		return nil
	}
	name := params[0].AsString()
	args := params[1:]

	e.classifyConstraintName(name)
	e.scanConstraintAnnotations(anns)

	conVars := make(map[int]struct{})
	var dom float64
	for _, arg := range args {
		for _, varName := range e.expandArgument(arg) {
			e.updateCons(varName, conVars, &dom)
		}
	}

	deg := len(conVars)
	if deg == 0 {
		e.warnf("DegreeZero", "constraint %q references no variables, skipping", name)
		return nil
	}

	e.acc.Inc("c_num_cons")
	e.acc.Add("c_sum_dom_cons", dom)
	e.acc.Observe("dom_cons", dom)
	e.acc.UpdateMin("c_min_dom_cons", dom)
	e.acc.UpdateMax("c_max_dom_cons", dom)
	e.domConsSum += dom
	e.domConsSumSq += dom * dom
	if dom > 0 {
		e.acc.Add("c_logprod_dom_cons", math.Log2(dom))
	}

	e.acc.Add("c_sum_ari_cons", float64(len(args)))

	degF := float64(deg)
	e.degConsSum += degF
	e.degConsSumSq += degF * degF
	e.acc.Observe("deg_cons", degF)
	e.acc.UpdateMin("c_min_deg_cons", degF)
	e.acc.UpdateMax("c_max_deg_cons", degF)
	e.acc.Add("c_logprod_deg_cons", math.Log2(degF))

	domdeg := dom / degF
	e.domdegConsSum += domdeg
	e.domdegConsSumSq += domdeg * domdeg
	e.acc.Observe("domdeg_cons", domdeg)
	e.acc.UpdateMin("c_min_domdeg_cons", domdeg)
	e.acc.UpdateMax("c_max_domdeg_cons", domdeg)

	e.recordConstraintGraphEdges(conVars)
	return nil
}

func (e *Engine) classifyConstraintName(name string) {
	if e.catalogue.IsGlobal(name) {
		e.acc.Inc("gc_global_cons")
		if !e.seenGlobals[name] {
			e.seenGlobals[name] = true
			e.acc.Inc("gc_diff_globs")
		}
		return
	}
	prefix := name
	if idx := strings.IndexByte(name, '_'); idx >= 0 {
		prefix = name[:idx]
	}
	if decompositionCategories[prefix] {
		e.acc.Inc("d_" + prefix + "_cons")
		return
	}
	e.warnf("InvariantViolation", "constraint %q has an unrecognised category prefix", name)
}

// scanConstraintAnnotations implements spec §4.3 step 2: exactly one
// priority check, and at most one bounds/domain tag (first match wins,
// search stops there).
func (e *Engine) scanConstraintAnnotations(anns []expr.Value) {
	for _, a := range anns {
		if name, ok := a.Head(); ok && name == "priority" {
			e.acc.Inc("c_priority")
			break
		}
	}
	for _, a := range anns {
		name, ok := annotationName(a)
		if !ok {
			continue
		}
		for _, tag := range boundsDomainTags {
			if name == tag {
				e.acc.Inc("c_" + tag)
				return
			}
		}
	}
}

// expandArgument resolves a single constraint argument into the list of
// variable names it refers to (spec §4.3 step 3): a String is either a
// scalar name or, if it names a whole array, expands to its elements;
// an Array is walked and each String child resolved; anything else is
// ignored.
func (e *Engine) expandArgument(arg expr.Value) []string {
	switch arg.Kind() {
	case expr.KindString:
		name := arg.AsString()
		if vi := e.symtab.Lookup(name); vi.IsArray {
			out := make([]string, 0, vi.End-vi.Begin+1)
			for i := vi.Begin; i <= vi.End; i++ {
				out = append(out, arrayElementName(name, i))
			}
			return out
		}
		return []string{name}
	case expr.KindArray:
		var out []string
		for _, child := range arg.Items() {
			if child.Kind() == expr.KindString {
				out = append(out, child.AsString())
			}
		}
		return out
	default:
		return nil
	}
}

func arrayElementName(arrayName string, idx int) string {
	return arrayName + "[" + strconv.Itoa(idx) + "]"
}

// updateCons implements spec §4.3 step 4: resolve varName through the
// symbol table, skip assigned-without-alias variables, and otherwise
// register it in conVars (deduplicating alias groups onto their shared
// target id), bumping degree and the running log2(dom) sum exactly once
// per constraint per variable.
func (e *Engine) updateCons(varName string, conVars map[int]struct{}, dom *float64) {
	vi := e.symtab.Lookup(varName)
	target := vi
	if vi.Alias != nil {
		target = vi.Alias
	} else if vi.Assigned {
		return // constant, contributes nothing
	}
	if target.ID < 0 {
		return // unknown reference or unresolved alias target
	}
	if _, already := conVars[target.ID]; already {
		return
	}
	conVars[target.ID] = struct{}{}
	target.IncrementDegree()
	if target.DomSize > 0 {
		*dom += math.Log2(target.DomSize)
	}
}

// recordConstraintGraphEdges assigns this constraint a fresh id, records
// its referenced variable ids for later CG construction, and inserts a
// VG edge for every unordered pair of distinct ids (idempotent — spec
// §8: "VG edge insertion is idempotent").
func (e *Engine) recordConstraintGraphEdges(conVars map[int]struct{}) {
	cid := e.nextConID
	e.nextConID++

	ids := make([]int, 0, len(conVars))
	for id := range conVars {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	e.conVars[cid] = ids

	for i := 0; i < len(ids); i++ {
		e.vg.AddVertex(ids[i])
		for j := i + 1; j < len(ids); j++ {
			e.vg.AddEdge(ids[i], ids[j])
		}
	}
}
