package engine

import "github.com/katalvlaran/mzfeat/expr"

// SetSolveGoal records the solve goal (1=satisfy, 2=minimize,
// 3=maximize) and, if present, walks the search-strategy annotation
// (spec §4.4, §6 parser contract step 3).
func (e *Engine) SetSolveGoal(goal int, searchAnn *expr.Value) error {
	e.acc.Set("s_goal", float64(goal))
	if searchAnn != nil {
		e.processSearchAnnotation(*searchAnn)
		e.acc.Set("s_labelled_vars", float64(len(e.labelled)))
	}
	return nil
}

// SetObjectiveVariable records the name of the objective variable (spec
// §6 parser contract step 4, only meaningful when s_goal>1). The actual
// objective-variable features are computed at Finalize, once the
// variable-degree statistics it depends on are closed.
func (e *Engine) SetObjectiveVariable(name string) error {
	e.objectiveName = name
	return nil
}

var concreteSearchKinds = map[string]bool{
	"bool_search": true, "int_search": true, "set_search": true,
}

// processSearchAnnotation implements spec §4.4 and resolves Open
// Question (b): a seq_search recurses over its sub-annotations; a
// concrete {bool,int,set}_search reads (vars, var_choice, val_choice);
// an Array without a leading name is treated as an implicit sequence of
// sub-annotations (so the s_* counters come out the same whether or not
// the top-level annotation was wrapped in an explicit seq_search); an
// annotation headed by any other name is logged as unrecognised and
// ignored.
func (e *Engine) processSearchAnnotation(ann expr.Value) {
	head, ok := ann.Head()
	if !ok {
		if ann.Kind() == expr.KindArray {
			for _, sub := range ann.Items() {
				e.processSearchAnnotation(sub)
			}
			return
		}
		e.warnf("InvariantViolation", "empty or malformed search annotation")
		return
	}

	switch {
	case head == "seq_search":
		for _, sub := range ann.Items()[1:] {
			e.processSearchAnnotation(sub)
		}
	case concreteSearchKinds[head]:
		e.processConcreteSearch(ann)
	default:
		e.warnf("InvariantViolation", "unrecognised search annotation %q", head)
	}
}

// processConcreteSearch reads the positional (vars, var_choice,
// val_choice) arguments of a {bool,int,set}_search annotation (spec
// §4.4).
func (e *Engine) processConcreteSearch(ann expr.Value) {
	args := ann.Items()[1:]
	if len(args) < 3 {
		e.warnf("InvariantViolation", "search annotation missing positional arguments")
		return
	}
	e.addLabelledVars(args[0])

	switch name, _ := annotationName(args[1]); name {
	case "input_order":
		e.acc.Inc("s_input_order")
	case "first_fail":
		e.acc.Inc("s_first_fail")
	default:
		e.acc.Inc("s_other_var")
	}

	switch name, _ := annotationName(args[2]); name {
	case "indomain_min":
		e.acc.Inc("s_indomain_min")
	case "indomain_max":
		e.acc.Inc("s_indomain_max")
	default:
		e.acc.Inc("s_other_val")
	}
}

// addLabelledVars resolves varsArg (a single variable name or an Array
// of them) and records the distinct ids it names into e.labelled (spec
// §4.4: "labelled-variable count increases by the distinct count, not
// the list length").
func (e *Engine) addLabelledVars(varsArg expr.Value) {
	for _, name := range e.expandArgument(varsArg) {
		vi := e.symtab.Lookup(name)
		target := vi
		if vi.Alias != nil {
			target = vi.Alias
		}
		if target.ID >= 0 {
			e.labelled[target.ID] = true
		}
	}
}
