package engine

import (
	"github.com/katalvlaran/mzfeat/expr"
	"github.com/katalvlaran/mzfeat/symtab"
)

// kindCounterKey maps a symtab.Kind to its d_*_vars accumulator key.
func kindCounterKey(k symtab.Kind) string {
	switch k {
	case symtab.KindBool:
		return "d_bool_vars"
	case symtab.KindInt:
		return "d_int_vars"
	case symtab.KindFloat:
		return "d_float_vars"
	case symtab.KindSet:
		return "d_set_vars"
	default:
		return "d_int_vars"
	}
}

// UpdateVariable registers a fresh scalar variable (spec §4.2
// insert_variable).
func (e *Engine) UpdateVariable(name string, kind symtab.Kind, domSize float64, anns []expr.Value) error {
	_, err := e.symtab.InsertVariable(name, kind, domSize, anns)
	if err != nil {
		return err
	}
	e.acc.Inc(kindCounterKey(kind))
	return nil
}

// UpdateVarArray registers an array header and synthesizes its elements
// (spec §4.2 insert_var_array).
func (e *Engine) UpdateVarArray(name string, begin, end int, kind symtab.Kind, domSize float64, anns []expr.Value) error {
	_, elems, err := e.symtab.InsertVarArray(name, begin, end, kind, domSize, anns)
	if err != nil {
		return err
	}
	key := kindCounterKey(kind)
	for range elems {
		e.acc.Inc(key)
	}
	return nil
}

// UpdateAssignedVariable registers a variable fixed at declaration to a
// constant or to another variable (spec §4.2 insert_assigned_variable).
// It counts into v_num_aliases or v_num_consts, not into the d_*_vars
// kind counters. Annotations "is_defined_var" and "var_is_introduced"
// bump their own counters if present among anns.
func (e *Engine) UpdateAssignedVariable(name string, kind symtab.Kind, domSize float64, rhs expr.Value, anns []expr.Value) error {
	vi, err := e.symtab.InsertAssignedVariable(name, kind, domSize, rhs, anns)
	if err != nil {
		return err
	}
	if vi.Alias != nil {
		e.acc.Inc("v_num_aliases")
		if !e.symtab.Has(rhs.AsString()) {
			e.warnf("InvariantViolation", "alias target %q of %q is not declared", rhs.AsString(), name)
		}
	} else {
		e.acc.Inc("v_num_consts")
	}
	e.countDefinedAndIntroduced(anns, 1)
	return nil
}

// UpdateAssignedVarArray registers an array of assigned elements, each
// either aliased (String entry) or constant (spec §4.2
// insert_assigned_var_array). Annotation counters scale by the array
// length.
func (e *Engine) UpdateAssignedVarArray(name string, begin, end int, kind symtab.Kind, domSize float64, rhs []expr.Value, anns []expr.Value) error {
	_, elems, err := e.symtab.InsertAssignedVarArray(name, begin, end, kind, domSize, rhs, anns)
	if err != nil {
		return err
	}
	for i, elem := range elems {
		if elem.Alias != nil {
			e.acc.Inc("v_num_aliases")
			if !e.symtab.Has(rhs[i].AsString()) {
				e.warnf("InvariantViolation", "alias target %q of %q is not declared", rhs[i].AsString(), elem.Name)
			}
		} else {
			e.acc.Inc("v_num_consts")
		}
	}
	e.countDefinedAndIntroduced(anns, len(elems))
	return nil
}

// countDefinedAndIntroduced scans anns for the "is_defined_var" and
// "var_is_introduced" marker annotations and bumps their counters by
// scale (1 for a scalar, array length for an array declaration).
func (e *Engine) countDefinedAndIntroduced(anns []expr.Value, scale int) {
	for _, a := range anns {
		name, ok := annotationName(a)
		if !ok {
			continue
		}
		switch name {
		case "is_defined_var":
			for i := 0; i < scale; i++ {
				e.acc.Inc("v_is_defined_var")
			}
		case "var_is_introduced":
			for i := 0; i < scale; i++ {
				e.acc.Inc("v_is_introduced")
			}
		}
	}
}

// annotationName reads the name of a bare annotation: either a String
// itself, or an Array headed by a String.
func annotationName(a expr.Value) (string, bool) {
	if a.Kind() == expr.KindString {
		return a.AsString(), true
	}
	return a.Head()
}
