package feature

// Keys are grouped by §2 component; some of them carry a one-line
// description (Descriptions) used by the `pp` CLI output format
// (internal/output). The 20 graph-feature keys (gr_*) are added by New;
// NewNoGraph omits them, matching spec.md's "no-graph variant" (87 keys
// instead of 107).

var coreKeys = []string{
	// variable statistics
	"v_num_vars",
	"d_bool_vars", "d_int_vars", "d_float_vars", "d_set_vars",
	"d_ratio_bool_vars", "d_ratio_int_vars", "d_ratio_float_vars", "d_ratio_set_vars",
	"v_num_aliases", "v_num_consts", "v_ratio_bounded",
	"v_is_defined_var", "v_is_introduced",
	"v_min_dom_vars", "v_max_dom_vars", "v_avg_dom_vars", "v_cv_dom_vars", "v_entropy_dom_vars",
	"v_min_deg_vars", "v_max_deg_vars", "v_avg_deg_vars", "v_cv_deg_vars", "v_entropy_deg_vars",
	"v_min_domdeg_vars", "v_max_domdeg_vars", "v_avg_domdeg_vars", "v_cv_domdeg_vars", "v_entropy_domdeg_vars",

	// constraint statistics
	"c_num_cons",
	"d_array_cons", "d_bool_cons", "d_float_cons", "d_int_cons", "d_set_cons",
	"d_ratio_array_cons", "d_ratio_bool_cons", "d_ratio_float_cons", "d_ratio_int_cons", "d_ratio_set_cons",
	"v_ratio_vars", "c_ratio_cons",

	// global-constraint classification
	"gc_global_cons", "gc_diff_globs", "gc_ratio_diff", "gc_ratio_globs",

	// annotation tags
	"c_priority", "c_bounds", "c_boundsZ", "c_boundsR", "c_boundsD", "c_domain",

	// per-constraint domain/arity/degree statistics
	"c_sum_dom_cons", "c_min_dom_cons", "c_max_dom_cons", "c_avg_dom_cons", "c_cv_dom_cons", "c_entropy_dom_cons",
	"c_logprod_dom_cons",
	"c_sum_ari_cons",
	"c_min_deg_cons", "c_max_deg_cons", "c_avg_deg_cons", "c_cv_deg_cons", "c_entropy_deg_cons",
	"c_logprod_deg_cons",
	"c_min_domdeg_cons", "c_max_domdeg_cons", "c_avg_domdeg_cons", "c_cv_domdeg_cons", "c_entropy_domdeg_cons",

	// search-goal annotations
	"s_goal",
	"s_input_order", "s_first_fail", "s_other_var",
	"s_indomain_min", "s_indomain_max", "s_other_val",
	"s_labelled_vars",

	// objective-variable features
	"o_dom", "o_deg", "o_dom_avg", "o_dom_std", "o_dom_deg", "o_deg_avg", "o_deg_std", "o_deg_cons",
}

var graphKeys = []string{
	"gr_cg_min_deg", "gr_cg_max_deg", "gr_cg_avg_deg", "gr_cg_cv_deg", "gr_cg_entropy_deg",
	"gr_cg_min_clust", "gr_cg_max_clust", "gr_cg_avg_clust", "gr_cg_cv_clust", "gr_cg_entropy_clust",
	"gr_vg_min_deg", "gr_vg_max_deg", "gr_vg_avg_deg", "gr_vg_cv_deg", "gr_vg_entropy_deg",
	"gr_vg_min_diam", "gr_vg_max_diam", "gr_vg_avg_diam", "gr_vg_cv_diam", "gr_vg_entropy_diam",
}

// Descriptions backs the `pp` output format's DESCRIPTION column. Not
// every key needs an entry; output falls back to the empty string.
var Descriptions = map[string]string{
	"v_num_vars":          "number of non-array variables not fixed at declaration",
	"v_num_aliases":       "variables assigned to another variable",
	"v_num_consts":        "variables assigned to a constant",
	"v_ratio_bounded":      "fraction of variables fixed (alias or const)",
	"c_num_cons":          "number of counted constraints",
	"gc_global_cons":      "constraints drawn from the global-constraint catalogue",
	"gc_diff_globs":       "distinct global-constraint names used",
	"s_goal":              "1=satisfy, 2=minimize, 3=maximize",
	"s_labelled_vars":     "distinct variables named by a search annotation",
	"o_dom":               "domain size of the objective variable",
	"o_deg":               "degree of the objective variable",
	"gr_vg_min_diam":      "minimum per-vertex eccentricity in the variable graph",
	"gr_cg_avg_clust":     "mean clustering coefficient of the constraint graph",
}
