package feature

import (
	"math"
	"testing"
)

func TestNewHasAllCoreAndGraphKeys(t *testing.T) {
	a := New()
	if !a.HasGraphFeatures() {
		t.Fatal("New() must include graph features")
	}
	for _, k := range coreKeys {
		_ = a.Get(k) // must not panic
	}
	for _, k := range graphKeys {
		if a.Get(k) != notComputed {
			t.Fatalf("graph key %s must start at the -1 sentinel, got %v", k, a.Get(k))
		}
	}
}

func TestNewNoGraphOmitsGraphKeys(t *testing.T) {
	a := NewNoGraph()
	if a.HasGraphFeatures() {
		t.Fatal("NewNoGraph() must not report graph features")
	}
	keys := a.SortedKeys()
	for _, k := range keys {
		for _, g := range graphKeys {
			if k == g {
				t.Fatalf("NewNoGraph() must omit %s", g)
			}
		}
	}
}

func TestMinMaxTracking(t *testing.T) {
	a := New()
	a.UpdateMin("v_min_dom_vars", 5)
	a.UpdateMin("v_min_dom_vars", 2)
	a.UpdateMin("v_min_dom_vars", 9)
	if got := a.Get("v_min_dom_vars"); got != 2 {
		t.Fatalf("want min=2, got %v", got)
	}
	a.UpdateMax("v_max_dom_vars", 5)
	a.UpdateMax("v_max_dom_vars", 9)
	a.UpdateMax("v_max_dom_vars", 2)
	if got := a.Get("v_max_dom_vars"); got != 9 {
		t.Fatalf("want max=9, got %v", got)
	}
}

func TestResolveMinWithoutSamplesBecomesZero(t *testing.T) {
	a := New()
	a.ResolveMin("v_min_dom_vars")
	if got := a.Get("v_min_dom_vars"); got != 0 {
		t.Fatalf("untouched min accumulator must resolve to 0, got %v", got)
	}
}

func TestEntropySingleBucketIsZero(t *testing.T) {
	a := New()
	for i := 0; i < 7; i++ {
		a.Observe("dom_vars", 3)
	}
	if got := a.Entropy("dom_vars"); got != 0 {
		t.Fatalf("entropy of a single-bucket histogram must be 0, got %v", got)
	}
}

func TestEntropyOfEmptyMetricIsZero(t *testing.T) {
	a := New()
	if got := a.Entropy("never_observed"); got != 0 {
		t.Fatalf("entropy of an empty histogram must be 0, got %v", got)
	}
}

func TestEntropyIsPositiveForMultipleBuckets(t *testing.T) {
	a := New()
	a.Observe("deg_vars", 1)
	a.Observe("deg_vars", 2)
	if got := a.Entropy("deg_vars"); got <= 0 {
		t.Fatalf("entropy over two equally-weighted buckets must be > 0, got %v", got)
	}
}

func TestCVZeroMeanIsZero(t *testing.T) {
	if got := CV(0, 0, 3); got != 0 {
		t.Fatalf("CV with zero mean must be 0, got %v", got)
	}
}

func TestCVConstantSampleIsZero(t *testing.T) {
	// Five samples all equal to 4: sum=20, sumSq=80, n=5 -> variance 0.
	got := CV(20, 80, 5)
	if math.Abs(got) > 1e-9 {
		t.Fatalf("CV of a constant sample must be ~0, got %v", got)
	}
}

func TestSortedKeysAreLexicographic(t *testing.T) {
	a := New()
	keys := a.SortedKeys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("SortedKeys() not sorted at index %d: %q > %q", i, keys[i-1], keys[i])
		}
	}
}

func TestReleaseHistogramsClearsState(t *testing.T) {
	a := New()
	a.Observe("x", 1)
	a.ReleaseHistograms()
	if got := a.Entropy("x"); got != 0 {
		t.Fatalf("entropy after release must behave as empty, got %v", got)
	}
}
