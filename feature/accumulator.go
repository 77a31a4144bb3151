// Package feature implements the ordered feature accumulator (spec §3,
// §4.5, §9): a fixed set of string keys mapped to float64 values, plus
// side histograms used to compute Shannon entropy at finalisation.
//
// Mean/variance are computed via running Σx, Σx² sums rather than a
// materialised sample vector, since the engine streams one observation
// at a time and never buffers a full variable/constraint list.
package feature

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// ErrUnknownKey's message prefixes the panic raised by Get/Set/etc. for a
// key outside the fixed set the Accumulator was constructed with. The feature key set never
// grows after construction (spec §3).
var ErrUnknownKey = errors.New("feature: unknown key")

// sentinel values per spec §3.
const (
	notComputed = -1.0
)

// Accumulator is the ordered feature map. Missing keys are never
// observable from the outside: every key in the fixed set is present
// from construction with its sentinel default.
type Accumulator struct {
	withGraph bool
	values    map[string]float64
	hist      map[string]map[int64]int64 // metric name -> rounded bucket -> count
}

// New constructs an Accumulator with all 107 keys (87 core + 20 gr_*) present,
// each initialised to its sentinel default: 0.0, or -1.0 for graph
// features (which start "could not compute" until the analyser runs),
// or +Inf for running-minimum accumulators (reset to 0 at finalisation if
// no samples were ever observed).
func New() *Accumulator {
	return newAccumulator(true)
}

// NewNoGraph constructs an Accumulator without the 20 gr_* keys, for the
// --no-graph CLI mode.
func NewNoGraph() *Accumulator {
	return newAccumulator(false)
}

func newAccumulator(withGraph bool) *Accumulator {
	a := &Accumulator{
		withGraph: withGraph,
		values:    make(map[string]float64, len(coreKeys)+len(graphKeys)),
		hist:      make(map[string]map[int64]int64),
	}
	for _, k := range coreKeys {
		a.values[k] = defaultFor(k)
	}
	if withGraph {
		for _, k := range graphKeys {
			a.values[k] = notComputed
		}
	}
	return a
}

// defaultFor returns the initial sentinel for a freshly constructed key:
// +Inf for running-minimum keys (so the first Min() call always wins),
// 0.0 for everything else. Running-maximum keys start at 0 because every
// quantity we take a max of (domain size, degree, arity, ...) is
// non-negative and 0 is itself a valid "no samples yet" value that a
// later real sample will only ever increase.
func defaultFor(key string) float64 {
	if isMinKey(key) {
		return math.Inf(1)
	}
	return 0.0
}

func isMinKey(key string) bool {
	return strings.Contains(key, "_min_")
}

// HasGraphFeatures reports whether this accumulator was built with the
// gr_* keys.
func (a *Accumulator) HasGraphFeatures() bool { return a.withGraph }

// Get returns the current value for key. Panics on an unknown key: the
// key set is fixed at construction and an unknown key here is always a
// programming error in the engine, never a function of input data.
func (a *Accumulator) Get(key string) float64 {
	v, ok := a.values[key]
	if !ok {
		panic(ErrUnknownKey.Error() + ": " + key)
	}
	return v
}

// Set overwrites key's value.
func (a *Accumulator) Set(key string, v float64) {
	a.mustHave(key)
	a.values[key] = v
}

// Add adds delta to key's current value.
func (a *Accumulator) Add(key string, delta float64) {
	a.mustHave(key)
	a.values[key] += delta
}

// Inc adds 1 to key's current value.
func (a *Accumulator) Inc(key string) { a.Add(key, 1) }

// UpdateMin lowers key to v if v is smaller than the current value.
func (a *Accumulator) UpdateMin(key string, v float64) {
	a.mustHave(key)
	if v < a.values[key] {
		a.values[key] = v
	}
}

// UpdateMax raises key to v if v is larger than the current value.
func (a *Accumulator) UpdateMax(key string, v float64) {
	a.mustHave(key)
	if v > a.values[key] {
		a.values[key] = v
	}
}

// ResolveMin replaces a +Inf running-minimum sentinel with 0 when no
// samples were ever observed (spec §3: "initial values are either 0.0,
// +∞ ... or -1.0"; +∞ is an internal bookkeeping device, never part of
// the observable output).
func (a *Accumulator) ResolveMin(key string) {
	a.mustHave(key)
	if math.IsInf(a.values[key], 1) {
		a.values[key] = 0
	}
}

func (a *Accumulator) mustHave(key string) {
	if _, ok := a.values[key]; !ok {
		panic(ErrUnknownKey.Error() + ": " + key)
	}
}

// histogramFor returns the bucket-count map for metric, creating it empty if
// absent.
func (a *Accumulator) histogramFor(metric string) map[int64]int64 {
	h, ok := a.hist[metric]
	if !ok {
		h = make(map[int64]int64)
		a.hist[metric] = h
	}
	return h
}

// Observe records one sample of metric into its histogram, bucketed by
// rounding to the nearest integer (spec §3: "bucket (f64,
// rounded-to-nearest-integer for ratios)").
func (a *Accumulator) Observe(metric string, sample float64) {
	bucket := int64(math.Round(sample))
	h := a.histogramFor(metric)
	h[bucket]++
}

// Entropy computes the Shannon entropy of metric's histogram:
// log2(n) - (Σ c·log2(c))/n, where c ranges over bucket counts and n is
// the total mass. Returns 0 for n<=0 or a single-bucket histogram (the
// formula yields 0 in that case directly, per spec §9 Open Question (c)).
// Does NOT release the histogram; call ReleaseHistograms once all
// entropies are computed.
func (a *Accumulator) Entropy(metric string) float64 {
	h := a.hist[metric]
	var n float64
	for _, c := range h {
		n += float64(c)
	}
	if n <= 0 {
		return 0
	}
	var sum float64
	for _, c := range h {
		cf := float64(c)
		sum += cf * math.Log2(cf)
	}
	return math.Log2(n) - sum/n
}

// ReleaseHistograms drops all histogram state. They are not part of the
// observable feature set (spec §9): call this once entropy has been
// computed for every metric.
func (a *Accumulator) ReleaseHistograms() {
	a.hist = make(map[string]map[int64]int64)
}

// Mean returns sum/n, or 0 if n<=0.
func Mean(sum float64, n float64) float64 {
	if n <= 0 {
		return 0
	}
	return sum / n
}

// StdDev returns σ = sqrt(Σx²/n - μ²) for a running Σx, Σx², n triple.
// Returns 0 if n<=0.
func StdDev(sum, sumSq, n float64) float64 {
	if n <= 0 {
		return 0
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// SafeDiv returns num/den, or 0 if den==0. Used throughout the finaliser
// for the ratio features, all of which must guard against an empty
// instance (spec §4.5: "guard against zero").
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// CV returns the coefficient of variation σ/μ for a running Σx, Σx², n
// triple, where σ = sqrt(Σx²/n - μ²). Returns 0 if n<=0 or μ==0.
func CV(sum, sumSq, n float64) float64 {
	if n <= 0 {
		return 0
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	variance := sumSq/n - mean*mean
	if variance < 0 {
		// guards against floating-point underflow producing a tiny
		// negative variance for a near-zero-spread sample.
		variance = 0
	}
	return math.Sqrt(variance) / mean
}

// SortedKeys returns every key in the accumulator, lexicographically
// sorted — the ordering required by spec §6 for csv/dict/pp output.
func (a *Accumulator) SortedKeys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a read-only copy of the full key->value map. Used by
// the finaliser's caller (engine.Engine.Features) once the engine has
// been finalised.
func (a *Accumulator) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
