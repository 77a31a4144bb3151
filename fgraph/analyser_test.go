package fgraph

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/mzfeat/feature"
)

func TestAnalyserRunPopulatesAllGraphFeatures(t *testing.T) {
	vg := NewGraph()
	vg.AddEdge(0, 1)
	vg.AddEdge(1, 2)
	cg := NewGraph()
	cg.AddEdge(0, 1)

	acc := feature.New()
	an := &Analyser{Timeout: time.Second, Logger: logrus.New()}
	res := an.Run(context.Background(), vg, cg, acc)
	if res.TimedOut {
		t.Fatal("ample timeout must not time out")
	}
	for _, k := range []string{
		"gr_cg_min_deg", "gr_cg_avg_clust", "gr_vg_max_deg", "gr_vg_avg_diam",
	} {
		if acc.Get(k) < 0 {
			t.Fatalf("%s must be computed (non-negative), got %v", k, acc.Get(k))
		}
	}
}

func TestAnalyserRunTimesOutLeavesSentinels(t *testing.T) {
	vg := NewGraph()
	vg.AddEdge(0, 1)
	cg := NewGraph()
	cg.AddEdge(0, 1)

	acc := feature.New()
	an := &Analyser{Timeout: time.Nanosecond, Logger: logrus.New()}
	res := an.Run(context.Background(), vg, cg, acc)
	if !res.TimedOut {
		t.Fatal("a 1ns per-metric timeout must be reported as timed out")
	}
	if acc.Get("gr_vg_avg_diam") != -1 {
		t.Fatalf("unreached stage must stay at -1 sentinel, got %v", acc.Get("gr_vg_avg_diam"))
	}
}
