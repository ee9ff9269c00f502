package internaldefs

import (
	"testing"

	"github.com/MrEthical07/goSecurity/metrics"
)

func TestBoundSuffixes(t *testing.T) {
	if len(HistogramBoundSuffix) != metrics.BucketCount {
		t.Fatalf("suffix count = %d", len(HistogramBoundSuffix))
	}
	if HistogramBoundSuffix[0] != "0_0005" || HistogramBoundSuffix[metrics.BucketCount-1] != "inf" {
		t.Fatalf("unexpected suffixes %v", HistogramBoundSuffix)
	}
}

func TestCumulativeBuckets(t *testing.T) {
	got := CumulativeBuckets(NormalizeBuckets([]uint64{1, 2, 3}))
	want := [metrics.BucketCount]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCounterNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range CounterDefs {
		if seen[d.Name] {
			t.Fatalf("duplicate metric name %s", d.Name)
		}
		seen[d.Name] = true
	}
}
