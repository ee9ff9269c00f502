package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Inc(AESEncodeSuccess)
	m.Observe(TokenVerifyLatency, time.Millisecond)
	m.Outcome(errors.New("x"), RSAInitSuccess, RSAInitFailure)
	if m.Value(AESEncodeSuccess) != 0 {
		t.Fatalf("nil metrics should read zero")
	}
	s := m.Snapshot()
	if len(s.Counters) != 0 || len(s.Histograms) != 0 {
		t.Fatalf("nil snapshot should be empty: %+v", s)
	}
}

func TestDisabledMetricsDropsWrites(t *testing.T) {
	m := New(Config{})
	m.Inc(TokenIssueSuccess)
	if m.Value(TokenIssueSuccess) != 0 {
		t.Fatalf("disabled metrics should not count")
	}
}

func TestOutcome(t *testing.T) {
	m := New(Config{Enabled: true})
	m.Outcome(nil, TokenIssueSuccess, TokenIssueFailure)
	m.Outcome(errors.New("boom"), TokenIssueSuccess, TokenIssueFailure)
	m.Outcome(errors.New("boom"), TokenIssueSuccess, TokenIssueFailure)
	if m.Value(TokenIssueSuccess) != 1 || m.Value(TokenIssueFailure) != 2 {
		t.Fatalf("unexpected counts %d/%d", m.Value(TokenIssueSuccess), m.Value(TokenIssueFailure))
	}
}

func TestHistogramBuckets(t *testing.T) {
	m := New(Config{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(TokenVerifyLatency, 100*time.Microsecond)
	m.Observe(TokenVerifyLatency, 3*time.Millisecond)
	m.Observe(TokenVerifyLatency, time.Second)
	m.Observe(AESEncodeSuccess, time.Second)

	s := m.Snapshot()
	buckets := s.Histograms[TokenVerifyLatency]
	if len(buckets) != BucketCount {
		t.Fatalf("bucket count = %d", len(buckets))
	}
	if buckets[0] != 1 || buckets[3] != 1 || buckets[BucketCount-1] != 1 {
		t.Fatalf("unexpected buckets %v", buckets)
	}
	if want := time.Second + 3*time.Millisecond + 100*time.Microsecond; s.Sums[TokenVerifyLatency] != want {
		t.Fatalf("sum = %v, want %v", s.Sums[TokenVerifyLatency], want)
	}
	if _, ok := s.Counters[TokenVerifyLatency]; ok {
		t.Fatalf("histogram id should not appear as a counter")
	}
}

func TestConcurrentInc(t *testing.T) {
	m := New(Config{Enabled: true})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(AESDecodeSuccess)
			}
		}()
	}
	wg.Wait()
	if got := m.Value(AESDecodeSuccess); got != 16000 {
		t.Fatalf("got %d, want 16000", got)
	}
}
