package morpholm

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives counters from the scorer hot path.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordExtend is called once per Extend with the number of tokens fed.
	RecordExtend(tokens int, duration time.Duration)

	// RecordLookup is called once per scored word with the number of
	// backoff steps taken and whether the unigram lookup missed.
	RecordLookup(backoffs int, oov bool)

	// RecordRetraction is called when a partial word score is taken back.
	RecordRetraction()

	// RecordInvalid is called for a marker combination a well-formed
	// decoder does not produce, such as a leading marker with no open word.
	RecordInvalid()
}

// NoopMetricsCollector discards everything.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExtend(int, time.Duration) {}
func (NoopMetricsCollector) RecordLookup(int, bool)          {}
func (NoopMetricsCollector) RecordRetraction()               {}
func (NoopMetricsCollector) RecordInvalid()                  {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	ExtendCount      atomic.Int64
	ExtendTotalNanos atomic.Int64
	TokenCount       atomic.Int64
	LookupCount      atomic.Int64
	BackoffCount     atomic.Int64
	OOVCount         atomic.Int64
	RetractionCount  atomic.Int64
	InvalidCount     atomic.Int64
}

func (b *BasicMetricsCollector) RecordExtend(tokens int, duration time.Duration) {
	b.ExtendCount.Add(1)
	b.TokenCount.Add(int64(tokens))
	b.ExtendTotalNanos.Add(duration.Nanoseconds())
}

func (b *BasicMetricsCollector) RecordLookup(backoffs int, oov bool) {
	b.LookupCount.Add(1)
	b.BackoffCount.Add(int64(backoffs))
	if oov {
		b.OOVCount.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordRetraction() {
	b.RetractionCount.Add(1)
}

func (b *BasicMetricsCollector) RecordInvalid() {
	b.InvalidCount.Add(1)
}

// MetricsSnapshot is a point-in-time copy of BasicMetricsCollector.
type MetricsSnapshot struct {
	Extends     int64
	Tokens      int64
	Lookups     int64
	Backoffs    int64
	OOV         int64
	Retractions int64
	Invalid     int64
	AvgExtend   time.Duration
}

// Snapshot returns the current counter values.
func (b *BasicMetricsCollector) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Extends:     b.ExtendCount.Load(),
		Tokens:      b.TokenCount.Load(),
		Lookups:     b.LookupCount.Load(),
		Backoffs:    b.BackoffCount.Load(),
		OOV:         b.OOVCount.Load(),
		Retractions: b.RetractionCount.Load(),
		Invalid:     b.InvalidCount.Load(),
	}
	if s.Extends > 0 {
		s.AvgExtend = time.Duration(b.ExtendTotalNanos.Load() / s.Extends)
	}
	return s
}
