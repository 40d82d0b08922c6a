// Copyright 2025 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package runner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Result int

const (
	Success Result = iota
	Failure
	Exception
	// InternalError marks a test whose obtained results could not be
	// rendered faithfully. It points at the literal codec, not at the
	// contract under test.
	InternalError
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	case Exception:
		return "Exception"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

type Request int

const (
	Skip Request = iota
	Rerun
	Quit
)

type Metrics struct {
	tests    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the runner counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "isoltest_tests_total",
			Help: "Processed semantic tests by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "isoltest_test_duration_seconds",
			Help:    "Time spent compiling, deploying and calling one test.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	reg.MustRegister(m.tests, m.duration)
	return m
}

func (m *Metrics) observe(r Result, took time.Duration) {
	if m == nil {
		return
	}
	m.tests.WithLabelValues(r.String()).Inc()
	m.duration.Observe(took.Seconds())
}
