// Package observability owns process-wide telemetry: the OpenTelemetry
// tracer provider and the Prometheus collectors for game events.
//
// HTTP traffic metrics live in the middleware package; the collectors here
// describe what happened in the domain (cache hits, oracle latency, votes,
// aggregation runs). Label values are drawn from small fixed sets to keep
// cardinality bounded.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "phrase_craze"

var (
	// ChallengeCache counts daily challenge lookups by result
	// (hit, miss, error).
	ChallengeCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenge_cache_total",
			Help:      "Daily challenge lookups by cache result.",
		},
		[]string{"result"},
	)

	// OracleDuration records language model call latency by operation
	// (generate, score) and outcome (ok, error).
	OracleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_request_duration_seconds",
			Help:      "Duration of language model calls in seconds.",
			Buckets:   []float64{.25, .5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"op", "outcome"},
	)

	// ScoreParseFailures counts grader responses without a usable score.
	ScoreParseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_parse_failures_total",
			Help:      "Grader responses that held no valid score.",
		},
	)

	// Submissions counts accepted submissions by mode (direct, preview).
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Scored phrases by submission mode.",
		},
		[]string{"mode"},
	)

	// Votes counts vote attempts by result (accepted, self_vote,
	// quota_exceeded, window_closed, not_found, error).
	Votes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Vote attempts by result.",
		},
		[]string{"result"},
	)

	// LeaderboardRuns counts per-category aggregation runs by outcome.
	LeaderboardRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderboard_runs_total",
			Help:      "Daily leaderboard aggregations by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(ChallengeCache, OracleDuration, ScoreParseFailures, Submissions, Votes, LeaderboardRuns)
}

// ObserveOracle records the latency of a language model call started at
// start. Use it as `defer observability.ObserveOracle("score", time.Now(), &err)`.
func ObserveOracle(op string, start time.Time, err *error) {
	outcome := "ok"
	if err != nil && *err != nil {
		outcome = "error"
	}
	OracleDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

// Outcome maps an error to the "ok"/"error" label pair.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
