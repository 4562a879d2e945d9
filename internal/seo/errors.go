package seo

import "errors"

// Sentinel errors surfaced by stores and the aggregator. Query errors are
// distinguishable so the transport layer can map them to distinct outcomes.
var (
	// ErrJobNotFound is returned when a job id is unknown.
	ErrJobNotFound = errors.New("job not found")
	// ErrResultNotReady is returned when a job exists but has not completed.
	ErrResultNotReady = errors.New("result not ready")
	// ErrJobExists is returned when a job id is submitted twice.
	ErrJobExists = errors.New("job already exists")
	// ErrJobTerminal is returned on any transition out of a terminal status.
	ErrJobTerminal = errors.New("job is in a terminal state")
	// ErrAggregationImpossible is returned when every category scorer failed
	// and no sub-score is available to aggregate.
	ErrAggregationImpossible = errors.New("no category scores to aggregate")
)
