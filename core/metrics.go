package core

import "context"

var _ MetricsRecorder = NopMetricsRecorder{}

// NopMetricsRecorder drops every measurement. It backs the service when
// no recorder is wired so call sites never nil-check.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}
