package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// operationObservation captures one finished service operation so the
// metrics and log emissions stay consistent with each other.
type operationObservation struct {
	operation string
	err       error
	elapsed   time.Duration
	fields    map[string]any
}

func (o operationObservation) status() string {
	if o.err != nil {
		return "failure"
	}
	return "success"
}

// tags derives the metric tag set. Only low-cardinality identifying
// fields are promoted into tags.
func (o operationObservation) tags() map[string]string {
	tags := map[string]string{
		"operation": o.operation,
		"status":    o.status(),
	}
	for _, key := range []string{"provider", "tenant_id", "config_id"} {
		value, ok := o.fields[key]
		if !ok {
			continue
		}
		rendered := strings.TrimSpace(fmt.Sprint(value))
		if rendered == "" || rendered == "<nil>" {
			continue
		}
		tags[key] = rendered
	}
	return tags
}

func (o operationObservation) logFields() map[string]any {
	fields := make(map[string]any, len(o.fields)+4)
	for key, value := range o.fields {
		fields[key] = value
	}
	fields["event_type"] = o.operation
	fields["status"] = o.status()
	fields["duration_ms"] = o.elapsed.Milliseconds()
	if o.err != nil {
		fields["error"] = o.err.Error()
	}
	return fields
}

func (s *Service) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if s == nil {
		return
	}
	operation = strings.ToLower(strings.TrimSpace(operation))
	if operation == "" {
		operation = "unknown"
	}
	obs := operationObservation{
		operation: operation,
		err:       err,
		elapsed:   time.Since(startedAt),
		fields:    fields,
	}
	s.record(ctx, obs)
	s.log(ctx, obs)
}

func (s *Service) record(ctx context.Context, obs operationObservation) {
	if s.metricsRecorder == nil {
		return
	}
	tags := obs.tags()
	s.metricsRecorder.IncCounter(ctx, "paylink."+obs.operation+".total", 1, tags)
	s.metricsRecorder.ObserveHistogram(ctx, "paylink."+obs.operation+".duration_ms", float64(obs.elapsed.Milliseconds()), cloneTags(tags))
}

func (s *Service) log(ctx context.Context, obs operationObservation) {
	if s.logger == nil {
		return
	}
	logger := s.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	fields := obs.logFields()
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	args := sortedArgs(fields)
	if obs.err != nil {
		logger.Error(obs.operation+" failed", args...)
		return
	}
	logger.Info(obs.operation+" succeeded", args...)
}

func sortedArgs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func cloneTags(tags map[string]string) map[string]string {
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}
