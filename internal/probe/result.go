package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

// Status discriminates the outcome of a single probe invocation.
type Status string

const (
	// StatusHealthy means the check ran and the target is fine.
	StatusHealthy Status = "healthy"
	// StatusUnhealthy means the check ran and the target is in a bad state.
	StatusUnhealthy Status = "unhealthy"
	// StatusError means the check itself could not complete.
	StatusError Status = "error"
	// StatusUnavailable means the check's backing facility is absent in this
	// environment. Only the host metrics probe reports this.
	StatusUnavailable Status = "unavailable"
)

// Result is the outcome of one probe invocation. Probes build results only
// through the constructors below, so exactly one variant is ever populated,
// and a probe never lets a fault escape past its own boundary.
type Result struct {
	Status  Status
	Details map[string]any
	Message string
}

func Healthy(details map[string]any) Result {
	return Result{Status: StatusHealthy, Details: details}
}

func Unhealthy(details map[string]any) Result {
	return Result{Status: StatusUnhealthy, Details: details}
}

func Error(message string) Result {
	return Result{Status: StatusError, Message: message}
}

func Errorf(format string, args ...any) Result {
	return Error(fmt.Sprintf(format, args...))
}

func Unavailable(message string) Result {
	return Result{Status: StatusUnavailable, Message: message}
}

// MarshalJSON flattens the status, detail fields and message into a single
// object, e.g. {"status":"healthy","response_time":0.02}.
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Details)+2)
	for k, v := range r.Details {
		out[k] = v
	}
	out["status"] = string(r.Status)
	if r.Message != "" {
		if r.Status == StatusUnavailable {
			out["reason"] = r.Message
		} else {
			out["error"] = r.Message
		}
	}
	return json.Marshal(out)
}

// Probe is an independent check of one subsystem's health. Check must always
// terminate in a well-defined Result; implementations own their timeouts.
type Probe interface {
	Name() string
	Check(ctx context.Context) Result
}

// round2 rounds to two decimal places for report fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
