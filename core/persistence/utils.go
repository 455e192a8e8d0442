package persistence

import (
	"time"
)

func createEvent(
	eventType ExecutionEventType,
	executionID string,
	operation string,
	statement string,
	output any,
	err *string,
	startTime time.Time,
) ExecutionEvent {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	return ExecutionEvent{
		Type:        eventType,
		ExecutionID: executionID,
		Timestamp:   time.Now().UnixMilli(),
		Operation:   operation,
		Statement:   statement,
		Output:      output,
		Error:       err,
		Duration:    duration,
	}
}
