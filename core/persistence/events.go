package persistence

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventSet names the start, success and failure events of one operation.
type eventSet struct {
	operation string
	start     ExecutionEventType
	success   ExecutionEventType
	failed    ExecutionEventType
}

var (
	selectEvents = eventSet{"select", StatementSelectStart, StatementSelectSuccess, StatementSelectFailed}
	updateEvents = eventSet{"update", StatementUpdateStart, StatementUpdateSuccess, StatementUpdateFailed}
	insertEvents = eventSet{"insert", StatementInsertStart, StatementInsertSuccess, StatementInsertFailed}
	deleteEvents = eventSet{"delete", StatementDeleteStart, StatementDeleteSuccess, StatementDeleteFailed}
)

// emitEvent is a helper method to emit events
func (e *Executor) emitEvent(event ExecutionEvent) {
	if e.bus != nil {
		e.bus.Emit(string(event.Type), event)
	}
}

// withEventEmission runs fn between a start event and a success or failure event.
// All three share one execution id.
func withEventEmission[T any](e *Executor, set eventSet, statement string, fn func() (T, error)) (T, error) {
	executionID := uuid.New().String()
	startTime := time.Now()

	e.emitEvent(createEvent(set.start, executionID, set.operation, statement, nil, nil, time.Time{}))

	result, err := fn()
	if err != nil {
		errStr := err.Error()
		e.logger.Error("Statement execution failed",
			zap.String("operation", set.operation),
			zap.String("executionId", executionID),
			zap.Error(err),
		)
		e.emitEvent(createEvent(set.failed, executionID, set.operation, statement, nil, &errStr, startTime))
		var zero T
		return zero, err
	}

	e.emitEvent(createEvent(set.success, executionID, set.operation, statement, result, nil, startTime))
	return result, nil
}
