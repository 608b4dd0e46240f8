package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldWorkID is the standardized structured logging key for work identifiers.
	FieldWorkID = "work_id"
	// FieldRunID is the standardized structured logging key for alignment run identifiers.
	FieldRunID = "run_id"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step after a warning or error.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType names the kind of decision a matcher made.
	FieldDecisionType = "decision_type"
	// FieldDecisionResult is the outcome of a decision.
	FieldDecisionResult = "decision_result"
	// FieldDecisionReason explains a decision outcome.
	FieldDecisionReason = "decision_reason"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
