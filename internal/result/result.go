// Package result provides the success/failure envelope returned by every
// business operation. Expected outcomes (validation violations, missing
// references, collisions, failed authentication) travel through Result;
// only infrastructure failures are returned as Go errors.
package result

// Result reports the outcome of an operation that carries no payload.
type Result struct {
	Success bool
	Message string
}

// DataResult reports the outcome of an operation that carries a payload.
// Data is meaningful only when Success is true; callers must consult Success
// rather than infer it from the payload.
type DataResult[T any] struct {
	Result
	Data T
}

// Ok returns a successful Result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail returns a failed Result.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

// OkData returns a successful DataResult carrying data.
func OkData[T any](data T, message string) DataResult[T] {
	return DataResult[T]{Result: Ok(message), Data: data}
}

// FailData returns a failed DataResult with the zero payload.
func FailData[T any](message string) DataResult[T] {
	return DataResult[T]{Result: Fail(message)}
}

// FailDataWith returns a failed DataResult that still carries a payload, e.g.
// a negative authentication answer.
func FailDataWith[T any](data T, message string) DataResult[T] {
	return DataResult[T]{Result: Fail(message), Data: data}
}
