package domain

// ExecStatus represents the outcome of one execution
type ExecStatus string

const (
	ExecStatusSuccess           ExecStatus = "SUCCESS"
	ExecStatusCompileError      ExecStatus = "COMPILE_ERROR"
	ExecStatusRuntimeError      ExecStatus = "RUNTIME_ERROR"
	ExecStatusTimeLimitExceeded ExecStatus = "TIME_LIMIT_EXCEEDED"
	ExecStatusInternalError     ExecStatus = "INTERNAL_ERROR"
)

const (
	TimeLimitExceededMessage = "Time Limit Exceeded"
	RuntimeErrorMessage      = "Runtime Error"
	CompileErrorMessage      = "Compilation Error"
)

// ExecutionResult is produced by one runner invocation. It is never persisted.
type ExecutionResult struct {
	Success bool       `json:"success"`
	Status  ExecStatus `json:"status"`
	Output  string     `json:"output"`
	Error   string     `json:"error,omitempty"`
}

func SuccessResult(output string) ExecutionResult {
	return ExecutionResult{Success: true, Status: ExecStatusSuccess, Output: output}
}

func FailedResult(status ExecStatus, output, errMsg string) ExecutionResult {
	return ExecutionResult{Status: status, Output: output, Error: errMsg}
}

// Failed reports whether the runner reported any error
func (r ExecutionResult) Failed() bool {
	return !r.Success || r.Error != ""
}
