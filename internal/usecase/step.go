package usecase

type StepStatus string

const (
	StepOK       StepStatus = "ok"
	StepFallback StepStatus = "fallback"
	StepSkipped  StepStatus = "skipped"
	StepFailed   StepStatus = "failed"
)

// StepResult records the outcome of one best-effort side effect.
type StepResult struct {
	Step   string
	Status StepStatus
	Error  string
}

func stepOK(step string) StepResult {
	return StepResult{Step: step, Status: StepOK}
}

func stepSkipped(step, reason string) StepResult {
	return StepResult{Step: step, Status: StepSkipped, Error: reason}
}

func stepFailed(step string, err error) StepResult {
	return StepResult{Step: step, Status: StepFailed, Error: err.Error()}
}

// generationStep classifies the error returned alongside a generated value:
// nil is ok, anything else means the fallback payload was used.
func generationStep(step string, err error) StepResult {
	if err == nil {
		return stepOK(step)
	}
	return StepResult{Step: step, Status: StepFallback, Error: err.Error()}
}
