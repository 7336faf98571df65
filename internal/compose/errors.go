package compose

import (
	"fmt"

	"github.com/roach88/splice/internal/lines"
)

// Step names used in reports, logs and errors.
const (
	StepLoadShell    = "load shell"
	StepLoadDraft    = "load draft"
	StepLoadLegacy   = "load legacy"
	StepDraftContent = "extract draft content"
	StepLegacyData   = "extract legacy data"
	StepLegacyScript = "extract legacy script"
	StepRewriteData  = "rewrite legacy data"
	StepInjectData   = "inject legacy data"
	StepFilterScript = "filter script"
	StepLocateAnchor = "locate shell anchor"
	StepAssemble     = "assemble output"
	StepWriteOutput  = "write output"
)

// StepError wraps the failure of one composition step.
type StepError struct {
	// Step is the failed step, one of the Step constants.
	Step string

	// Source is the document the step worked on.
	Source string

	Err error
}

func (e *StepError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s (%s): %v", e.Step, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Code returns the error kind of the wrapped failure.
func (e *StepError) Code() lines.ErrorCode {
	return lines.CodeOf(e.Err)
}

func stepErr(step, source string, err error) *StepError {
	return &StepError{Step: step, Source: source, Err: err}
}
