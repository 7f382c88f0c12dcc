package deal

import (
	"fmt"

	"github.com/dealdesk/backend/internal/domain/shared"
)

// Stage gate thresholds. Completion ratios below the error threshold block a
// transition; ratios between the two thresholds pass with a warning.
const (
	defaultGateErrorThreshold = 0.5
	defaultGateWarnThreshold  = 0.8
)

// StageGate validates whether a deal may advance from its current stage to a
// requested target stage. It never mutates the deal; the caller performs the
// actual stage change only when the result is valid.
type StageGate struct {
	errorThreshold float64
	warnThreshold  float64
}

// StageGateOption is a functional option for configuring StageGate
type StageGateOption func(*StageGate)

// WithGateThresholds overrides the error and warning completion thresholds
func WithGateThresholds(errorThreshold, warnThreshold float64) StageGateOption {
	return func(g *StageGate) {
		g.errorThreshold = errorThreshold
		g.warnThreshold = warnThreshold
	}
}

// NewStageGate creates a stage gate with the default thresholds
func NewStageGate(opts ...StageGateOption) *StageGate {
	g := &StageGate{
		errorThreshold: defaultGateErrorThreshold,
		warnThreshold:  defaultGateWarnThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate checks every gating rule for moving the deal to the target stage
func (g *StageGate) Validate(d *Deal, target Stage) *shared.ValidationResult {
	result := shared.NewValidationResult()

	if !d.IsActive() {
		result.AddError(fmt.Sprintf("deal is %s; only active deals can change stage", d.Lifecycle.Status))
		return result
	}
	if !target.IsValid() {
		result.AddError(fmt.Sprintf("%q is not a valid lifecycle stage", target))
		return result
	}

	currentIndex := d.Lifecycle.Stage.Index()
	targetIndex := target.Index()
	switch {
	case targetIndex <= currentIndex:
		result.AddError(fmt.Sprintf("cannot regress or repeat: deal is already at %s", d.Lifecycle.Stage))
	case targetIndex > currentIndex+1:
		result.AddError(fmt.Sprintf("cannot skip stages: next stage after %s is %s", d.Lifecycle.Stage, stageOrder[currentIndex+1]))
	}

	g.checkTaskCompletion(d, result)
	g.checkDocumentVerification(d, result)
	g.checkRequiredPayments(d, result)

	return result
}

// checkTaskCompletion applies the completion-ratio rules to tasks tagged with
// the current stage. A stage without tasks passes.
func (g *StageGate) checkTaskCompletion(d *Deal, result *shared.ValidationResult) {
	tasks := d.TasksForStage(d.Lifecycle.Stage)
	if len(tasks) == 0 {
		return
	}
	completed := 0
	for i := range tasks {
		if tasks[i].IsCompleted() {
			completed++
		}
	}
	ratio := float64(completed) / float64(len(tasks))
	switch {
	case ratio < g.errorThreshold:
		result.AddError(fmt.Sprintf("only %d of %d tasks completed for stage %s; at least %.0f%% required",
			completed, len(tasks), d.Lifecycle.Stage, g.errorThreshold*100))
	case ratio < g.warnThreshold:
		result.AddWarning(fmt.Sprintf("%d of %d tasks completed for stage %s; consider finishing the rest before advancing",
			completed, len(tasks), d.Lifecycle.Stage))
	}
}

// checkDocumentVerification applies the verification-ratio rules to documents
// tagged with the current stage. A stage without documents passes.
func (g *StageGate) checkDocumentVerification(d *Deal, result *shared.ValidationResult) {
	docs := d.DocumentsForStage(d.Lifecycle.Stage)
	if len(docs) == 0 {
		return
	}
	verified := 0
	for i := range docs {
		if docs[i].IsVerified() {
			verified++
		}
	}
	ratio := float64(verified) / float64(len(docs))
	switch {
	case ratio < g.errorThreshold:
		result.AddError(fmt.Sprintf("only %d of %d documents verified for stage %s; at least %.0f%% required",
			verified, len(docs), d.Lifecycle.Stage, g.errorThreshold*100))
	case ratio < g.warnThreshold:
		result.AddWarning(fmt.Sprintf("%d of %d documents verified for stage %s; consider verifying the rest before advancing",
			verified, len(docs), d.Lifecycle.Stage))
	}
}

// checkRequiredPayments warns when the payments required for the current stage
// are not all completed. Incomplete payments never block a transition.
func (g *StageGate) checkRequiredPayments(d *Deal, result *shared.ValidationResult) {
	for _, required := range RequiredPayments(d.Lifecycle.Stage) {
		if !g.paymentCompleted(d, required) {
			result.AddWarning(fmt.Sprintf("required payment %s is not completed for stage %s", required, d.Lifecycle.Stage))
		}
	}
}

func (g *StageGate) paymentCompleted(d *Deal, paymentType PaymentType) bool {
	for i := range d.Financial.Payments {
		p := &d.Financial.Payments[i]
		if p.Type == paymentType && p.IsCompleted() {
			return true
		}
	}
	return false
}
