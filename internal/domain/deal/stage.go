package deal

// Stage represents one of the seven fixed lifecycle phases a deal passes through.
// Stages are strictly ordered; a deal only ever advances forward by exactly one
// position, never regresses and never skips.
type Stage string

const (
	StageOfferAccepted       Stage = "offer-accepted"
	StageAgreementSigning    Stage = "agreement-signing"
	StageDocumentation       Stage = "documentation"
	StagePaymentProcessing   Stage = "payment-processing"
	StageHandoverPreparation Stage = "handover-preparation"
	StageTransferRegistration Stage = "transfer-registration"
	StageFinalHandover       Stage = "final-handover"
)

// stageOrder is the canonical ordering of lifecycle stages
var stageOrder = []Stage{
	StageOfferAccepted,
	StageAgreementSigning,
	StageDocumentation,
	StagePaymentProcessing,
	StageHandoverPreparation,
	StageTransferRegistration,
	StageFinalHandover,
}

// Stages returns the ordered list of lifecycle stages
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Index returns the position of the stage in the lifecycle, or -1 if invalid
func (s Stage) Index() int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// IsValid checks if the stage is one of the seven lifecycle stages
func (s Stage) IsValid() bool {
	return s.Index() >= 0
}

// IsFinal returns true if this is the last lifecycle stage
func (s Stage) IsFinal() bool {
	return s == StageFinalHandover
}

// Next returns the following stage, or false when already at the last stage
func (s Stage) Next() (Stage, bool) {
	idx := s.Index()
	if idx < 0 || idx >= len(stageOrder)-1 {
		return "", false
	}
	return stageOrder[idx+1], true
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// requiredPaymentsByStage maps each stage to the payment types that must be
// completed before leaving it
var requiredPaymentsByStage = map[Stage][]PaymentType{
	StageOfferAccepted:        {PaymentTypeToken},
	StageAgreementSigning:     {PaymentTypeToken, PaymentTypeDownPayment},
	StageDocumentation:        {PaymentTypeToken, PaymentTypeDownPayment},
	StagePaymentProcessing:    {PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1},
	StageHandoverPreparation:  {PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1, PaymentTypeInstallment2},
	StageTransferRegistration: {PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1, PaymentTypeInstallment2, PaymentTypeInstallment3},
	StageFinalHandover:        {PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1, PaymentTypeInstallment2, PaymentTypeInstallment3},
}

// RequiredPayments returns the payment types expected to be completed for the
// given stage
func RequiredPayments(s Stage) []PaymentType {
	required, ok := requiredPaymentsByStage[s]
	if !ok {
		return nil
	}
	out := make([]PaymentType, len(required))
	copy(out, required)
	return out
}

// defaultTasksByStage holds the boilerplate task titles seeded when a deal
// enters a stage
var defaultTasksByStage = map[Stage][]string{
	StageAgreementSigning:     {"Draft sale agreement", "Collect signatures from both parties"},
	StageDocumentation:        {"Collect title deed copies", "Verify buyer identity documents"},
	StagePaymentProcessing:    {"Confirm installment schedule", "Reconcile received payments"},
	StageHandoverPreparation:  {"Schedule property inspection", "Prepare handover checklist"},
	StageTransferRegistration: {"Book registration appointment", "Pay transfer fees"},
	StageFinalHandover:        {"Hand over keys", "Obtain handover acknowledgment"},
}

// DefaultTasksForStage returns the boilerplate task titles for a stage
func DefaultTasksForStage(s Stage) []string {
	titles, ok := defaultTasksByStage[s]
	if !ok {
		return nil
	}
	out := make([]string, len(titles))
	copy(out, titles)
	return out
}
