package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_Index(t *testing.T) {
	tests := []struct {
		stage Stage
		index int
	}{
		{StageOfferAccepted, 0},
		{StageAgreementSigning, 1},
		{StageDocumentation, 2},
		{StagePaymentProcessing, 3},
		{StageHandoverPreparation, 4},
		{StageTransferRegistration, 5},
		{StageFinalHandover, 6},
		{Stage("unknown"), -1},
		{Stage(""), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.index, tt.stage.Index())
		})
	}
}

func TestStage_Next(t *testing.T) {
	next, ok := StageOfferAccepted.Next()
	assert.True(t, ok)
	assert.Equal(t, StageAgreementSigning, next)

	_, ok = StageFinalHandover.Next()
	assert.False(t, ok)

	_, ok = Stage("unknown").Next()
	assert.False(t, ok)
}

func TestStage_IsFinal(t *testing.T) {
	assert.True(t, StageFinalHandover.IsFinal())
	assert.False(t, StageTransferRegistration.IsFinal())
}

func TestStages_OrderIsStable(t *testing.T) {
	stages := Stages()
	assert.Len(t, stages, 7)
	for i, s := range stages {
		assert.Equal(t, i, s.Index())
	}
}

func TestRequiredPayments(t *testing.T) {
	tests := []struct {
		stage    Stage
		expected []PaymentType
	}{
		{StageOfferAccepted, []PaymentType{PaymentTypeToken}},
		{StageAgreementSigning, []PaymentType{PaymentTypeToken, PaymentTypeDownPayment}},
		{StageDocumentation, []PaymentType{PaymentTypeToken, PaymentTypeDownPayment}},
		{StagePaymentProcessing, []PaymentType{PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1}},
		{StageHandoverPreparation, []PaymentType{PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1, PaymentTypeInstallment2}},
		{StageTransferRegistration, []PaymentType{PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1, PaymentTypeInstallment2, PaymentTypeInstallment3}},
		{StageFinalHandover, []PaymentType{PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1, PaymentTypeInstallment2, PaymentTypeInstallment3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredPayments(tt.stage))
		})
	}

	assert.Nil(t, RequiredPayments(Stage("unknown")))
}

func TestDefaultTasksForStage(t *testing.T) {
	assert.NotEmpty(t, DefaultTasksForStage(StageAgreementSigning))
	assert.Nil(t, DefaultTasksForStage(StageOfferAccepted))
}
