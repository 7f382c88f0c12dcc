package deal

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType classifies a deal document
type DocumentType string

const (
	DocumentTypeSaleAgreement    DocumentType = "sale-agreement"
	DocumentTypeMOU              DocumentType = "memorandum-of-understanding"
	DocumentTypeTitleDeed        DocumentType = "title-deed"
	DocumentTypeIdentityProof    DocumentType = "identity-proof"
	DocumentTypeNoObjection      DocumentType = "no-objection-certificate"
	DocumentTypePaymentReceipt   DocumentType = "payment-receipt"
	DocumentTypeHandoverChecklist DocumentType = "handover-checklist"
)

// IsAgreement returns true for document types that denote a binding agreement;
// these must all be verified before a deal can be completed
func (t DocumentType) IsAgreement() bool {
	return t == DocumentTypeSaleAgreement || t == DocumentTypeMOU
}

// DocumentStatus represents the verification status of a deal document
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusVerified DocumentStatus = "verified"
)

// DealDocument is a document tagged with the lifecycle stage it belongs to.
// Documents feed the stage gate's verification ratios.
type DealDocument struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Type       DocumentType   `json:"type"`
	Stage      Stage          `json:"stage"`
	Status     DocumentStatus `json:"status"`
	VerifiedAt *time.Time     `json:"verified_at,omitempty"`
	VerifiedBy string         `json:"verified_by,omitempty"`
}

// NewDealDocument creates a pending document for a stage
func NewDealDocument(name string, docType DocumentType, stage Stage) DealDocument {
	return DealDocument{
		ID:     uuid.New(),
		Name:   name,
		Type:   docType,
		Stage:  stage,
		Status: DocumentStatusPending,
	}
}

// IsVerified returns true if the document has been verified
func (d *DealDocument) IsVerified() bool {
	return d.Status == DocumentStatusVerified
}

// Verify marks the document as verified by the given actor
func (d *DealDocument) Verify(verifiedBy string) {
	now := time.Now()
	d.Status = DocumentStatusVerified
	d.VerifiedAt = &now
	d.VerifiedBy = verifiedBy
}
