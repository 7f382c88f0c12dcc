package notification

import (
	"fmt"
	"regexp"
)

// TemplateID identifies a message template
type TemplateID string

const (
	TemplatePaymentReceived  TemplateID = "payment-received"
	TemplatePaymentOverdue   TemplateID = "payment-overdue"
	TemplateStageAdvanced    TemplateID = "stage-advanced"
	TemplateDealCompleted    TemplateID = "deal-completed"
	TemplateDealCancelled    TemplateID = "deal-cancelled"
	TemplateCommissionDue    TemplateID = "commission-due"
	TemplateCommissionPaid   TemplateID = "commission-paid"
	TemplateReceiptGenerated TemplateID = "receipt-generated"
)

// Fields carries the named values substituted into a template
type Fields map[string]string

var templates = map[TemplateID]string{
	TemplatePaymentReceived:  "Payment of {{amount}} received for deal {{deal_number}} ({{payment_type}}).",
	TemplatePaymentOverdue:   "Payment {{payment_type}} for deal {{deal_number}} is overdue since {{due_date}}.",
	TemplateStageAdvanced:    "Deal {{deal_number}} advanced from {{from_stage}} to {{to_stage}}.",
	TemplateDealCompleted:    "Deal {{deal_number}} completed. Total collected: {{total_paid}}.",
	TemplateDealCancelled:    "Deal {{deal_number}} cancelled: {{reason}}.",
	TemplateCommissionDue:    "Commission of {{amount}} for agent {{agent_id}} is due on {{due_date}}.",
	TemplateCommissionPaid:   "Commission of {{amount}} paid to agent {{agent_id}}.",
	TemplateReceiptGenerated: "Receipt {{receipt_number}} generated for deal {{deal_number}}.",
}

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render substitutes the fields into the named template. Unknown template ids
// are an error; placeholders without a matching field are left in place so the
// gap is visible in the rendered text.
func Render(id TemplateID, fields Fields) (string, error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", fmt.Errorf("unknown notification template: %s", id)
	}

	rendered := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := fields[name]; ok {
			return value
		}
		return match
	})
	return rendered, nil
}
