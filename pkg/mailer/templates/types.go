package templates

// Type identifies which structured-data shape and rendering logic apply to an
// email. The set is closed: every Type has exactly one Data variant.
type Type string

const (
	TypeVerification      Type = "verification"
	TypePasswordReset     Type = "password-reset"
	TypeWelcome           Type = "welcome"
	TypeInvoice           Type = "invoice"
	TypeInvoiceReminder   Type = "invoice-reminder"
	TypeStandupSummary    Type = "standup-summary"
	TypeProjectSummary    Type = "project-summary"
	TypeMilestoneComplete Type = "milestone-complete"
	TypeTaskAssigned      Type = "task-assigned"
	TypeProposalSent      Type = "proposal-sent"
	TypeContractSigned    Type = "contract-signed"
	TypeHandoverReady     Type = "handover-ready"
	TypeNotification      Type = "notification"
)

// All returns every supported template type.
func All() []Type {
	return []Type{
		TypeVerification,
		TypePasswordReset,
		TypeWelcome,
		TypeInvoice,
		TypeInvoiceReminder,
		TypeStandupSummary,
		TypeProjectSummary,
		TypeMilestoneComplete,
		TypeTaskAssigned,
		TypeProposalSent,
		TypeContractSigned,
		TypeHandoverReady,
		TypeNotification,
	}
}

// Valid reports whether t is a supported template type.
func (t Type) Valid() bool {
	switch t {
	case TypeVerification, TypePasswordReset, TypeWelcome, TypeInvoice,
		TypeInvoiceReminder, TypeStandupSummary, TypeProjectSummary,
		TypeMilestoneComplete, TypeTaskAssigned, TypeProposalSent,
		TypeContractSigned, TypeHandoverReady, TypeNotification:
		return true
	}
	return false
}

// Data is the closed union of template payloads. Each variant carries the
// required fields for its template type and knows how to produce its subject,
// markdown body, and independent plaintext body.
//
// The unexported methods close the union: external packages cannot add
// variants, so adding a template type is a change inside this package that
// the compiler checks end to end.
type Data interface {
	// TemplateType returns the Type this payload belongs to.
	TemplateType() Type

	validate() error
	subject(b Branding) string
	markdown(b Branding) string
	plaintext(b Branding) string
}

// Rendered is the output of one render call.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}
