package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testBranding() Branding {
	return Branding{
		CompanyName:    "Acme Studio",
		CompanyAddress: "1 Main St, Springfield",
		BaseURL:        "https://app.acme.test",
		SupportEmail:   "support@acme.test",
		FooterYear:     2026,
		SocialLinks:    []SocialLink{{Label: "Twitter", URL: "https://twitter.com/acme"}},
	}
}

// validData returns a valid payload for every supported template type.
func validData(t *testing.T, typ Type) Data {
	t.Helper()

	switch typ {
	case TypeVerification:
		return Verification{Name: "Alice", VerificationLink: "https://app.acme.test/verify/abc", ExpiresIn: "24 hours"}
	case TypePasswordReset:
		return PasswordReset{Name: "Alice", ResetLink: "https://app.acme.test/reset/abc", ExpiresIn: "1 hour"}
	case TypeWelcome:
		return Welcome{Name: "Alice", DashboardLink: "https://app.acme.test/dashboard"}
	case TypeInvoice:
		return Invoice{
			InvoiceNumber: "INV-100",
			ClientName:    "Globex",
			Amount:        "1500",
			Currency:      "$",
			DueDate:       "Mar 1",
			Items: []LineItem{
				{Description: "Design", Quantity: "10", Rate: "100", Amount: "1000"},
				{Description: "Development", Quantity: "5", Rate: "100", Amount: "500"},
			},
			Subtotal:    "1500",
			Total:       "1500",
			InvoiceLink: "https://app.acme.test/invoices/100",
		}
	case TypeInvoiceReminder:
		return InvoiceReminder{
			InvoiceNumber: "INV-99",
			Amount:        "800",
			Currency:      "$",
			DueDate:       "Feb 1",
			DaysOverdue:   5,
			InvoiceLink:   "https://app.acme.test/invoices/99",
		}
	case TypeStandupSummary:
		return StandupSummary{
			TeamName: "Platform",
			Date:     "2026-02-10",
			Entries: []StandupEntry{
				{Author: "Bob", Yesterday: "Shipped v2", Today: "Code review", Blockers: "None"},
			},
			BoardLink: "https://app.acme.test/board",
		}
	case TypeProjectSummary:
		return ProjectSummary{
			ProjectName:    "Apollo",
			Period:         "January",
			TasksCompleted: 12,
			TasksTotal:     20,
			Highlights:     []string{"Launched beta", "Onboarded 3 clients"},
			ReportLink:     "https://app.acme.test/reports/apollo",
		}
	case TypeMilestoneComplete:
		return MilestoneComplete{
			ProjectName:   "Apollo",
			Milestone:     "Beta launch",
			CompletedOn:   "Feb 2",
			NextMilestone: "GA",
			ProjectLink:   "https://app.acme.test/projects/apollo",
		}
	case TypeTaskAssigned:
		return TaskAssigned{
			TaskTitle:    "Fix intake form",
			ProjectName:  "Apollo",
			AssignedBy:   "Carol",
			DueDate:      "Feb 14",
			TaskPriority: "high",
			TaskLink:     "https://app.acme.test/tasks/55",
		}
	case TypeProposalSent:
		return ProposalSent{
			ProposalTitle: "Website redesign",
			ClientName:    "Globex",
			Amount:        "9000",
			Currency:      "$",
			ValidUntil:    "March 15",
			ProposalLink:  "https://app.acme.test/proposals/7",
		}
	case TypeContractSigned:
		return ContractSigned{
			ContractTitle: "MSA 2026",
			ClientName:    "Globex",
			SignedBy:      "Dan Smith",
			SignedOn:      "Feb 3",
			DocumentLink:  "https://app.acme.test/contracts/3",
		}
	case TypeHandoverReady:
		return HandoverReady{
			ProjectName: "Apollo",
			ClientName:  "Globex",
			Contents:    []string{"Credentials", "Runbook", "Source archive"},
			PackLink:    "https://app.acme.test/handover/apollo",
		}
	case TypeNotification:
		return Notification{
			Title:       "Weekly digest ready",
			Message:     "Your **weekly digest** is ready to view.",
			ActionLabel: "Open Digest",
			ActionLink:  "https://app.acme.test/digest",
		}
	}

	t.Fatalf("no valid payload registered for template type %q", typ)
	return nil
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := New(testBranding())
	require.NoError(t, err)
	return r
}

func TestRenderer_AllTypes_NonEmptyOutput(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	for _, typ := range All() {
		t.Run(string(typ), func(t *testing.T) {
			t.Parallel()

			out, err := r.Render(typ, validData(t, typ))
			require.NoError(t, err)
			require.NotEmpty(t, out.Subject)
			require.NotEmpty(t, out.HTML)
			require.NotEmpty(t, out.Text)
		})
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	for _, typ := range All() {
		data := validData(t, typ)

		first, err := r.Render(typ, data)
		require.NoError(t, err)
		second, err := r.Render(typ, data)
		require.NoError(t, err)

		require.Equal(t, first.Subject, second.Subject, "subject for %s", typ)
		require.Equal(t, first.HTML, second.HTML, "html for %s", typ)
		require.Equal(t, first.Text, second.Text, "text for %s", typ)
	}
}

func TestRenderer_UnsupportedType(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	_, err := r.Render(Type("unknown-type"), nil)
	require.ErrorIs(t, err, ErrUnsupportedTemplate)
}

func TestRenderer_NilData(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	_, err := r.Render(TypeWelcome, nil)
	require.ErrorIs(t, err, ErrInvalidTemplateData)
}

func TestRenderer_DataTypeMismatch(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	_, err := r.Render(TypeInvoice, Welcome{Name: "Alice"})
	require.ErrorIs(t, err, ErrInvalidTemplateData)
	require.ErrorContains(t, err, "welcome")
}

func TestRenderer_MissingRequiredField(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	invoice := validData(t, TypeInvoice).(Invoice)
	invoice.InvoiceNumber = ""

	_, err := r.Render(TypeInvoice, invoice)
	require.ErrorIs(t, err, ErrInvalidTemplateData)
	require.ErrorContains(t, err, "invoiceNumber")
}

func TestRenderer_Invoice_SubjectAndAmounts(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	out, err := r.Render(TypeInvoice, Invoice{
		InvoiceNumber: "INV-1",
		Amount:        "100",
		Currency:      "$",
		DueDate:       "Jan 1",
		Subtotal:      "100",
		Total:         "100",
		InvoiceLink:   "http://x",
		CompanyName:   "Co",
	})
	require.NoError(t, err)

	require.Contains(t, out.Subject, "INV-1")
	require.Contains(t, out.Subject, "Co")
	require.Contains(t, out.HTML, "$100")
	require.Contains(t, out.Text, "$100")
	require.Contains(t, out.Text, "http://x")
}

func TestRenderer_ButtonPrimitive(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	out, err := r.Render(TypeVerification, validData(t, TypeVerification))
	require.NoError(t, err)

	require.Contains(t, out.HTML, `class="btn"`)
	require.Contains(t, out.HTML, "https://app.acme.test/verify/abc")
	// Plaintext carries the same link without markup.
	require.Contains(t, out.Text, "https://app.acme.test/verify/abc")
	require.NotContains(t, out.Text, "<a")
}

func TestRenderer_TablePrimitive(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	out, err := r.Render(TypeInvoice, validData(t, TypeInvoice))
	require.NoError(t, err)

	require.Contains(t, out.HTML, "<table>")
	require.Contains(t, out.HTML, "Development")
	require.Contains(t, out.Text, "Development")
}

func TestRenderer_SanitizesScriptInUserContent(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	out, err := r.Render(TypeNotification, Notification{
		Title:   "Heads up",
		Message: `<script>alert("x")</script>See the update.`,
	})
	require.NoError(t, err)

	require.NotContains(t, out.HTML, "<script>")
	require.Contains(t, out.HTML, "See the update.")
}

func TestRenderer_FooterChrome(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	out, err := r.Render(TypeWelcome, validData(t, TypeWelcome))
	require.NoError(t, err)

	require.Contains(t, out.HTML, "Acme Studio")
	require.Contains(t, out.HTML, "2026")
	require.Contains(t, out.HTML, "1 Main St, Springfield")
	require.Contains(t, out.HTML, "https://twitter.com/acme")
}
