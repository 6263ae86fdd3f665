package templates

import "fmt"

// LineItem is one row of an invoice items table.
type LineItem struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// Invoice is the payload for a new invoice email.
type Invoice struct {
	InvoiceNumber string
	ClientName    string
	Amount        string // total due, unformatted
	Currency      string // currency symbol, e.g. "$"
	DueDate       string
	Items         []LineItem
	Subtotal      string
	Tax           string
	Total         string
	InvoiceLink   string
	CompanyName   string // issuing company, overrides branding in the subject
}

func (Invoice) TemplateType() Type { return TypeInvoice }

func (d Invoice) validate() error {
	switch {
	case d.InvoiceNumber == "":
		return missingField(TypeInvoice, "invoiceNumber")
	case d.Amount == "":
		return missingField(TypeInvoice, "amount")
	case d.Currency == "":
		return missingField(TypeInvoice, "currency")
	case d.InvoiceLink == "":
		return missingField(TypeInvoice, "invoiceLink")
	}
	return nil
}

func (d Invoice) subject(b Branding) string {
	return fmt.Sprintf("Invoice %s from %s", d.InvoiceNumber, b.company(d.CompanyName))
}

func (d Invoice) markdown(b Branding) string {
	due := ""
	if d.DueDate != "" {
		due = fmt.Sprintf("Payment is due by **%s**.", d.DueDate)
	}
	return blocks(
		mdHeading(fmt.Sprintf("Invoice %s", d.InvoiceNumber)),
		greeting(d.ClientName),
		fmt.Sprintf("%s has issued you an invoice for %s.",
			b.company(d.CompanyName), money(d.Currency, d.Amount)),
		d.itemsTable(),
		d.totalsTable(),
		due,
		mdButton("View Invoice", d.InvoiceLink),
	)
}

func (d Invoice) itemsTable() string {
	if len(d.Items) == 0 {
		return ""
	}
	rows := make([][]string, len(d.Items))
	for i, item := range d.Items {
		rows[i] = []string{
			item.Description,
			item.Quantity,
			money(d.Currency, item.Rate),
			money(d.Currency, item.Amount),
		}
	}
	return mdTable([]string{"Description", "Qty", "Rate", "Amount"}, rows)
}

func (d Invoice) totalsTable() string {
	rows := [][]string{}
	if d.Subtotal != "" {
		rows = append(rows, []string{"Subtotal", money(d.Currency, d.Subtotal)})
	}
	if d.Tax != "" {
		rows = append(rows, []string{"Tax", money(d.Currency, d.Tax)})
	}
	total := d.Total
	if total == "" {
		total = d.Amount
	}
	rows = append(rows, []string{"**Total due**", "**" + money(d.Currency, total) + "**"})
	return mdTable([]string{"", ""}, rows)
}

func (d Invoice) plaintext(b Branding) string {
	lines := []string{
		fmt.Sprintf("Invoice %s from %s", d.InvoiceNumber, b.company(d.CompanyName)),
		greeting(d.ClientName),
		fmt.Sprintf("Amount due: %s", money(d.Currency, d.Amount)),
	}
	for _, item := range d.Items {
		lines = append(lines, fmt.Sprintf("- %s: %s x %s = %s",
			item.Description, item.Quantity,
			money(d.Currency, item.Rate), money(d.Currency, item.Amount)))
	}
	if d.Subtotal != "" {
		lines = append(lines, fmt.Sprintf("Subtotal: %s", money(d.Currency, d.Subtotal)))
	}
	if d.Tax != "" {
		lines = append(lines, fmt.Sprintf("Tax: %s", money(d.Currency, d.Tax)))
	}
	total := d.Total
	if total == "" {
		total = d.Amount
	}
	lines = append(lines, fmt.Sprintf("Total due: %s", money(d.Currency, total)))
	if d.DueDate != "" {
		lines = append(lines, fmt.Sprintf("Due date: %s", d.DueDate))
	}
	lines = append(lines, textLink("View invoice", d.InvoiceLink))
	return textLines(lines...)
}

// InvoiceReminder is the payload for an overdue or upcoming invoice reminder.
type InvoiceReminder struct {
	InvoiceNumber string
	ClientName    string
	Amount        string
	Currency      string
	DueDate       string
	DaysOverdue   int
	InvoiceLink   string
}

func (InvoiceReminder) TemplateType() Type { return TypeInvoiceReminder }

func (d InvoiceReminder) validate() error {
	switch {
	case d.InvoiceNumber == "":
		return missingField(TypeInvoiceReminder, "invoiceNumber")
	case d.Amount == "":
		return missingField(TypeInvoiceReminder, "amount")
	case d.Currency == "":
		return missingField(TypeInvoiceReminder, "currency")
	case d.InvoiceLink == "":
		return missingField(TypeInvoiceReminder, "invoiceLink")
	}
	return nil
}

func (d InvoiceReminder) subject(b Branding) string {
	if d.DaysOverdue > 0 {
		return fmt.Sprintf("Invoice %s is overdue", d.InvoiceNumber)
	}
	return fmt.Sprintf("Reminder: invoice %s is due soon", d.InvoiceNumber)
}

func (d InvoiceReminder) markdown(b Branding) string {
	status := "This is a friendly reminder that payment is coming up."
	statusBadge := mdBadge("due soon")
	if d.DaysOverdue > 0 {
		status = fmt.Sprintf("This invoice is **%d days overdue**.", d.DaysOverdue)
		statusBadge = mdBadge("overdue")
	}
	due := ""
	if d.DueDate != "" {
		due = fmt.Sprintf("Due date: **%s**", d.DueDate)
	}
	return blocks(
		mdHeading(fmt.Sprintf("Invoice %s %s", d.InvoiceNumber, statusBadge)),
		greeting(d.ClientName),
		fmt.Sprintf("The outstanding balance is %s.", money(d.Currency, d.Amount)),
		status,
		due,
		mdButton("Pay Now", d.InvoiceLink),
	)
}

func (d InvoiceReminder) plaintext(b Branding) string {
	status := "This is a friendly reminder that payment is coming up."
	if d.DaysOverdue > 0 {
		status = fmt.Sprintf("This invoice is %d days overdue.", d.DaysOverdue)
	}
	due := ""
	if d.DueDate != "" {
		due = fmt.Sprintf("Due date: %s", d.DueDate)
	}
	return textLines(
		fmt.Sprintf("Invoice %s", d.InvoiceNumber),
		greeting(d.ClientName),
		fmt.Sprintf("The outstanding balance is %s.", money(d.Currency, d.Amount)),
		status,
		due,
		textLink("Pay now", d.InvoiceLink),
	)
}

// ProposalSent is the payload for a proposal shared with a client.
type ProposalSent struct {
	ProposalTitle string
	ClientName    string
	Amount        string
	Currency      string
	ValidUntil    string
	ProposalLink  string
	SenderName    string
}

func (ProposalSent) TemplateType() Type { return TypeProposalSent }

func (d ProposalSent) validate() error {
	switch {
	case d.ProposalTitle == "":
		return missingField(TypeProposalSent, "proposalTitle")
	case d.ProposalLink == "":
		return missingField(TypeProposalSent, "proposalLink")
	}
	return nil
}

func (d ProposalSent) subject(b Branding) string {
	return fmt.Sprintf("Proposal: %s", d.ProposalTitle)
}

func (d ProposalSent) markdown(b Branding) string {
	amount := ""
	if d.Amount != "" {
		amount = fmt.Sprintf("Proposed amount: **%s**", money(d.Currency, d.Amount))
	}
	validity := ""
	if d.ValidUntil != "" {
		validity = fmt.Sprintf("This proposal is valid until %s.", d.ValidUntil)
	}
	from := b.company("")
	if d.SenderName != "" {
		from = d.SenderName
	}
	return blocks(
		mdHeading(d.ProposalTitle),
		greeting(d.ClientName),
		fmt.Sprintf("%s has sent you a proposal to review and sign.", from),
		amount,
		validity,
		mdButton("Review Proposal", d.ProposalLink),
	)
}

func (d ProposalSent) plaintext(b Branding) string {
	amount := ""
	if d.Amount != "" {
		amount = fmt.Sprintf("Proposed amount: %s", money(d.Currency, d.Amount))
	}
	validity := ""
	if d.ValidUntil != "" {
		validity = fmt.Sprintf("This proposal is valid until %s.", d.ValidUntil)
	}
	from := b.company("")
	if d.SenderName != "" {
		from = d.SenderName
	}
	return textLines(
		fmt.Sprintf("Proposal: %s", d.ProposalTitle),
		greeting(d.ClientName),
		fmt.Sprintf("%s has sent you a proposal to review and sign.", from),
		amount,
		validity,
		textLink("Review proposal", d.ProposalLink),
	)
}

// ContractSigned is the payload confirming an e-signature completion.
type ContractSigned struct {
	ContractTitle string
	ClientName    string
	SignedBy      string
	SignedOn      string
	DocumentLink  string
}

func (ContractSigned) TemplateType() Type { return TypeContractSigned }

func (d ContractSigned) validate() error {
	switch {
	case d.ContractTitle == "":
		return missingField(TypeContractSigned, "contractTitle")
	case d.SignedBy == "":
		return missingField(TypeContractSigned, "signedBy")
	}
	return nil
}

func (d ContractSigned) subject(b Branding) string {
	return fmt.Sprintf("%s has been signed", d.ContractTitle)
}

func (d ContractSigned) markdown(b Branding) string {
	when := ""
	if d.SignedOn != "" {
		when = fmt.Sprintf("Signed on %s.", d.SignedOn)
	}
	doc := ""
	if d.DocumentLink != "" {
		doc = mdButton("View Signed Document", d.DocumentLink)
	}
	return blocks(
		mdHeading(fmt.Sprintf("%s %s", d.ContractTitle, mdBadge("signed"))),
		greeting(d.ClientName),
		fmt.Sprintf("**%s** has signed the contract.", d.SignedBy),
		when,
		doc,
	)
}

func (d ContractSigned) plaintext(b Branding) string {
	when := ""
	if d.SignedOn != "" {
		when = fmt.Sprintf("Signed on %s.", d.SignedOn)
	}
	return textLines(
		fmt.Sprintf("%s has been signed", d.ContractTitle),
		greeting(d.ClientName),
		fmt.Sprintf("%s has signed the contract.", d.SignedBy),
		when,
		textLink("View signed document", d.DocumentLink),
	)
}
