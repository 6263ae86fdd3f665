package templates

import "fmt"

// Verification is the payload for account email verification.
type Verification struct {
	Name             string
	VerificationLink string
	ExpiresIn        string // human-readable validity window, e.g. "24 hours"
}

func (Verification) TemplateType() Type { return TypeVerification }

func (d Verification) validate() error {
	if d.VerificationLink == "" {
		return missingField(TypeVerification, "verificationLink")
	}
	return nil
}

func (d Verification) subject(b Branding) string {
	return fmt.Sprintf("Verify your email address for %s", b.company(""))
}

func (d Verification) markdown(b Branding) string {
	expiry := ""
	if d.ExpiresIn != "" {
		expiry = fmt.Sprintf("This link expires in %s.", d.ExpiresIn)
	}
	return blocks(
		mdHeading("Verify your email"),
		greeting(d.Name),
		"Please confirm your email address to activate your account.",
		mdButton("Verify Email", d.VerificationLink),
		expiry,
		"If you did not create an account, you can safely ignore this email.",
	)
}

func (d Verification) plaintext(b Branding) string {
	expiry := ""
	if d.ExpiresIn != "" {
		expiry = fmt.Sprintf("This link expires in %s.", d.ExpiresIn)
	}
	return textLines(
		greeting(d.Name),
		"Please confirm your email address to activate your account.",
		textLink("Verify your email", d.VerificationLink),
		expiry,
		"If you did not create an account, you can safely ignore this email.",
	)
}

// PasswordReset is the payload for password reset requests.
type PasswordReset struct {
	Name      string
	ResetLink string
	ExpiresIn string
}

func (PasswordReset) TemplateType() Type { return TypePasswordReset }

func (d PasswordReset) validate() error {
	if d.ResetLink == "" {
		return missingField(TypePasswordReset, "resetLink")
	}
	return nil
}

func (d PasswordReset) subject(b Branding) string {
	return fmt.Sprintf("Reset your %s password", b.company(""))
}

func (d PasswordReset) markdown(b Branding) string {
	expiry := ""
	if d.ExpiresIn != "" {
		expiry = fmt.Sprintf("For your security this link expires in %s.", d.ExpiresIn)
	}
	return blocks(
		mdHeading("Password reset"),
		greeting(d.Name),
		"We received a request to reset the password for your account.",
		mdButton("Reset Password", d.ResetLink),
		expiry,
		"If you did not request a reset, no action is needed.",
	)
}

func (d PasswordReset) plaintext(b Branding) string {
	expiry := ""
	if d.ExpiresIn != "" {
		expiry = fmt.Sprintf("For your security this link expires in %s.", d.ExpiresIn)
	}
	return textLines(
		greeting(d.Name),
		"We received a request to reset the password for your account.",
		textLink("Reset your password", d.ResetLink),
		expiry,
		"If you did not request a reset, no action is needed.",
	)
}

// Welcome is the payload for the post-signup welcome email.
type Welcome struct {
	Name          string
	DashboardLink string
}

func (Welcome) TemplateType() Type { return TypeWelcome }

func (d Welcome) validate() error {
	if d.Name == "" {
		return missingField(TypeWelcome, "name")
	}
	return nil
}

func (d Welcome) subject(b Branding) string {
	return fmt.Sprintf("Welcome to %s, %s!", b.company(""), d.Name)
}

func (d Welcome) markdown(b Branding) string {
	cta := ""
	if d.DashboardLink != "" {
		cta = mdButton("Go to Dashboard", d.DashboardLink)
	}
	return blocks(
		mdHeading(fmt.Sprintf("Welcome aboard, %s!", d.Name)),
		fmt.Sprintf("Your %s account is ready. Here is what you can do next:", b.company("")),
		mdList([]string{
			"Complete your profile",
			"Invite your team",
			"Create your first project",
		}),
		cta,
	)
}

func (d Welcome) plaintext(b Branding) string {
	return textLines(
		fmt.Sprintf("Welcome aboard, %s!", d.Name),
		fmt.Sprintf("Your %s account is ready. Here is what you can do next:", b.company("")),
		"- Complete your profile",
		"- Invite your team",
		"- Create your first project",
		textLink("Dashboard", d.DashboardLink),
	)
}

// Notification is the payload for generic in-app notifications delivered by
// email. Message may contain limited markdown; the rendered fragment is
// sanitized before layout injection.
type Notification struct {
	Title       string
	Message     string
	ActionLabel string
	ActionLink  string
}

func (Notification) TemplateType() Type { return TypeNotification }

func (d Notification) validate() error {
	if d.Title == "" {
		return missingField(TypeNotification, "title")
	}
	if d.Message == "" {
		return missingField(TypeNotification, "message")
	}
	return nil
}

func (d Notification) subject(b Branding) string {
	return d.Title
}

func (d Notification) markdown(b Branding) string {
	cta := ""
	if d.ActionLink != "" {
		label := d.ActionLabel
		if label == "" {
			label = "View Details"
		}
		cta = mdButton(label, d.ActionLink)
	}
	return blocks(
		mdHeading(d.Title),
		d.Message,
		cta,
	)
}

func (d Notification) plaintext(b Branding) string {
	label := d.ActionLabel
	if label == "" {
		label = "View details"
	}
	return textLines(
		d.Title,
		d.Message,
		textLink(label, d.ActionLink),
	)
}

func greeting(name string) string {
	if name == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hello %s,", name)
}
