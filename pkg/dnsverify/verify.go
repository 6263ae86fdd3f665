// Package dnsverify checks the DNS records a sending domain needs before
// providers will deliver its mail: an SPF record, a DMARC policy, and
// optionally an ownership token proving the domain belongs to the
// account configuring it.
package dnsverify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrDNSLookupFailed   = errors.New("dns lookup failed")
	ErrNoSPFRecord       = errors.New("no spf record found")
	ErrNoDMARCRecord     = errors.New("no dmarc record found")
	ErrDomainNotVerified = errors.New("domain ownership not verified")
	ErrInvalidInput      = errors.New("invalid domain")
)

// Resolver is the subset of net.Resolver used for record lookups.
// Tests substitute a fake to avoid network access.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// Verifier checks sending-domain DNS records.
type Verifier struct {
	resolver Resolver
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithResolver overrides the DNS resolver.
func WithResolver(r Resolver) Option {
	return func(v *Verifier) {
		if r != nil {
			v.resolver = r
		}
	}
}

// New creates a Verifier using the system resolver.
func New(opts ...Option) *Verifier {
	v := &Verifier{resolver: &net.Resolver{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifySPF checks that the domain publishes an SPF record.
func (v *Verifier) VerifySPF(ctx context.Context, domain string) error {
	records, err := v.lookup(ctx, domain)
	if err != nil {
		return err
	}
	for _, record := range records {
		if strings.HasPrefix(record, "v=spf1") {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSPFRecord, domain)
}

// VerifyDMARC checks that the domain publishes a DMARC policy at the
// _dmarc subdomain.
func (v *Verifier) VerifyDMARC(ctx context.Context, domain string) error {
	records, err := v.lookup(ctx, "_dmarc."+strings.TrimSpace(strings.ToLower(domain)))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("%w: %s", ErrNoDMARCRecord, domain)
	}
	for _, record := range records {
		if strings.HasPrefix(record, "v=DMARC1") {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoDMARCRecord, domain)
}

// VerifyOwnership checks that the domain has a TXT record containing the
// given token.
func (v *Verifier) VerifyOwnership(ctx context.Context, domain, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidInput
	}
	records, err := v.lookup(ctx, domain)
	if err != nil {
		return err
	}
	for _, record := range records {
		if strings.Contains(record, token) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrDomainNotVerified, domain)
}

func (v *Verifier) lookup(ctx context.Context, domain string) ([]string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, ErrInvalidInput
	}
	records, err := v.resolver.LookupTXT(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, fmt.Errorf("%w: no txt records for %s", ErrDNSLookupFailed, domain)
		}
		return nil, fmt.Errorf("%w: %v", ErrDNSLookupFailed, err)
	}
	return records, nil
}
