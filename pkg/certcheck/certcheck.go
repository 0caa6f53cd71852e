// Package certcheck classifies URLs by inspecting the TLS certificate
// presented by their host. The handshake outcome is always mapped to a
// domain.CertSignal; this signal never fails hard.
package certcheck

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"time"
	"urlcheck/pkg/domain"
)

const (
	defaultTimeout = 10 * time.Second
	defaultPort    = "443"
)

// DialFunc performs a TLS handshake against addr (host:port) verifying the
// certificate for serverName, and returns the resulting connection state.
type DialFunc func(ctx context.Context, addr, serverName string) (*tls.ConnectionState, error)

// Checker is the abstraction for the certificate verification signal.
//
//go:generate mockgen -package mockcertcheck -source=certcheck.go -destination=mock/mockcertcheck.go *
type Checker interface {
	// Check inspects the certificate of the URL's host. All failures are
	// classified into the returned signal; none are fatal.
	Check(ctx context.Context, URL string) domain.CertSignal
}

type checker struct {
	timeout time.Duration
	dial    DialFunc
	now     func() time.Time
}

// Options configure the certificate checker.
type Options struct {
	// Timeout bounds the TCP connect plus TLS handshake. Zero means 10s.
	Timeout time.Duration
	// Dial overrides the handshake function. Used in tests; nil means a real
	// TLS dial with system roots.
	Dial DialFunc
	// Now overrides the clock used for expiry comparison. Used in tests.
	Now func() time.Time
}

// New constructs a certificate Checker.
func New(opts Options) Checker {
	c := &checker{
		timeout: opts.Timeout,
		dial:    opts.Dial,
		now:     opts.Now,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.dial == nil {
		c.dial = tlsDial
	}
	if c.now == nil {
		c.now = time.Now
	}

	return c
}

// tlsDial is the production DialFunc: a real handshake verified against the
// system root pool. The handshake blocks on network I/O; the caller bounds it
// via the context deadline.
func tlsDial(ctx context.Context, addr, serverName string) (*tls.ConnectionState, error) {
	dialer := tls.Dialer{
		Config: &tls.Config{
			ServerName: serverName,
			MinVersion: tls.VersionTLS12,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	defer func() {
		_ = conn.Close()
	}()

	state := conn.(*tls.Conn).ConnectionState()

	return &state, nil
}

func (c *checker) Check(ctx context.Context, URL string) domain.CertSignal {
	u, err := url.Parse(URL)
	if err != nil {
		return domain.CertSignal{
			Status: domain.StatusUnknown,
			Error:  err.Error(),
		}
	}

	// A non-HTTPS URL is suspicious on its own; no connection is attempted.
	if u.Scheme != "https" {
		return domain.CertSignal{
			Checked: true,
			HasSSL:  false,
			Status:  domain.StatusSuspicious,
			Reason:  "no secure transport",
		}
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	state, err := c.dial(dialCtx, net.JoinHostPort(host, port), host)
	if err != nil {
		return classifyHandshakeError(err)
	}

	if state == nil || len(state.PeerCertificates) == 0 {
		return domain.CertSignal{
			Checked: true,
			HasSSL:  false,
			Status:  domain.StatusSuspicious,
			Reason:  "could not obtain certificate",
		}
	}

	cert := state.PeerCertificates[0]
	signal := domain.CertSignal{
		Checked: true,
		HasSSL:  true,
		Issuer:  issuerName(cert),
		Subject: subjectName(cert, host),
		Expiry:  cert.NotAfter,
	}

	// A zero NotAfter means the expiry could not be read; fail open on the
	// parse, not on trust.
	if !cert.NotAfter.IsZero() && cert.NotAfter.Before(c.now()) {
		signal.Status = domain.StatusSuspicious
		signal.Reason = "certificate expired"

		return signal
	}

	signal.Status = domain.StatusSafe

	return signal
}

// classifyHandshakeError maps a failed handshake to a signal: verification
// failures are a strong malicious indicator, timeouts and everything else
// degrade to unknown.
func classifyHandshakeError(err error) domain.CertSignal {
	var (
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostErr      x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	if errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr) {
		return domain.CertSignal{
			Checked: true,
			HasSSL:  true,
			Status:  domain.StatusMalicious,
			Reason:  "certificate invalid or untrusted",
			Error:   err.Error(),
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.CertSignal{
			Status: domain.StatusUnknown,
			Error:  "timeout",
		}
	}

	return domain.CertSignal{
		Status: domain.StatusUnknown,
		Error:  err.Error(),
	}
}

func issuerName(cert *x509.Certificate) string {
	if len(cert.Issuer.Organization) > 0 && cert.Issuer.Organization[0] != "" {
		return cert.Issuer.Organization[0]
	}
	if cert.Issuer.CommonName != "" {
		return cert.Issuer.CommonName
	}

	return "unknown"
}

func subjectName(cert *x509.Certificate, fallback string) string {
	if cert.Subject.CommonName != "" {
		return cert.Subject.CommonName
	}

	return fallback
}
