package alert

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/mrz1836/postmark"
)

// emailRegex covers the practical shape of deliverable addresses; full
// RFC 5322 validation is the provider's job.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Config holds alert delivery configuration. Postmark tokens are optional
// so development environments can run on the slog alerter alone; all four
// fields become required once the Postmark channel is enabled.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"ALERT_SENDER_EMAIL"`
	OpsEmail             string `env:"ALERT_OPS_EMAIL"`
}

func (c Config) validate() error {
	for _, tok := range []struct{ name, value string }{
		{"PostmarkServerToken", c.PostmarkServerToken},
		{"PostmarkAccountToken", c.PostmarkAccountToken},
	} {
		if tok.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, tok.name)
		}
	}

	for _, addr := range []struct{ name, value string }{
		{"SenderEmail", c.SenderEmail},
		{"OpsEmail", c.OpsEmail},
	} {
		if addr.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, addr.name)
		}
		if !emailRegex.MatchString(addr.value) {
			return fmt.Errorf("%w: %s must be a valid email address", ErrInvalidConfig, addr.name)
		}
	}

	return nil
}

type postmarkAlerter struct {
	client *postmark.Client
	config Config
}

// NewPostmarkAlerter creates a Postmark-backed alert channel that emails
// the operations inbox.
func NewPostmarkAlerter(cfg Config) (Alerter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &postmarkAlerter{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkAlerter creates a Postmark alerter, panicking on invalid
// configuration so a deployment with a broken alert channel refuses to
// start.
func MustNewPostmarkAlerter(cfg Config) Alerter {
	alerter, err := NewPostmarkAlerter(cfg)
	if err != nil {
		panic(err)
	}
	return alerter
}

func (p *postmarkAlerter) Send(ctx context.Context, a Alert) error {
	if err := a.Validate(); err != nil {
		return err
	}

	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:     p.config.SenderEmail,
		ReplyTo:  p.config.OpsEmail,
		To:       p.config.OpsEmail,
		Subject:  a.Subject,
		Tag:      a.Tag,
		HTMLBody: renderAlertHTML(a),
	})
	switch {
	case err != nil:
		return errors.Join(ErrFailedToSendAlert, err)
	case resp.ErrorCode > 0:
		return errors.Join(ErrFailedToSendAlert,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}

// renderAlertHTML builds a minimal self-contained email body. Alerts are
// operator-facing plumbing, not marketing mail, so no template machinery.
func renderAlertHTML(a Alert) string {
	var b strings.Builder
	b.WriteString("<h2>")
	b.WriteString(html.EscapeString(a.Subject))
	b.WriteString("</h2>")

	if a.Message != "" {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(a.Message))
		b.WriteString("</p>")
	}

	if len(a.Fields) > 0 {
		b.WriteString("<table>")
		for _, k := range a.sortedFieldKeys() {
			b.WriteString("<tr><td><strong>")
			b.WriteString(html.EscapeString(k))
			b.WriteString("</strong></td><td>")
			b.WriteString(html.EscapeString(a.Fields[k]))
			b.WriteString("</td></tr>")
		}
		b.WriteString("</table>")
	}

	if !a.At.IsZero() {
		b.WriteString("<p><small>")
		b.WriteString(a.At.UTC().Format("2006-01-02 15:04:05 UTC"))
		b.WriteString("</small></p>")
	}

	return b.String()
}
