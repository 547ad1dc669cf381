// Package mail sends the analysis result as an HTML email with the full
// result attached as JSON. Sending is strictly best-effort: every failure is
// reported inline in the response's mail field and never fails the request.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/onedaone/reco-ai-demo/internal/config"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

const (
	subject        = "Reco AI — Analysis result"
	attachmentName = "reco-ai-result.json"
)

// Sender abstracts the SMTP transport so tests can fake it.
type Sender interface {
	Send(ctx context.Context, msg *gomail.Msg) error
}

type smtpSender struct {
	client *gomail.Client
}

func (s *smtpSender) Send(ctx context.Context, msg *gomail.Msg) error {
	return s.client.DialAndSendWithContext(ctx, msg)
}

func newSMTPSender(cfg config.MailConfig) (Sender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &smtpSender{client: client}, nil
}

// Dispatcher composes and sends result notifications.
type Dispatcher struct {
	cfg    config.MailConfig
	sender Sender
}

// NewDispatcher creates a Dispatcher. When no SMTP host is configured the
// dispatcher still works but reports every requested send as failed.
func NewDispatcher(cfg config.MailConfig) (*Dispatcher, error) {
	d := &Dispatcher{cfg: cfg}
	if cfg.Host != "" {
		sender, err := newSMTPSender(cfg)
		if err != nil {
			return nil, err
		}
		d.sender = sender
	}
	return d, nil
}

// NewDispatcherWithSender injects a transport; used by tests.
func NewDispatcherWithSender(cfg config.MailConfig, sender Sender) *Dispatcher {
	return &Dispatcher{cfg: cfg, sender: sender}
}

// Dispatch sends the result to the override recipient, or the configured
// default when none is given. Returns nil when notification was not
// requested or no recipient is resolvable. The recipient address is not
// syntax-checked up front; a bad address surfaces as the outcome's Error.
func (d *Dispatcher) Dispatch(ctx context.Context, res *models.AnalysisResult, attachment []byte, enabled bool, override string) *models.MailOutcome {
	if !enabled {
		return nil
	}

	to := override
	if to == "" {
		to = d.cfg.DefaultReceiver
	}
	if to == "" {
		return nil
	}

	if d.sender == nil {
		return &models.MailOutcome{Error: "mail transport not configured"}
	}

	if res == nil {
		res = &models.AnalysisResult{}
	}

	msg, id, err := d.compose(res, attachment, to)
	if err == nil {
		err = d.sender.Send(ctx, msg)
	}
	if err != nil {
		slog.Error("mail dispatch failed", "to", to, "error", err)
		return &models.MailOutcome{Error: err.Error()}
	}

	return &models.MailOutcome{To: to, MessageID: id}
}

func (d *Dispatcher) compose(res *models.AnalysisResult, attachment []byte, to string) (*gomail.Msg, string, error) {
	html, err := renderBody(res)
	if err != nil {
		return nil, "", fmt.Errorf("render mail body: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(d.cfg.From); err != nil {
		return nil, "", fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, "", fmt.Errorf("set to address: %w", err)
	}

	id := fmt.Sprintf("%s@reco-ai", uuid.New())
	msg.SetMessageIDWithValue(id)
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, html)
	if err := msg.AttachReader(attachmentName, bytes.NewReader(attachment)); err != nil {
		return nil, "", fmt.Errorf("attach result json: %w", err)
	}

	return msg, id, nil
}
