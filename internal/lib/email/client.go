// Package email provides the transactional email client.
//
// It sends through Resend and renders bodies from embedded HTML templates.
// Without an API key (local development) rendered emails are logged instead
// of sent.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/paulloo/relivator/internal/config"
)

// Client wraps the Resend client, the sender address, and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from config. An empty API key produces
// a client that only logs rendered emails.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	var client *resend.Client
	if cfg.Integration.ResendAPIKey != "" {
		client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}

	from := cfg.Integration.EmailFrom
	if from == "" {
		from = "Relivator <noreply@relivator.dev>"
	}

	return &Client{
		client: client,
		from:   from,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends the result to the
// recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := c.render(templateName, data)
	if err != nil {
		return err
	}

	if c.client == nil {
		// Local preview mode: no API key configured.
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", string(templateName)).
			Str("body", html).
			Msg("email not sent (no resend api key), rendered for preview")
		return nil
	}

	_, err = c.client.Emails.Send(&resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errors.Wrapf(err, "sending %q email to %s", templateName, to)
	}

	c.logger.Info().
		Str("to", to).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}

func (c *Client) render(templateName Template, data map[string]string) (string, error) {
	path := fmt.Sprintf("templates/%s.html", templateName)

	tmpl, err := template.ParseFS(templateFS, path)
	if err != nil {
		return "", errors.Wrapf(err, "parsing email template %q", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "rendering email template %q", templateName)
	}

	return buf.String(), nil
}
