package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Client sends transactional mail through SendGrid.
type Client struct {
	apiKey   string
	from     string
	fromName string
	log      *zap.Logger
}

func NewClient(apiKey, from, fromName string, log *zap.Logger) *Client {
	return &Client{apiKey: apiKey, from: from, fromName: fromName, log: log}
}

func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(c.fromName, c.from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(c.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	c.log.Info("mail sent", zap.String("to", to), zap.String("subject", subject), zap.Int("status", resp.StatusCode))
	return nil
}

func (c *Client) SendInvitation(ctx context.Context, to, campaignName, acceptURL string) error {
	subject := fmt.Sprintf("You're invited to collaborate on %q", campaignName)
	body := fmt.Sprintf(
		"You have been invited to create content for the campaign %q.\n\n"+
			"Accept the invitation here: %s\n\n"+
			"The link expires; if it no longer works, ask the brand to re-invite you.",
		campaignName, acceptURL)
	return c.Send(ctx, to, subject, body)
}

func (c *Client) SendAssignment(ctx context.Context, to, campaignName string) error {
	subject := fmt.Sprintf("You've been assigned to %q", campaignName)
	body := fmt.Sprintf(
		"You have been assigned to the campaign %q.\n\n"+
			"Sign in, accept the assignment and read the brief to get started.",
		campaignName)
	return c.Send(ctx, to, subject, body)
}
