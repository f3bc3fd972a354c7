package mailer

import (
	"fmt"

	"github.com/VeranoAtelier/verano-web/config"
	"github.com/wneessen/go-mail"
)

// Mailer relays contact form submissions to the studio inbox over SMTP.
type Mailer struct {
	mailClient   *mail.Client
	publicName   string
	mailAddress  string
	contactInbox string
}

func NewMailer(cfg *config.MailConfig) (*Mailer, error) {
	mailClient, err := mail.NewClient(cfg.MailHost,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize smtp client: %w", err)
	}

	return &Mailer{
		mailClient:   mailClient,
		publicName:   cfg.PublicName,
		mailAddress:  cfg.MailAddress,
		contactInbox: cfg.ContactInbox,
	}, nil
}

// ContactMessage forwards one submission. replyTo is the visitor's own
// address so the studio can answer directly.
func (m *Mailer) ContactMessage(visitorName string, replyTo string, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.publicName, m.mailAddress); err != nil {
		return fmt.Errorf("fail to set sender of contact message: %w", err)
	}
	if err := msg.To(m.contactInbox); err != nil {
		return fmt.Errorf("fail to set recipient of contact message: %w", err)
	}
	if err := msg.ReplyTo(replyTo); err != nil {
		return fmt.Errorf("fail to set reply-to of contact message: %w", err)
	}

	msg.Subject(fmt.Sprintf("Website contact from %s", visitorName))
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.mailClient.DialAndSend(msg); err != nil {
		return fmt.Errorf("fail to send contact message: %w", err)
	}
	return nil
}
