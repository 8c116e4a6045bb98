package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	sgrest "github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// mailSender is the slice of the SendGrid client the sender needs
type mailSender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*sgrest.Response, error)
}

// SendGridEmail sends notification emails through SendGrid. Unlike the
// SMS and WhatsApp channels, which deliver the shared message text, the
// email channel renders its own subject and body from the event config.
type SendGridEmail struct {
	client mailSender
	from   string
	event  *model.EventConfig
}

// NewSendGridEmail creates an email sender
func NewSendGridEmail(apiKey, fromEmail string, event *model.EventConfig) *SendGridEmail {
	return &SendGridEmail{
		client: sendgrid.NewSendClient(apiKey),
		from:   fromEmail,
		event:  event,
	}
}

// Send delivers the email. On acceptance by the provider the returned
// status is always the literal "sent".
func (e *SendGridEmail) Send(ctx context.Context, member model.GroupMember, text string) (string, error) {
	sendCtx, cancel := context.WithTimeout(ctx, channelTimeout)
	defer cancel()

	subject, err := e.event.Render(e.event.EmailSubject, member.Name)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render email subject")
	}
	plain, err := e.event.Render(e.event.EmailText, member.Name)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render email body")
	}
	if plain == "" {
		plain = text
	}
	html, err := e.event.Render(e.event.EmailHTML, member.Name)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render email HTML body")
	}

	from := sgmail.NewEmail("Wedding Planning Team", e.from)
	to := sgmail.NewEmail(member.Name, member.Email)
	message := sgmail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := e.client.SendWithContext(sendCtx, message)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send email",
			goerr.V("to", member.Email))
	}
	if resp.StatusCode >= 300 {
		return "", goerr.New("email provider rejected message",
			goerr.V("to", member.Email),
			goerr.V("statusCode", resp.StatusCode))
	}
	return types.DeliverySent, nil
}
