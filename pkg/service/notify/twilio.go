package notify

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
)

// channelTimeout bounds every outbound provider call. Failures are
// terminal per attempt; nothing here retries.
const channelTimeout = 15 * time.Second

// messageCreator is the slice of the Twilio API the senders need
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

// TwilioSMS sends plain SMS through the Twilio messaging API
type TwilioSMS struct {
	api  messageCreator
	from string
}

// NewTwilioSMS creates an SMS sender using the given account credentials
// and sender phone number
func NewTwilioSMS(accountSID, authToken, from string) *TwilioSMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.Client.SetTimeout(channelTimeout)

	return &TwilioSMS{
		api:  client.Api,
		from: from,
	}
}

// Send delivers the text as an SMS and returns the provider status
func (s *TwilioSMS) Send(ctx context.Context, member model.GroupMember, text string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(member.Phone)
	params.SetFrom(s.from)
	params.SetBody(text)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send SMS",
			goerr.V("to", member.Phone))
	}
	if msg.Status == nil {
		return "", goerr.New("SMS provider returned no status",
			goerr.V("to", member.Phone))
	}
	return *msg.Status, nil
}

// TwilioWhatsApp sends WhatsApp texts through the same Twilio messaging
// API, with the whatsapp: address prefix on both ends
type TwilioWhatsApp struct {
	api  messageCreator
	from string
}

// NewTwilioWhatsApp creates a WhatsApp sender using the given account
// credentials and WhatsApp-enabled sender number
func NewTwilioWhatsApp(accountSID, authToken, from string) *TwilioWhatsApp {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.Client.SetTimeout(channelTimeout)

	return &TwilioWhatsApp{
		api:  client.Api,
		from: from,
	}
}

// Send delivers the text over WhatsApp and returns the provider status
func (w *TwilioWhatsApp) Send(ctx context.Context, member model.GroupMember, text string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + member.Phone)
	params.SetFrom("whatsapp:" + w.from)
	params.SetBody(text)

	msg, err := w.api.CreateMessage(params)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send WhatsApp message",
			goerr.V("to", member.Phone))
	}
	if msg.Status == nil {
		return "", goerr.New("WhatsApp provider returned no status",
			goerr.V("to", member.Phone))
	}
	return *msg.Status, nil
}
