package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/service/notify"
)

// Twilio holds Twilio configuration for the SMS and WhatsApp channels
type Twilio struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

// Flags returns CLI flags for Twilio configuration
func (t *Twilio) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "twilio-account-sid",
			Usage:       "Twilio account SID",
			Category:    "Twilio",
			Sources:     cli.EnvVars("MANDAP_TWILIO_ACCOUNT_SID"),
			Destination: &t.AccountSID,
		},
		&cli.StringFlag{
			Name:        "twilio-auth-token",
			Usage:       "Twilio auth token",
			Category:    "Twilio",
			Sources:     cli.EnvVars("MANDAP_TWILIO_AUTH_TOKEN"),
			Destination: &t.AuthToken,
		},
		&cli.StringFlag{
			Name:        "twilio-phone-number",
			Usage:       "Sender phone number for SMS",
			Category:    "Twilio",
			Sources:     cli.EnvVars("MANDAP_TWILIO_PHONE_NUMBER"),
			Destination: &t.PhoneNumber,
		},
		&cli.StringFlag{
			Name:        "twilio-whatsapp-number",
			Usage:       "WhatsApp-enabled sender phone number",
			Category:    "Twilio",
			Sources:     cli.EnvVars("MANDAP_TWILIO_WHATSAPP_NUMBER"),
			Destination: &t.WhatsAppNumber,
		},
	}
}

// ConfigureSMS creates the SMS sender, or nil when unconfigured
func (t *Twilio) ConfigureSMS() interfaces.Sender {
	if !t.IsConfigured() || t.PhoneNumber == "" {
		return nil
	}
	return notify.NewTwilioSMS(t.AccountSID, t.AuthToken, t.PhoneNumber)
}

// ConfigureWhatsApp creates the WhatsApp sender, or nil when unconfigured
func (t *Twilio) ConfigureWhatsApp() interfaces.Sender {
	if !t.IsConfigured() || t.WhatsAppNumber == "" {
		return nil
	}
	return notify.NewTwilioWhatsApp(t.AccountSID, t.AuthToken, t.WhatsAppNumber)
}

// IsConfigured checks if Twilio credentials are present
func (t *Twilio) IsConfigured() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// LogValue returns structured log value
func (t Twilio) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_account_sid", t.AccountSID != ""),
		slog.Bool("has_auth_token", t.AuthToken != ""),
		slog.Bool("has_phone_number", t.PhoneNumber != ""),
		slog.Bool("has_whatsapp_number", t.WhatsAppNumber != ""),
	)
}
