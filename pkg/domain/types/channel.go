package types

// Channel is one notification delivery mechanism
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// String returns the string representation
func (c Channel) String() string {
	return string(c)
}

// Delivery status vocabulary. Provider-native states (e.g. Twilio's
// "queued", "sent") flow through verbatim; these are the values the
// dispatcher itself assigns.
const (
	DeliveryFailed    = "failed"
	DeliverySent      = "sent"
	DeliverySimulated = "simulated-success"
)
