package payments

// EventChargeConfirmed is the only event type that grants entitlement.
const EventChargeConfirmed = "charge:confirmed"

const metadataKeyUserID = "user_id"

// Event is the payment-confirmation webhook payload.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Code     string            `json:"code"`
	Metadata map[string]string `json:"metadata"`
}

// UserID returns the opaque user identifier embedded in the event metadata.
func (e Event) UserID() string {
	return e.Data.Metadata[metadataKeyUserID]
}
