// File: internal/webhook/event.go
package webhook

import "strings"

// Event types delivered by the identity provider that this receiver acts on.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the JSON envelope of an identity provider webhook.
type Event struct {
	Type string   `json:"type"`
	Data UserData `json:"data"`
}

// UserData is the user payload carried by user.* events. Deletion events only
// populate ID.
type UserData struct {
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PublicMetadata        PublicMetadata `json:"public_metadata"`
}

// EmailAddress is one entry of the user's email address list.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// PublicMetadata carries the provider-side metadata this service writes back
// after user creation.
type PublicMetadata struct {
	DBID string `json:"db_id"`
	Role string `json:"role"`
}

// PrimaryEmail resolves the address whose id matches the designated primary
// email id. The second return is false when no entry matches.
func (d UserData) PrimaryEmail() (string, bool) {
	for _, addr := range d.EmailAddresses {
		if addr.ID == d.PrimaryEmailAddressID {
			return addr.EmailAddress, true
		}
	}
	return "", false
}

// DisplayName joins first and last name, trimming surrounding whitespace.
// Empty when the event carries neither.
func (d UserData) DisplayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
