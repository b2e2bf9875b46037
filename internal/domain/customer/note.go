// internal/domain/customer/note.go
package customer

import "time"

// Note is a customer-scoped side-channel entry: free text written by an
// operator plus optional image attachment URLs. Notes are keyed by the
// derived identity key, so a note written while viewing a phone-only
// record is visible from an e-mail-only record of the same customer.
type Note struct {
	ID          string    `json:"id"`
	CustomerKey Key       `json:"customer_key"`
	AuthorEmail string    `json:"author_email"`
	Body        string    `json:"body"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
