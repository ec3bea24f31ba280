package domain

import "time"

type Client struct {
	ID      string `json:"id" firestore:"id"`
	Name    string `json:"name" firestore:"name"`
	TaxID   string `json:"tax_id,omitempty" firestore:"tax_id"`
	Phone   string `json:"phone" firestore:"phone"`
	Email   string `json:"email,omitempty" firestore:"email"`
	Address string `json:"address,omitempty" firestore:"address"`

	// RequiresInvoice is the default for new rentals of this client.
	RequiresInvoice bool `json:"requires_invoice" firestore:"requires_invoice"`

	CreatedOn time.Time `json:"created_on" firestore:"created_on"`
	UpdatedOn time.Time `json:"updated_on" firestore:"updated_on"`
}
