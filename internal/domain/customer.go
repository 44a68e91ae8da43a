package domain

// Membership tiers the client offers. The service stores membership as
// free-form text and does not reject values outside this set.
const (
	MembershipBronze   = "Bronze"
	MembershipSilver   = "Silver"
	MembershipGold     = "Gold"
	MembershipPlatinum = "Platinum"
)

// Customer is a directory entry with no relationship to books.
type Customer struct {
	ID         string `dynamodbav:"customer_id" json:"id"`
	Name       string `dynamodbav:"name"        json:"name"`
	Age        int    `dynamodbav:"age"         json:"age"`
	Membership string `dynamodbav:"membership"  json:"membership"`
}

// CreateCustomerRequest carries the client payload for POST /customers.
// No field is required; the store imposes no constraints on customers.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Membership string `json:"membership"`
}

// UpdateCustomerRequest carries the partial payload for PUT /customers/:id.
type UpdateCustomerRequest struct {
	Name       *string `json:"name"`
	Age        *int    `json:"age"`
	Membership *string `json:"membership"`
}
