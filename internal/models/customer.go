package models

// Customer represents a person who can reserve rooms.
type Customer struct {
	// Name is the customer's display name.
	Name string `json:"name"`

	// Contact is a phone number or email address.
	Contact string `json:"contact"`
}

// CustomerUpdate describes a partial modification of a customer.
// Nil fields are left unchanged.
type CustomerUpdate struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u CustomerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Contact == nil
}

// Apply copies the provided fields onto c.
func (u CustomerUpdate) Apply(c *Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Contact != nil {
		c.Contact = *u.Contact
	}
}
