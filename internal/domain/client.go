package domain

// Client is a customer record. Opportunities reference clients by ID.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// DisplayName returns "Name (Company)" or just the name when no company is set.
func (c Client) DisplayName() string {
	if c.Company == "" {
		return c.Name
	}
	return c.Name + " (" + c.Company + ")"
}
