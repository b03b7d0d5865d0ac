package domain

import "fmt"

type Client struct {
	ID           *int64 `db:"id"` // nil until the store assigns one
	Organization string `db:"organization"`
	Project      string `db:"project"`
}

// NewClient returns an unsaved client.
func NewClient(organization, project string) *Client {
	return &Client{
		Organization: organization,
		Project:      project,
	}
}

// IsNew reports whether the client has not been persisted yet.
func (c *Client) IsNew() bool {
	return c.ID == nil
}

// Label renders the client the way list views show it.
func (c *Client) Label() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s / %s", c.Organization, c.Project)
}
