package domain

// Kind names an entity kind for change events and log fields.
type Kind string

const (
	KindClient   Kind = "client"
	KindEmployee Kind = "employee"
)
