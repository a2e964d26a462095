package model

import "time"

// LastOpened is the pair of fields recording who most recently opened a
// document and when. Both fields are nil for a document that has never been
// opened through the metadata workflow.
type LastOpened struct {
	OpenedAt *time.Time `json:"openedAt,omitempty"`
	OpenedBy *string    `json:"openedBy,omitempty"`
}
