package admin

import (
	"strings"
	"time"

	"docmeta/admin/format"
	"docmeta/admin/i18n"
	"docmeta/admin/lastopened"
)

const (
	// Placeholder shown while loading, to avoid layout shifts when the
	// actual values appear.
	loadingString    = "…"
	nonBreakingSpace = " "

	// Only collection types carry their document ID in the edit-view URL.
	supportedCollectionType = "collection-types"

	// Document IDs are 24-character alphanumeric strings.
	documentIDLength = 24
)

// Document is the host's view of the record being edited, reduced to what
// the card needs.
type Document struct {
	DocumentID string
	Locale     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	// CreatedBy/UpdatedBy may be absent, e.g. for documents written via an
	// API token.
	CreatedBy *string
	UpdatedBy *string
	// HasLastOpenedFields reports whether the content type carries the
	// opened_at/opened_by columns at all.
	HasLastOpenedFields bool
}

// CardState is the last-opened fetch state the card renders from.
type CardState = lastopened.State

// MetadataRow is one title + up to two lines of text in the card.
type MetadataRow struct {
	Title string
	Line1 string
	Line2 string
}

// ParseEditViewPath extracts (collectionType, uid, documentId) from an
// edit-view URL path, expected as its last three components. It reports
// false for anything that is not a supported collection-type edit view.
func ParseEditViewPath(path string) (uid, documentID string, ok bool) {
	components := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(components) < 3 {
		return "", "", false
	}
	collectionType := components[len(components)-3]
	uid = components[len(components)-2]
	documentID = components[len(components)-1]

	if collectionType != supportedCollectionType {
		return "", "", false
	}
	if uid == "" || len(documentID) != documentIDLength {
		return "", "", false
	}
	return uid, documentID, true
}

// Card assembles the metadata rows for one document.
type Card struct {
	Messages *i18n.Bundle
	Locale   string // UI locale for translations
}

func NewCard(messages *i18n.Bundle, locale string) *Card {
	return &Card{Messages: messages, Locale: locale}
}

func (c *Card) translate(key string, values map[string]string) string {
	return c.Messages.Translate(c.Locale, key, values)
}

// FormatDate renders a timestamp the way every row in the card does: recent
// dates as minute phrases, everything else relative to the calendar.
func (c *Card) FormatDate(date time.Time) string {
	return format.RecentTime(date, func(date time.Time) string {
		return format.RelativeDate(date, format.RelativeDateTextBuilder{
			Today: func(formattedTime string) string {
				return c.translate("date.today", map[string]string{"formattedTime": formattedTime})
			},
			Yesterday: func(formattedTime string) string {
				return c.translate("date.yesterday", map[string]string{"formattedTime": formattedTime})
			},
			Other: func(formattedDate string) string {
				return c.translate("date.other", map[string]string{"formattedDate": formattedDate})
			},
		})
	})
}

// LastOpenedRow renders the last-opened row for the given fetch state. It
// returns nil when nothing should be shown: either the fetch failed (the
// loader already logged the error; the card degrades silently) or the state
// is unknown.
func (c *Card) LastOpenedRow(state CardState) *MetadataRow {
	title := c.translate("opened-at", nil)

	switch state.Status {
	case lastopened.StatusInitial, lastopened.StatusInProgress:
		return &MetadataRow{Title: title, Line1: loadingString, Line2: nonBreakingSpace}

	case lastopened.StatusFailure:
		return nil

	case lastopened.StatusSuccess:
		record := state.LastOpened
		if record.OpenedAt == nil || record.OpenedBy == nil {
			// The document has never been opened before.
			return &MetadataRow{Title: title, Line1: c.translate("opened-first-time", nil)}
		}
		return &MetadataRow{
			Title: title,
			Line1: c.FormatDate(*record.OpenedAt),
			Line2: c.translate("opened-by", map[string]string{"username": *record.OpenedBy}),
		}
	}
	return nil
}

// Rows builds the full card: the last-opened row (when the content type has
// the fields), then updated and created rows. UpdatedAt/CreatedAt are always
// present on a document; the "by" lines may be missing.
func (c *Card) Rows(doc Document, state CardState) []MetadataRow {
	var rows []MetadataRow

	if doc.HasLastOpenedFields {
		if row := c.LastOpenedRow(state); row != nil {
			rows = append(rows, *row)
		}
	}

	updated := MetadataRow{
		Title: c.translate("updated-at", nil),
		Line1: c.FormatDate(doc.UpdatedAt),
	}
	if doc.UpdatedBy != nil {
		updated.Line2 = c.translate("updated-by", map[string]string{"username": *doc.UpdatedBy})
	}
	rows = append(rows, updated)

	created := MetadataRow{
		Title: c.translate("created-at", nil),
		Line1: c.FormatDate(doc.CreatedAt),
	}
	if doc.CreatedBy != nil {
		created.Line2 = c.translate("created-by", map[string]string{"username": *doc.CreatedBy})
	}
	rows = append(rows, created)

	return rows
}
