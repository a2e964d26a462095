package repository

import (
	"database/sql"
	"fmt"
	"time"

	"docmeta/internal/contenttype"
	"docmeta/internal/metadata/model"
	"docmeta/pkg/logger"

	"github.com/lib/pq"
)

type MetadataRepository struct {
	DB    *sql.DB
	Types *contenttype.Registry
}

func NewMetadataRepository(db *sql.DB, types *contenttype.Registry) *MetadataRepository {
	return &MetadataRepository{DB: db, Types: types}
}

// FetchLastOpened reads the opened_at/opened_by pair for a document. A
// document that was never opened (or doesn't exist) yields an empty record,
// not an error. The read has no side effects.
func (r *MetadataRepository) FetchLastOpened(uid, documentID string, locale *string) (model.LastOpened, error) {
	ct, err := r.Types.Get(uid)
	if err != nil {
		return model.LastOpened{}, err
	}

	query := fmt.Sprintf(`SELECT opened_at, opened_by FROM %s WHERE document_id = $1 AND locale = $2`,
		pq.QuoteIdentifier(ct.CollectionName))
	args := []interface{}{documentID, locale}
	if locale == nil {
		query = fmt.Sprintf(`SELECT opened_at, opened_by FROM %s WHERE document_id = $1 AND locale IS NULL`,
			pq.QuoteIdentifier(ct.CollectionName))
		args = []interface{}{documentID}
	}

	var openedAt sql.NullTime
	var openedBy sql.NullString
	err = r.DB.QueryRow(query, args...).Scan(&openedAt, &openedBy)
	if err == sql.ErrNoRows {
		return model.LastOpened{}, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to fetch last-opened for %s/%s: %v", uid, documentID, err)
		return model.LastOpened{}, err
	}

	var record model.LastOpened
	if openedAt.Valid {
		t := openedAt.Time.UTC()
		record.OpenedAt = &t
	}
	if openedBy.Valid {
		record.OpenedBy = &openedBy.String
	}
	return record, nil
}

// UpdateLastOpened writes the opened_at/opened_by pair for a document. This
// is deliberately a raw two-column UPDATE: going through a generic document
// update pathway would also stamp updated_at, which we explicitly avoid.
func (r *MetadataRepository) UpdateLastOpened(uid, documentID string, locale *string, openedAt time.Time, openedBy string) error {
	ct, err := r.Types.Get(uid)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET opened_at = $1, opened_by = $2 WHERE document_id = $3 AND locale = $4`,
		pq.QuoteIdentifier(ct.CollectionName))
	args := []interface{}{openedAt, openedBy, documentID, locale}
	if locale == nil {
		query = fmt.Sprintf(`UPDATE %s SET opened_at = $1, opened_by = $2 WHERE document_id = $3 AND locale IS NULL`,
			pq.QuoteIdentifier(ct.CollectionName))
		args = []interface{}{openedAt, openedBy, documentID}
	}

	_, err = r.DB.Exec(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to update last-opened for %s/%s: %v", uid, documentID, err)
	}
	return err
}
