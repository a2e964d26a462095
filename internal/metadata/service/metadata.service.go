package service

import (
	"time"

	"docmeta/internal/metadata/model"
	"docmeta/internal/metadata/repository"
	"docmeta/socket"
)

type MetadataService struct {
	Repo *repository.MetadataRepository
	Hub  *socket.Hub // optional; nil disables open-event broadcasts
	now  func() time.Time
}

func NewMetadataService(repo *repository.MetadataRepository, hub *socket.Hub) *MetadataService {
	return &MetadataService{Repo: repo, Hub: hub, now: time.Now}
}

// OpenDocument records that the given actor opened a document and returns the
// last-opened record as it was BEFORE this visit. The ordering is the
// contract: read old, write new, return old — callers always see who opened
// the document before them, never their own just-written visit.
//
// openedAt and openedBy are always server-derived; callers cannot back-date
// an open or attribute it to someone else.
func (s *MetadataService) OpenDocument(uid, documentID string, locale *string, actorID, actorName string) (model.LastOpened, error) {
	previous, err := s.Repo.FetchLastOpened(uid, documentID, locale)
	if err != nil {
		return model.LastOpened{}, err
	}

	openedAt := s.now().UTC()
	if err := s.Repo.UpdateLastOpened(uid, documentID, locale, openedAt, actorName); err != nil {
		return model.LastOpened{}, err
	}

	if s.Hub != nil {
		s.Hub.Broadcast <- socket.OpenEvent{
			UID:        uid,
			DocumentID: documentID,
			Locale:     locale,
			OpenedAt:   openedAt,
			OpenedBy:   actorName,
			ActorID:    actorID,
		}
	}
	return previous, nil
}
