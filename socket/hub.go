package socket

import (
	"encoding/json"
	"sync"
	"time"

	"docmeta/internal/metadata/model"
	"docmeta/internal/metadata/repository"
	"docmeta/pkg/logger"
)

const (
	OpenType       = "OPEN"        // Someone opened the document
	LastOpenedType = "LAST_OPENED" // Current last-opened pair, sent on join
)

type WSMessage struct {
	Type       string          `json:"type"`
	UID        string          `json:"uid"`
	DocumentID string          `json:"document_id"`
	Locale     *string         `json:"locale,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// OpenEvent is published by the metadata service after it persists a new
// last-opened pair, so admins watching the same document see the row refresh
// without polling.
type OpenEvent struct {
	UID        string
	DocumentID string
	Locale     *string
	OpenedAt   time.Time
	OpenedBy   string
	ActorID    string
}

// Hub fans open events out to the admins subscribed to each document.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan OpenEvent
	Register   chan *Client
	Unregister chan *Client
	repo       *repository.MetadataRepository
	mu         sync.Mutex
}

func NewHub(repo *repository.MetadataRepository) *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan OpenEvent),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		repo:       repo,
	}
}

// roomKey identifies a room by the same triple that identifies a
// last-opened record.
func roomKey(uid, documentID string, locale *string) string {
	key := uid + "/" + documentID
	if locale != nil {
		key += "/" + *locale
	}
	return key
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			room := roomKey(client.UID, client.DocumentID, client.Locale)
			if h.Rooms[room] == nil {
				h.Rooms[room] = make(map[*Client]bool)
			}
			h.Rooms[room][client] = true
			h.mu.Unlock()

			// Send the current pair to the client that just joined. This is
			// a plain read; joining a room is not an open event.
			record, err := h.repo.FetchLastOpened(client.UID, client.DocumentID, client.Locale)
			if err != nil {
				logger.Sugar.Errorf("Failed to load last-opened for room %s: %v", room, err)
				continue
			}
			payload, _ := json.Marshal(record)
			msg, _ := json.Marshal(WSMessage{
				Type:       LastOpenedType,
				UID:        client.UID,
				DocumentID: client.DocumentID,
				Locale:     client.Locale,
				Payload:    payload,
			})
			client.Send <- msg

		case client := <-h.Unregister:
			h.mu.Lock()
			room := roomKey(client.UID, client.DocumentID, client.Locale)
			if _, ok := h.Rooms[room][client]; ok {
				delete(h.Rooms[room], client)
				close(client.Send)
				if len(h.Rooms[room]) == 0 {
					delete(h.Rooms, room)
					logger.Sugar.Infof("Closed empty room: %s", room)
				}
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			room := roomKey(event.UID, event.DocumentID, event.Locale)

			openedAt := event.OpenedAt.UTC()
			payload, err := json.Marshal(model.LastOpened{OpenedAt: &openedAt, OpenedBy: &event.OpenedBy})
			if err != nil {
				logger.Sugar.Errorf("Error marshalling open event: %v", err)
				continue
			}
			msg, _ := json.Marshal(WSMessage{
				Type:       OpenType,
				UID:        event.UID,
				DocumentID: event.DocumentID,
				Locale:     event.Locale,
				Payload:    payload,
			})

			// Collect recipients under the lock, send outside it. The opener
			// already knows; everyone else gets the push.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[room]))
			for client := range h.Rooms[room] {
				if client.UserID != event.ActorID {
					clientsToSend = append(clientsToSend, client)
				}
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- msg:
				default:
					// A full send buffer means the client is lagging.
					// Unregister it to keep the hub from blocking. Done from
					// a goroutine: Run is the consumer of Unregister.
					logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", client.UserID)
					go func(c *Client) { h.Unregister <- c }(client)
				}
			}
		}
	}
}
