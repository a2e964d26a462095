package socket

import (
	"net/http"
	"time"

	"docmeta/pkg/logger"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin allows connections from the admin panel dev server
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one admin's subscription to a document's open events. Clients
// are listeners only; open events enter the hub through the metadata
// service, never through the socket.
type Client struct {
	Hub        *Hub
	Conn       *websocket.Conn
	UID        string
	DocumentID string
	Locale     *string
	UserID     string
	Send       chan []byte
}

func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) {
	uid := r.URL.Query().Get("uid")
	documentID := r.URL.Query().Get("documentId")
	if uid == "" || documentID == "" {
		http.Error(w, "Missing uid or documentId parameter", http.StatusBadRequest)
		return
	}
	var locale *string
	if v := r.URL.Query().Get("locale"); v != "" {
		locale = &v
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:        hub,
		Conn:       conn,
		UID:        uid,
		DocumentID: documentID,
		Locale:     locale,
		UserID:     userID,
		Send:       make(chan []byte, 256),
	}

	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	// Subscribers don't send application messages; the read loop only
	// detects the connection closing.
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	// A ping every 30 seconds keeps the connection alive and detects drops.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Connection is dead
			}
		}
	}
}
