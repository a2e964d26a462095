// Package lastopened fetches a document's last-opened metadata from the
// document-metadata service. The fetch is also the touch: the server
// responds with the previous record and stamps the new one.
package lastopened

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"docmeta/pkg/logger"
)

// Status enumerates the states of the fetch workflow.
type Status int

const (
	StatusInitial Status = iota
	StatusInProgress
	StatusSuccess
	StatusFailure
)

// LastOpened mirrors the service's response body.
type LastOpened struct {
	OpenedAt *time.Time `json:"openedAt,omitempty"`
	OpenedBy *string    `json:"openedBy,omitempty"`
}

// Key identifies the record being loaded. Locale is empty for
// non-localized content types.
type Key struct {
	UID        string
	DocumentID string
	Locale     string
}

// State is a tagged union: LastOpened is meaningful only for StatusSuccess
// and Err only for StatusFailure.
type State struct {
	Status     Status
	LastOpened LastOpened
	Err        error
}

// Loader runs one fetch per key. Loading a new key supersedes any in-flight
// request: the earlier request keeps running, but its result is discarded
// (last-write-wins on state, not on server data). A failed fetch is terminal
// for its key; loading the key again is the only retry.
type Loader struct {
	baseURL  string
	token    string
	client   *http.Client
	onChange func(State)

	mu         sync.Mutex
	generation int
	state      State
}

// NewLoader creates a loader for the service at baseURL. The token is sent
// as a bearer token. A nil client falls back to http.DefaultClient; onChange
// may be nil.
func NewLoader(baseURL, token string, client *http.Client, onChange func(State)) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		baseURL:  baseURL,
		token:    token,
		client:   client,
		onChange: onChange,
		state:    State{Status: StatusInitial},
	}
}

// State returns the current workflow state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load starts fetching the record for the given key.
func (l *Loader) Load(key Key) {
	l.mu.Lock()
	l.generation++
	generation := l.generation
	l.state = State{Status: StatusInProgress}
	onChange := l.onChange
	l.mu.Unlock()

	if onChange != nil {
		onChange(State{Status: StatusInProgress})
	}
	go l.fetch(generation, key)
}

func (l *Loader) fetch(generation int, key Key) {
	endpoint := fmt.Sprintf("%s/document-metadata/last-opened/%s/%s",
		l.baseURL, url.PathEscape(key.UID), url.PathEscape(key.DocumentID))
	if key.Locale != "" {
		endpoint += "?locale=" + url.QueryEscape(key.Locale)
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		l.fail(generation, err)
		return
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.fail(generation, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.fail(generation, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return
	}

	var record LastOpened
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		l.fail(generation, err)
		return
	}
	l.apply(generation, State{Status: StatusSuccess, LastOpened: record})
}

func (l *Loader) fail(generation int, err error) {
	// Failures are logged here and rendered as nothing: the card degrades
	// silently rather than showing an error to the editor.
	logger.Sugar.Errorf("Failed to fetch last-opened metadata: %v", err)
	l.apply(generation, State{Status: StatusFailure, Err: err})
}

// apply installs the new state unless a later Load superseded this request.
func (l *Loader) apply(generation int, state State) {
	l.mu.Lock()
	if generation != l.generation {
		l.mu.Unlock()
		return
	}
	l.state = state
	onChange := l.onChange
	l.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}
