package lastopened

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitFor reads resolved states (success/failure) from the onChange channel.
func waitFor(t *testing.T, states <-chan State) State {
	t.Helper()
	for {
		select {
		case state := <-states:
			if state.Status == StatusSuccess || state.Status == StatusFailure {
				return state
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a resolved fetch state")
		}
	}
}

func TestLoaderFetchesPreviousRecord(t *testing.T) {
	var gotPath, gotLocale, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLocale = r.URL.Query().Get("locale")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"openedAt":"2024-01-01T10:00:00Z","openedBy":"Ada Lovelace"}`))
	}))
	defer server.Close()

	states := make(chan State, 8)
	loader := NewLoader(server.URL, "test-token", server.Client(), func(s State) { states <- s })

	assert.Equal(t, StatusInitial, loader.State().Status)

	loader.Load(Key{UID: "api::products.products", DocumentID: "abc123", Locale: "en"})

	state := waitFor(t, states)
	require.Equal(t, StatusSuccess, state.Status)
	require.NotNil(t, state.LastOpened.OpenedAt)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), state.LastOpened.OpenedAt.UTC())
	assert.Equal(t, "Ada Lovelace", *state.LastOpened.OpenedBy)

	assert.Equal(t, "/document-metadata/last-opened/api::products.products/abc123", gotPath)
	assert.Equal(t, "en", gotLocale)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, StatusSuccess, loader.State().Status)
}

func TestLoaderNeverOpenedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	states := make(chan State, 8)
	loader := NewLoader(server.URL, "", server.Client(), func(s State) { states <- s })
	loader.Load(Key{UID: "api::products.products", DocumentID: "abc123"})

	state := waitFor(t, states)
	require.Equal(t, StatusSuccess, state.Status)
	assert.Nil(t, state.LastOpened.OpenedAt)
	assert.Nil(t, state.LastOpened.OpenedBy)
}

// A failed fetch lands in StatusFailure and stays there; the loader performs
// no retries.
func TestLoaderFailureIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	states := make(chan State, 8)
	loader := NewLoader(server.URL, "", server.Client(), func(s State) { states <- s })
	loader.Load(Key{UID: "api::products.products", DocumentID: "abc123"})

	state := waitFor(t, states)
	require.Equal(t, StatusFailure, state.Status)
	assert.Error(t, state.Err)
	assert.Equal(t, StatusFailure, loader.State().Status)
}

// Loading a new key while a request is in flight does not cancel it, but its
// late result must not clobber the newer key's state.
func TestLoaderKeyChangeSupersedesInFlightRequest(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/document-metadata/last-opened/api::products.products/slow000000000000000000000" {
			<-release
			w.Write([]byte(`{"openedAt":"2020-01-01T00:00:00Z","openedBy":"Stale Result"}`))
			return
		}
		w.Write([]byte(`{"openedAt":"2024-01-01T10:00:00Z","openedBy":"Fresh Result"}`))
	}))
	defer server.Close()

	states := make(chan State, 8)
	loader := NewLoader(server.URL, "", server.Client(), func(s State) { states <- s })

	loader.Load(Key{UID: "api::products.products", DocumentID: "slow000000000000000000000"})
	loader.Load(Key{UID: "api::products.products", DocumentID: "fresh"})

	state := waitFor(t, states)
	require.Equal(t, StatusSuccess, state.Status)
	require.NotNil(t, state.LastOpened.OpenedBy)
	assert.Equal(t, "Fresh Result", *state.LastOpened.OpenedBy)

	// Let the superseded request finish; its result must be discarded.
	close(release)
	time.Sleep(100 * time.Millisecond)

	final := loader.State()
	require.Equal(t, StatusSuccess, final.Status)
	assert.Equal(t, "Fresh Result", *final.LastOpened.OpenedBy)
}
