package contenttype

import (
	"encoding/json"
	"fmt"
	"os"
)

// ContentType describes where a content type stores its documents.
type ContentType struct {
	// UID is the content-type identifier, e.g. "api::products.products".
	UID string `json:"uid"`
	// CollectionName is the database table holding the documents.
	CollectionName string `json:"collectionName"`
	// Localized content types carry a locale as part of a document's identity.
	Localized bool `json:"localized"`
}

// Registry resolves content-type UIDs to their storage location.
type Registry struct {
	types map[string]ContentType
}

func NewRegistry(types ...ContentType) *Registry {
	r := &Registry{types: make(map[string]ContentType, len(types))}
	for _, ct := range types {
		r.types[ct.UID] = ct
	}
	return r
}

// Load reads the registry from a JSON file containing an array of content types.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content-type registry: %w", err)
	}
	var types []ContentType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, fmt.Errorf("parse content-type registry: %w", err)
	}
	for _, ct := range types {
		if ct.UID == "" || ct.CollectionName == "" {
			return nil, fmt.Errorf("content-type registry entry is missing uid or collectionName: %+v", ct)
		}
	}
	return NewRegistry(types...), nil
}

// Get returns the content type for the given UID. A UID without a registered
// storage location is a configuration error: the content type was presumably
// deleted or never migrated, so callers must fail loudly rather than no-op.
func (r *Registry) Get(uid string) (ContentType, error) {
	ct, ok := r.types[uid]
	if !ok {
		return ContentType{}, fmt.Errorf("no collection name registered for content type %q", uid)
	}
	return ct, nil
}
