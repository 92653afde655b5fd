package ports

import "context"

// SessionRecord is the persisted form of a session: the serialized identity
// record and the bare bearer token. Either half may be empty when absent.
type SessionRecord struct {
	Identity []byte
	Token    string
}

// SessionStorage is the durable key-value store behind the session store.
// Save and Delete must apply to both entries atomically.
type SessionStorage interface {
	Load(ctx context.Context) (SessionRecord, error)
	Save(ctx context.Context, rec SessionRecord) error
	Delete(ctx context.Context) error
}
