package session

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// RememberMeDuration is how long a record in the durable scope remains
// valid after it was written.
const RememberMeDuration = 7 * 24 * time.Hour

const (
	// DurableKey is the storage key of the durable ("remember me") scope.
	DurableKey = "auth-storage"
	// EphemeralKey is the storage key of the ephemeral (terminal session)
	// scope.
	EphemeralKey = "auth-session"
)

// Record is the serialized snapshot of a Session that is written to a Scope.
type Record struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	// Timestamp is the write time in milliseconds since the epoch.
	Timestamp int64 `json:"_timestamp"`
}

// Expired returns true if a record written at timestamp (milliseconds since
// the epoch) is no longer valid at now. A record exactly RememberMeDuration
// old is still valid.
func Expired(timestamp int64, now time.Time) bool {
	elapsed := toMillis(now) - timestamp
	return elapsed > int64(RememberMeDuration/time.Millisecond)
}

func toMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

func newRecord(user User, token string, now time.Time) Record {
	u := copyUser(user)
	return Record{
		User:            &u,
		Token:           token,
		IsAuthenticated: true,
		Timestamp:       toMillis(now),
	}
}

// usable returns true if the record describes a complete, authenticated
// session.
func (r Record) usable() bool {
	return r.IsAuthenticated && r.User != nil && r.Token != ""
}

func encodeRecord(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	return data, errors.Wrap(err, "error marshaling session record")
}

func decodeRecord(data []byte) (Record, error) {
	r := Record{}
	err := json.Unmarshal(data, &r)
	return r, errors.Wrap(err, "error unmarshaling session record")
}
