package store

import (
	"context"

	"github.com/nhle/tempinbox/internal/model"
)

// Keys under which the session triple is persisted.
const (
	KeyAddress   = "temp_mail_address"
	KeyToken     = "temp_mail_token"
	KeyAccountID = "temp_mail_id"
)

// SessionKeys lists the triple in write order.
var SessionKeys = []string{KeyAddress, KeyToken, KeyAccountID}

// Store is the durable key-value storage behind the session.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, values map[string]string) error

	LoadSession(ctx context.Context) (model.Session, error)
	SaveSession(ctx context.Context, s model.Session) error

	Close() error
}
