package credential

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tempinbox/internal/model"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	ks := NewKeyringStore(keyring.NewArrayKeyring(nil))
	ctx := context.Background()

	sess, err := ks.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Valid())

	want := model.Session{Address: "x@example.com", AuthToken: "tok", AccountID: "id1"}
	require.NoError(t, ks.SaveSession(ctx, want))

	got, err := ks.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestKeyringStore_RejectsPartial(t *testing.T) {
	ks := NewKeyringStore(keyring.NewArrayKeyring(nil))

	err := ks.SaveSession(context.Background(), model.Session{Address: "x@example.com"})
	assert.ErrorIs(t, err, ErrPartialSession)
}

func TestKeyringStore_CorruptItem(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: sessionKey, Data: []byte("{")}})
	ks := NewKeyringStore(ring)

	_, err := ks.LoadSession(context.Background())
	assert.Error(t, err)
}

func TestKeyringStore_Delete(t *testing.T) {
	ks := NewKeyringStore(keyring.NewArrayKeyring(nil))
	ctx := context.Background()

	require.NoError(t, ks.SaveSession(ctx, model.Session{Address: "a", AuthToken: "b", AccountID: "c"}))
	require.NoError(t, ks.DeleteSession(ctx))
	require.NoError(t, ks.DeleteSession(ctx))

	got, err := ks.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Session{}, got)
}
