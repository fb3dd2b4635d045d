package testutil

import (
	"testing"

	"github.com/nhle/tempinbox/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore holding an empty kv table,
// so the session triple starts absent. It is closed when the test ends.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
