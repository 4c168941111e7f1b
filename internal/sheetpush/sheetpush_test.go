package sheetpush

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestPushSendsForm(t *testing.T) {
	type received struct {
		op, kind, id, row string
	}
	got := make(chan received, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got <- received{
			op:   r.PostFormValue("op"),
			kind: r.PostFormValue("kind"),
			id:   r.PostFormValue("id"),
			row:  r.PostFormValue("row"),
		}
	}))
	defer srv.Close()

	p := New(srv.URL, testLogger())
	require.True(t, p.Enabled())

	p.Push(OpUpdate, "products", "p1", map[string]any{"name": "Kem Dâu"})

	select {
	case r := <-got:
		assert.Equal(t, OpUpdate, r.op)
		assert.Equal(t, "products", r.kind)
		assert.Equal(t, "p1", r.id)
		assert.JSONEq(t, `{"name":"Kem Dâu"}`, r.row)
	case <-time.After(2 * time.Second):
		t.Fatal("push never reached the endpoint")
	}
}

func TestPushDeleteOmitsRow(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got <- r.PostFormValue("row")
	}))
	defer srv.Close()

	New(srv.URL, testLogger()).Push(OpDelete, "products", "p1", nil)

	select {
	case row := <-got:
		assert.Empty(t, row)
	case <-time.After(2 * time.Second):
		t.Fatal("push never reached the endpoint")
	}
}

func TestPushDisabledWithoutEndpoint(t *testing.T) {
	p := New("", testLogger())
	assert.False(t, p.Enabled())
	// Must not panic or block.
	p.Push(OpInsert, "products", "p1", nil)
}
