package mailtm_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/mailtm/mailtmtest"
)

func TestClient_Domains(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Domains = []string{"first.test", "second.test"}
	c := mailtm.NewClient(srv.URL)

	domains, err := c.Domains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "first.test", domains[0].Domain)
	assert.Equal(t, "second.test", domains[1].Domain)
}

func TestClient_CreateAccountAndToken(t *testing.T) {
	srv := mailtmtest.New(t)
	c := mailtm.NewClient(srv.URL + "/")

	acct, err := c.CreateAccount(context.Background(), "bob@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", acct.ID)
	assert.Equal(t, "bob@example.com", acct.Address)

	tok, err := c.Token(context.Background(), "bob@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.Token)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/accounts", reqs[0].Path)
	assert.Equal(t, "bob@example.com", reqs[0].Body["address"])
	assert.Equal(t, "pw", reqs[0].Body["password"])
	assert.Empty(t, reqs[0].Authorization)
}

func TestClient_MessagesSendsBearerToken(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.SetMessages([]map[string]any{
		{"id": "m1", "from": map[string]any{"address": "a@x.test"}, "subject": "one", "createdAt": "2024-01-01T10:00:00+00:00"},
		{"id": "m2", "from": map[string]any{"address": "b@x.test"}, "createdAt": "2024-01-01T11:00:00+00:00"},
	})
	c := mailtm.NewClient(srv.URL)

	msgs, err := c.Messages(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "a@x.test", msgs[0].From.Address)
	assert.Equal(t, "", msgs[1].Subject)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer abc", reqs[0].Authorization)
}

func TestClient_MessageDetail(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Details["m1"] = map[string]any{
		"id":        "m1",
		"from":      map[string]any{"address": "a@x.test"},
		"subject":   "hi",
		"html":      []string{"<p>hi</p>", "<p>more</p>"},
		"intro":     "hi",
		"createdAt": "2024-01-01T10:00:00+00:00",
	}
	c := mailtm.NewClient(srv.URL)

	msg, err := c.Message(context.Background(), "abc", "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>hi</p>", "<p>more</p>"}, msg.HTML)
	assert.Equal(t, "hi", msg.Intro)
}

func TestClient_Source(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Sources["m1"] = "Subject: hi\r\n\r\nbody"
	c := mailtm.NewClient(srv.URL)

	src, err := c.Source(context.Background(), "abc", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Subject: hi\r\n\r\nbody", src.Data)
}

func TestClient_UnauthorizedMatchesSentinel(t *testing.T) {
	srv := mailtmtest.New(t)
	c := mailtm.NewClient(srv.URL)

	_, err := c.Me(context.Background(), "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, mailtm.ErrUnauthorized))
	assert.Equal(t, http.StatusUnauthorized, mailtm.StatusCode(err))
}

func TestClient_APIErrorCarriesDescription(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.SetFail("POST /accounts", http.StatusUnprocessableEntity)
	c := mailtm.NewClient(srv.URL)

	_, err := c.CreateAccount(context.Background(), "taken@example.com", "pw")
	require.Error(t, err)

	var apiErr *mailtm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "scripted failure", apiErr.Message)
	assert.Equal(t, "/accounts", apiErr.Path)
}

func TestClient_NotFound(t *testing.T) {
	srv := mailtmtest.New(t)
	c := mailtm.NewClient(srv.URL)

	_, err := c.Message(context.Background(), "abc", "missing")
	assert.True(t, errors.Is(err, mailtm.ErrNotFound))
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()
	c := mailtm.NewClient(srv.URL)

	_, err := c.Domains(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling response")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	c := mailtm.NewClient(srv.URL, mailtm.WithTimeout(20*time.Millisecond))

	_, err := c.Domains(context.Background())
	require.Error(t, err)
	assert.Zero(t, mailtm.StatusCode(err))
}
