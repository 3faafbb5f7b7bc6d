package httpjson_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonmap "github.com/kyantra/jsonmap"
	"github.com/kyantra/jsonmap/dsl"
	"github.com/kyantra/jsonmap/httpjson"
)

type user struct {
	ID       string
	FullName string
}

var userDesc = dsl.Struct[user](
	dsl.Field("ID", dsl.String[string](),
		func(u user) string { return u.ID },
		func(u *user, v string) { u.ID = v },
		dsl.Name("id")),
	dsl.Field("FullName", dsl.String[string](),
		func(u user) string { return u.FullName },
		func(u *user, v string) { u.FullName = v }),
)

func userClient(srv *httptest.Server) *httpjson.Client {
	return &httpjson.Client{
		BaseURL: srv.URL,
		Context: jsonmap.NewContext().WithType(userDesc).Build(),
	}
}

func TestGet_DecodesSnakeCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, jsonmap.ContentType, r.Header.Get("Accept"))
		io.WriteString(w, `{"id":"u1","full_name":"Alice"}`)
	}))
	defer srv.Close()

	got, err := httpjson.Get[user](context.Background(), userClient(srv), "/users/u1")
	require.NoError(t, err)
	assert.Equal(t, user{ID: "u1", FullName: "Alice"}, got)
}

func TestPost_EncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, jsonmap.ContentType, r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"id":"u2","full_name":"Bob"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	}))
	defer srv.Close()

	got, err := httpjson.Post[user](context.Background(), userClient(srv), "/users", user{ID: "u2", FullName: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ID)
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := httpjson.Get[user](context.Background(), userClient(srv), "/missing")
	var se *httpjson.StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, se.Body, "nope")
}

func TestRetry_RecoversFromUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{"id":"u1","full_name":"Alice"}`)
	}))
	defer srv.Close()

	c := userClient(srv)
	c.MaxAttempts = 3
	c.RetryBackoff = 1 // effectively immediate

	got, err := httpjson.Get[user](context.Background(), c, "/users/u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_ResendsRequestBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"id":"u2","full_name":"Bob"}`, string(body))
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	}))
	defer srv.Close()

	c := userClient(srv)
	c.MaxAttempts = 2
	c.RetryBackoff = 1

	got, err := httpjson.Post[user](context.Background(), c, "/users", user{ID: "u2", FullName: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, user{ID: "u2", FullName: "Bob"}, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestBearerAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		io.WriteString(w, `{"id":"u1"}`)
	}))
	defer srv.Close()

	c := userClient(srv)
	c.Auth = httpjson.BearerAuth{Token: "tok"}
	_, err := httpjson.Get[user](context.Background(), c, "/")
	require.NoError(t, err)
}

func TestDelete_EmptyBodyYieldsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	got, err := httpjson.Delete[user](context.Background(), userClient(srv), "/users/u1")
	require.NoError(t, err)
	assert.Equal(t, user{}, got)
}
