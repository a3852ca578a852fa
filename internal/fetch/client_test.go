package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userAnalytics/internal/testutil"
)

func TestFetchUsers_DecodesOptionalFields(t *testing.T) {
	srv := testutil.UsersAPI(t, http.StatusOK, `[
		{"id":1,"name":"Ann","username":"ann","email":"a@x.com","phone":"1-770","website":"ann.org","address":{"city":"x"}},
		{"id":2,"name":null,"email":"b@Y.com"}
	]`)

	c := NewClient(srv.URL, time.Second, testutil.DiscardLogger())
	users, err := c.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(1), *users[0].ID)
	assert.Equal(t, "ann.org", *users[0].Website)
	assert.Nil(t, users[1].Name)
	assert.Nil(t, users[1].Username)
	assert.Equal(t, "b@Y.com", *users[1].Email)
}

func TestFetchUsers_NonStringScalarsKeptAsText(t *testing.T) {
	srv := testutil.UsersAPI(t, http.StatusOK, `[
		{"id":1,"name":"Ann","phone":5551234,"website":true},
		{"id":2.0,"name":"Bo","email":{"primary":"b@y.com"}},
		{"id":"3","username":["c","d"]}
	]`)

	c := NewClient(srv.URL, time.Second, testutil.DiscardLogger())
	users, err := c.FetchUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "5551234", *users[0].Phone)
	assert.Equal(t, "true", *users[0].Website)
	assert.Equal(t, int64(2), *users[1].ID)
	assert.Equal(t, `{"primary":"b@y.com"}`, *users[1].Email)
	assert.Equal(t, int64(3), *users[2].ID)
	assert.Equal(t, `["c","d"]`, *users[2].Username)
	assert.Nil(t, users[2].Name)
}

func TestFetchUsers_NonIntegerID(t *testing.T) {
	for _, body := range []string{`[{"id":1.5}]`, `[{"id":"abc"}]`, `[{"id":{"n":1}}]`} {
		srv := testutil.UsersAPI(t, http.StatusOK, body)

		c := NewClient(srv.URL, time.Second, testutil.DiscardLogger())
		_, err := c.FetchUsers(context.Background())
		assert.Error(t, err, body)
	}
}

func TestFetchUsers_NonSuccessStatus(t *testing.T) {
	srv := testutil.UsersAPI(t, http.StatusNotFound, `{}`)

	c := NewClient(srv.URL, time.Second, testutil.DiscardLogger())
	users, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Nil(t, users)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Error(404)", err.Error())
}

func TestFetchUsers_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testutil.DiscardLogger())
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchUsers_MalformedJSON(t *testing.T) {
	srv := testutil.UsersAPI(t, http.StatusOK, `{"not":"an array"}`)

	c := NewClient(srv.URL, time.Second, testutil.DiscardLogger())
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestFetchUsers_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, testutil.DiscardLogger())
	_, err := c.FetchUsers(context.Background())
	require.Error(t, err)
}
