package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userAnalytics/internal/fetch"
	"userAnalytics/internal/testutil"
	"userAnalytics/models"
)

const annAndBo = `[{"id":1,"name":"Ann","email":"a@x.com"},{"id":2,"name":"Bo","email":"b@Y.com"}]`

type staticFetcher struct {
	users []models.UserRecord
	err   error
}

func (f staticFetcher) FetchUsers(context.Context) ([]models.UserRecord, error) {
	return f.users, f.err
}

func TestRun_EndToEnd(t *testing.T) {
	srv := testutil.UsersAPI(t, http.StatusOK, annAndBo)
	path := testutil.TempDBPath(t)
	log := testutil.DiscardLogger()

	p := New(fetch.NewClient(srv.URL, time.Second, log), path, log)
	users, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, 3, users[0].NameLength)
	assert.Equal(t, 2, users[1].NameLength)
	assert.Equal(t, "x.com", *users[0].EmailDomain)
	assert.Equal(t, "y.com", *users[1].EmailDomain)
}

func TestRun_TwiceKeepsSize(t *testing.T) {
	srv := testutil.UsersAPI(t, http.StatusOK, annAndBo)
	path := testutil.TempDBPath(t)
	log := testutil.DiscardLogger()
	p := New(fetch.NewClient(srv.URL, time.Second, log), path, log)

	for i := 0; i < 2; i++ {
		users, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, users, 2)
	}
}

func TestRun_FetchFailureLeavesStoreUntouched(t *testing.T) {
	path := testutil.TempDBPath(t)
	log := testutil.DiscardLogger()
	ctx := context.Background()

	seed := []models.UserRecord{
		{ID: models.Int64(10), Name: models.String("old")},
		{ID: models.Int64(11), Name: models.String("older")},
		{ID: models.Int64(12), Name: models.String("oldest")},
	}
	require.NoError(t, Load(ctx, path, seed, log))

	srv := testutil.UsersAPI(t, http.StatusNotFound, `{}`)
	p := New(fetch.NewClient(srv.URL, time.Second, log), path, log)
	_, err := p.Run(ctx)
	require.Error(t, err)

	var se *fetch.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, err.Error(), "404")

	table, err := Read(ctx, path, log)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestRun_UniqueIDs(t *testing.T) {
	users := []models.UserRecord{
		{ID: models.Int64(1), Name: models.String("a")},
		{ID: models.Int64(2), Name: models.String("b")},
		{ID: models.Int64(1), Name: models.String("c")},
	}
	path := testutil.TempDBPath(t)
	p := New(staticFetcher{users: users}, path, testutil.DiscardLogger())

	got, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	seen := map[int64]bool{}
	for _, u := range got {
		require.False(t, seen[*u.ID], "duplicate id %d", *u.ID)
		seen[*u.ID] = true
	}
}

func TestRun_PropagatesFetcherError(t *testing.T) {
	p := New(staticFetcher{err: errors.New("boom")}, testutil.TempDBPath(t), testutil.DiscardLogger())
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch users")
}
