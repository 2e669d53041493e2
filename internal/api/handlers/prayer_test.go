package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yfcm/prayer-chain/internal/testutil"
)

type prayerJSON struct {
	ID        string   `json:"id"`
	UserName  string   `json:"userName"`
	Content   string   `json:"content"`
	AmenCount int      `json:"amenCount"`
	AmenedBy  []string `json:"amenedBy"`
}

func TestPrayerHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("posts to the wall", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().WithDisplayName("Wall Poster").BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/prayers"),
			map[string]string{"content": "Keep the fire burning through the night."}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var post prayerJSON
		testutil.AssertJSONResponse(t, resp, &post)
		assert.Equal(t, "Wall Poster", post.UserName)
		assert.Equal(t, 0, post.AmenCount)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/prayers"),
			map[string]string{"content": "   "}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects oversized content", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/prayers"),
			map[string]string{"content": strings.Repeat("x", 501)}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires authentication", func(t *testing.T) {
		ts.DB.Truncate(t)

		resp, err := http.Post(ts.APIURL("/prayers"), "application/json",
			strings.NewReader(`{"content":"anonymous"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestPrayerHandler_Amen(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	post := testutil.NewPrayerBuilder().WithUser(author).Build(t, ts.DB.DB)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	amen := func() prayerJSON {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/prayers/"+post.ID.String()+"/amen"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result prayerJSON
		testutil.AssertJSONResponse(t, resp, &result)
		return result
	}

	result := amen()
	assert.Equal(t, 1, result.AmenCount)

	result = amen()
	assert.Equal(t, 0, result.AmenCount)
}

func TestPrayerHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	testutil.NewPrayerBuilder().WithUser(author).WithContent("first").Build(t, ts.DB.DB)
	testutil.NewPrayerBuilder().WithUser(author).WithContent("second").Build(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/prayers"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Prayers []prayerJSON `json:"prayers"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Len(t, result.Prayers, 2)
}

func TestPrayerHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("admin removes a post", func(t *testing.T) {
		ts.DB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		post := testutil.NewPrayerBuilder().WithUser(author).Build(t, ts.DB.DB)
		_, adminToken := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete,
			ts.APIURL("/prayers/"+post.ID.String()), nil, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		ts.DB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		post := testutil.NewPrayerBuilder().WithUser(author).Build(t, ts.DB.DB)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete,
			ts.APIURL("/prayers/"+post.ID.String()), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
