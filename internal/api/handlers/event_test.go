package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yfcm/prayer-chain/internal/testutil"
)

func TestEventHandler_Timing(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	resp, err := http.Get(ts.APIURL("/event"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var timing struct {
		StartDate time.Time `json:"startDate"`
		Progress  int       `json:"progress"`
		HourLabel string    `json:"hourLabel"`
	}
	testutil.AssertJSONResponse(t, resp, &timing)
	assert.False(t, timing.StartDate.IsZero())
	assert.NotEmpty(t, timing.HourLabel)
}

func TestEventHandler_UpdateStartDate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	newStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("admin sets the start date", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, adminToken := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/event/start-date"),
			map[string]interface{}{"startDate": newStart}, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		timingResp, err := http.Get(ts.APIURL("/event"))
		require.NoError(t, err)
		defer timingResp.Body.Close()
		var timing struct {
			StartDate time.Time `json:"startDate"`
		}
		testutil.AssertJSONResponse(t, timingResp, &timing)
		assert.True(t, timing.StartDate.Equal(newStart))
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/event/start-date"),
			map[string]interface{}{"startDate": newStart}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestEventHandler_Themes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("lists all four blocks", func(t *testing.T) {
		ts.DB.Truncate(t)

		resp, err := http.Get(ts.APIURL("/themes"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Themes []struct {
				HourBlock int      `json:"hourBlock"`
				Title     string   `json:"title"`
				Points    []string `json:"points"`
			} `json:"themes"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		require.Len(t, result.Themes, 4)
		assert.Equal(t, []int{0, 6, 12, 18}, []int{
			result.Themes[0].HourBlock,
			result.Themes[1].HourBlock,
			result.Themes[2].HourBlock,
			result.Themes[3].HourBlock,
		})
		for _, theme := range result.Themes {
			assert.NotEmpty(t, theme.Title)
			assert.NotEmpty(t, theme.Points)
		}
	})

	t.Run("admin override shows up in reads", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, adminToken := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/themes/12"),
			map[string]interface{}{"title": "A New Afternoon Focus"}, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		getResp, err := http.Get(ts.APIURL("/themes/12"))
		require.NoError(t, err)
		defer getResp.Body.Close()
		var theme struct {
			Title     string `json:"title"`
			Scripture string `json:"scripture"`
		}
		testutil.AssertJSONResponse(t, getResp, &theme)
		assert.Equal(t, "A New Afternoon Focus", theme.Title)
		assert.NotEmpty(t, theme.Scripture, "untouched fields keep their defaults")
	})

	t.Run("update rejects a non-block hour", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, adminToken := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/themes/7"),
			map[string]interface{}{"title": "Nope"}, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPresenceHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	count := func() int {
		resp, err := http.Get(ts.APIURL("/presence"))
		require.NoError(t, err)
		defer resp.Body.Close()
		var result struct {
			Online int `json:"online"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		return result.Online
	}

	assert.Equal(t, 0, count())

	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/presence/heartbeat"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, count())

	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/presence/leave"), nil, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 0, count())
}
