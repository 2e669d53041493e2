package websocket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yfcm/prayer-chain/internal/testutil"
	"github.com/yfcm/prayer-chain/internal/websocket"
)

const waitTimeout = 5 * time.Second

func TestAltarRoom_BurstFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	_, aliceToken := testutil.NewUserBuilder().WithDisplayName("Alice").BuildAndAuthenticate(t, ts)
	_, bobToken := testutil.NewUserBuilder().WithDisplayName("Bob").BuildAndAuthenticate(t, ts)

	alice := testutil.NewWSClient(t, ts.WebSocketURL(aliceToken))
	bob := testutil.NewWSClient(t, ts.WebSocketURL(bobToken))

	alice.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)
	bob.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)

	alice.SendBurst("🔥")

	msg := bob.WaitForMessage(websocket.MessageTypeBurstShared, waitTimeout)
	var payload websocket.BurstSharedPayload
	testutil.DecodePayload(t, msg, &payload)
	assert.Equal(t, "🔥", payload.Emoji)
	assert.Equal(t, "Alice", payload.UserName)

	// The sender hears their own burst too.
	alice.WaitForMessage(websocket.MessageTypeBurstShared, waitTimeout)
}

func TestAltarRoom_RejectsUnknownEmoji(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	client := testutil.NewWSClient(t, ts.WebSocketURL(token))
	client.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)

	client.SendBurst("💣")

	msg := client.WaitForMessage(websocket.MessageTypeError, waitTimeout)
	var payload websocket.ErrorPayload
	testutil.DecodePayload(t, msg, &payload)
	assert.Equal(t, "INVALID_EMOJI", payload.Code)
}

func TestAltarRoom_Prompting(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	_, aliceToken := testutil.NewUserBuilder().WithDisplayName("Alice").BuildAndAuthenticate(t, ts)
	_, bobToken := testutil.NewUserBuilder().WithDisplayName("Bob").BuildAndAuthenticate(t, ts)

	alice := testutil.NewWSClient(t, ts.WebSocketURL(aliceToken))
	bob := testutil.NewWSClient(t, ts.WebSocketURL(bobToken))
	alice.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)
	bob.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)

	alice.SendPrompting("Pray for the east gate")

	msg := bob.WaitForMessage(websocket.MessageTypePromptingShared, waitTimeout)
	var payload websocket.PromptingSharedPayload
	testutil.DecodePayload(t, msg, &payload)
	assert.Equal(t, "Pray for the east gate", payload.Text)
	assert.Equal(t, "Alice", payload.UserName)
}

func TestAltarRoom_FocusIsAdminOnly(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	_, adminToken := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)
	_, userToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	admin := testutil.NewWSClient(t, ts.WebSocketURL(adminToken))
	user := testutil.NewWSClient(t, ts.WebSocketURL(userToken))
	admin.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)
	user.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)

	t.Run("regular user is refused", func(t *testing.T) {
		user.SendFocus(2)

		msg := user.WaitForMessage(websocket.MessageTypeError, waitTimeout)
		var payload websocket.ErrorPayload
		testutil.DecodePayload(t, msg, &payload)
		assert.Equal(t, "FORBIDDEN", payload.Code)
	})

	t.Run("admin steers the room", func(t *testing.T) {
		admin.SendFocus(2)

		msg := user.WaitForMessage(websocket.MessageTypeFocusChanged, waitTimeout)
		var payload websocket.FocusChangedPayload
		testutil.DecodePayload(t, msg, &payload)
		assert.Equal(t, 2, payload.PointIndex)
	})

	t.Run("late sync sees the focus", func(t *testing.T) {
		user.SendSync()

		msg := user.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)
		var payload websocket.StateSyncPayload
		testutil.DecodePayload(t, msg, &payload)
		require.NotNil(t, payload.FocusedPoint)
		assert.Equal(t, 2, *payload.FocusedPoint)
	})
}

func TestAltarRoom_PresenceBroadcast(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	_, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, bobToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	alice := testutil.NewWSClient(t, ts.WebSocketURL(aliceToken))
	state := alice.WaitForMessage(websocket.MessageTypeStateSync, waitTimeout)
	var sync websocket.StateSyncPayload
	testutil.DecodePayload(t, state, &sync)
	assert.Equal(t, 1, sync.Online)

	testutil.NewWSClient(t, ts.WebSocketURL(bobToken))

	// The join may race an earlier presence push, so drain until the count
	// reflects both connections.
	deadline := time.Now().Add(waitTimeout)
	for {
		msg := alice.WaitForMessage(websocket.MessageTypePresence, waitTimeout)
		var payload websocket.PresencePayload
		testutil.DecodePayload(t, msg, &payload)
		if payload.Online == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("never saw online count reach 2, last was %d", payload.Online)
		}
	}
}

func TestAltarRoom_RejectsMissingToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, resp, err := testutil.DialRaw(ts.WebSocketURL(""))
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 401, resp.StatusCode)
	}
}
