package webapp

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeInit(t *testing.T) {
	b := NewBridge(testBotToken)
	assert.False(t, b.Ready())

	b.Init(freshInitData(t))
	assert.True(t, b.Ready())
	require.NotNil(t, b.Identity())
	assert.Equal(t, int64(100500), b.Identity().ID)
	assert.Equal(t, "#ffffff", b.Theme()["bg_color"])
}

func TestBridgeInitDegradesOnBadPayload(t *testing.T) {
	b := NewBridge(testBotToken)
	b.Init("hash=deadbeef&auth_date=0")

	assert.True(t, b.Ready(), "a failed handshake still counts as attempted")
	assert.Nil(t, b.Identity())
	assert.Empty(t, b.Theme())
}

func TestBridgeInitRunsOnce(t *testing.T) {
	b := NewBridge(testBotToken)
	b.Init("")
	require.Nil(t, b.Identity())

	// A later valid payload must not resurrect the handshake.
	b.Init(freshInitData(t))
	assert.Nil(t, b.Identity())
}

func TestBridgeThemeListeners(t *testing.T) {
	b := NewBridge(testBotToken)

	var got []Theme
	unsubscribe := b.OnThemeChanged(func(theme Theme) {
		got = append(got, theme)
	})

	dark := Theme{"bg_color": "#000000"}
	b.SetTheme(dark)
	require.Len(t, got, 1)
	assert.Equal(t, dark, b.Theme())

	unsubscribe()
	b.SetTheme(Theme{"bg_color": "#ffffff"})
	assert.Len(t, got, 1, "unsubscribed listener must not fire")
}

func TestBridgeStaleAuthDateRejected(t *testing.T) {
	raw := signInitData(t, url.Values{
		"user":      {`{"id":100500,"first_name":"Анна"}`},
		"auth_date": {fmt.Sprintf("%d", time.Now().Add(-48*time.Hour).Unix())},
	})

	b := NewBridge(testBotToken)
	b.Init(raw)
	assert.True(t, b.Ready())
	assert.Nil(t, b.Identity())
}
