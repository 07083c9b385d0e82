package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShort(t *testing.T) {
	parts := SplitMessage("привет", 4096)
	assert.Equal(t, []string{"привет"}, parts)
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("строка текста\n", 50)
	parts := SplitMessage(text, 100)

	require.Greater(t, len(parts), 1)
	for _, part := range parts {
		assert.LessOrEqual(t, len([]rune(part)), 100)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessageWithoutNewlines(t *testing.T) {
	text := strings.Repeat("б", 250)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 3)
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestDeepLinks(t *testing.T) {
	assert.Equal(t, "https://t.me/medgram_bot", BotDeepLink("medgram_bot", ""))
	assert.Equal(t, "https://t.me/medgram_bot?start=d_7", BotDeepLink("medgram_bot", DoctorStartPayload(7)))
	assert.Equal(t, "https://t.me/dr_anna", UserChatLink("dr_anna"))
}
