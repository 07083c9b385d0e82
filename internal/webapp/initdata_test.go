package webapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:TEST_TOKEN"

// signInitData builds a signed init payload the way the host platform does.
func signInitData(t *testing.T, values url.Values) string {
	t.Helper()

	lines := make([]string, 0, len(values))
	for key := range values {
		lines = append(lines, key+"="+values.Get(key))
	}
	sort.Strings(lines)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func freshInitData(t *testing.T) string {
	t.Helper()
	return signInitData(t, url.Values{
		"user":         {`{"id":100500,"first_name":"Анна","username":"anna"}`},
		"auth_date":    {fmt.Sprintf("%d", time.Now().Unix())},
		"query_id":     {"AAE"},
		"theme_params": {`{"bg_color":"#ffffff","text_color":"#000000"}`},
	})
}

func TestParseInitData(t *testing.T) {
	identity, theme, err := ParseInitData(freshInitData(t), testBotToken, time.Hour)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, int64(100500), identity.ID)
	assert.Equal(t, "Анна", identity.FirstName)
	assert.Equal(t, "#ffffff", theme["bg_color"])
	assert.NotEmpty(t, identity.Hash)
}

func TestParseInitDataEmpty(t *testing.T) {
	_, _, err := ParseInitData("   ", testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrEmptyInitData)
}

func TestParseInitDataTamperedHash(t *testing.T) {
	raw := freshInitData(t)
	tampered := strings.Replace(raw, "anna", "eve", 1)

	_, _, err := ParseInitData(tampered, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseInitDataWrongToken(t *testing.T) {
	_, _, err := ParseInitData(freshInitData(t), "54321:OTHER", time.Hour)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseInitDataStale(t *testing.T) {
	raw := signInitData(t, url.Values{
		"user":      {`{"id":100500,"first_name":"Анна"}`},
		"auth_date": {fmt.Sprintf("%d", time.Now().Add(-25*time.Hour).Unix())},
	})

	_, _, err := ParseInitData(raw, testBotToken, 24*time.Hour)
	assert.ErrorIs(t, err, ErrStaleInitData)
}

func TestParseInitDataMissingUser(t *testing.T) {
	raw := signInitData(t, url.Values{
		"auth_date": {fmt.Sprintf("%d", time.Now().Unix())},
		"query_id":  {"AAE"},
	})

	_, _, err := ParseInitData(raw, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrMissingIdentity)
}
