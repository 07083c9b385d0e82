package webapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/medgram/medgram/internal/domain"
)

var (
	ErrEmptyInitData   = errors.New("init data is empty")
	ErrBadSignature    = errors.New("init data signature mismatch")
	ErrStaleInitData   = errors.New("init data is stale")
	ErrMissingIdentity = errors.New("init data carries no user")
)

// ParseInitData validates a web-app init payload and extracts the identity
// assertion and theme tokens. The signature scheme is the host platform's
// published one: HMAC-SHA256 over the sorted key=value lines, keyed with
// HMAC-SHA256("WebAppData", botToken).
func ParseInitData(raw, botToken string, maxAge time.Duration) (*domain.Identity, Theme, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, ErrEmptyInitData
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, nil, err
	}

	hash := values.Get("hash")
	if hash == "" || !verifySignature(values, hash, botToken) {
		return nil, nil, ErrBadSignature
	}

	authDate := time.Unix(parseInt(values.Get("auth_date")), 0)
	if maxAge > 0 && time.Since(authDate) > maxAge {
		return nil, nil, ErrStaleInitData
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, nil, ErrMissingIdentity
	}
	var identity domain.Identity
	if err := json.Unmarshal([]byte(userJSON), &identity); err != nil {
		return nil, nil, err
	}
	identity.AuthDate = authDate
	identity.Hash = hash

	theme := Theme{}
	if themeJSON := values.Get("theme_params"); themeJSON != "" {
		// Malformed theme params degrade to an empty theme.
		_ = json.Unmarshal([]byte(themeJSON), &theme)
	}

	return &identity, theme, nil
}

func verifySignature(values url.Values, hash, botToken string) bool {
	lines := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		lines = append(lines, key+"="+values.Get(key))
	}
	sort.Strings(lines)
	checkString := strings.Join(lines, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(hash))
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
