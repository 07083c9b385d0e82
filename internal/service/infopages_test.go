package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offerHTML = `<html><head><style>body{color:red}</style></head><body>
<nav>menu</nav>
<h1>Публичная оферта</h1>
<p>Настоящий документ определяет условия оказания услуг.</p>
<ul><li>Первое условие</li><li>Второе условие</li></ul>
<script>alert(1)</script>
<footer>контакты</footer>
</body></html>`

func TestRenderHTML(t *testing.T) {
	text, err := RenderHTML(offerHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "*Публичная оферта*")
	assert.Contains(t, text, "Настоящий документ определяет условия оказания услуг.")
	assert.Contains(t, text, "• Первое условие")
	assert.NotContains(t, text, "alert(1)")
	assert.NotContains(t, text, "menu")
	assert.NotContains(t, text, "контакты")
}

func TestRenderHTMLEmptyPage(t *testing.T) {
	_, err := RenderHTML("<html><body><script>x</script></body></html>")
	assert.Error(t, err)
}

func TestInfoPageFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(offerHTML))
	}))
	defer srv.Close()

	s := NewInfoPageService()
	text, err := s.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "*Публичная оферта*")
}

func TestInfoPageFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewInfoPageService()
	_, err := s.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
