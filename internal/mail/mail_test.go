package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_WelcomeTemplateFromEmbeddedFS(t *testing.T) {
	m := NewMail("noreply@example.com", "Bible Prayer", "", "smtp.example.com", "587")

	msg, err := m.render("alice@example.com", "Welcome", "welcome.html", map[string]interface{}{
		"Name":   "alice",
		"AppURL": "https://bibleprayer.app",
	})
	require.NoError(t, err)

	body := string(msg)
	assert.Contains(t, body, "From: Bible Prayer <noreply@example.com>\r\n")
	assert.Contains(t, body, "To: alice@example.com\r\n")
	assert.Contains(t, body, "Subject: Welcome\r\n")
	assert.Contains(t, body, "Welcome, alice!")
	assert.Contains(t, body, `href="https://bibleprayer.app"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	m := NewMail("noreply@example.com", "Bible Prayer", "", "smtp.example.com", "587")

	_, err := m.render("alice@example.com", "Welcome", "missing.html", nil)
	assert.Error(t, err)
}
