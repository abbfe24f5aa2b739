package contact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/svc/contact"
)

func TestRenderEmail(t *testing.T) {
	t.Parallel()

	subject, body, err := contact.RenderEmail(context.Background(), contact.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Company: "Acme",
		Phone:   "+1 555 0100",
		Message: "first line\nsecond line\r\nthird",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Contact Form Submission from IoT X Website", subject)
	assert.Contains(t, body, "<h2>New Contact Form Submission</h2>")
	assert.Contains(t, body, "<strong>Name:</strong> Jane Doe")
	assert.Contains(t, body, "<strong>Email:</strong> jane@example.com")
	assert.Contains(t, body, "<strong>Company:</strong> Acme")
	assert.Contains(t, body, "<strong>Phone:</strong> +1 555 0100")
	assert.Contains(t, body, "first line<br>second line<br>third")
	assert.Contains(t, body, "This email was sent from the IoT X website contact form.")
}

func TestRenderEmail_NotProvided(t *testing.T) {
	t.Parallel()

	_, body, err := contact.RenderEmail(context.Background(), contact.ContactRequest{Name: "A", Email: "a@b.co", Message: "m", Phone: "   "})
	require.NoError(t, err)
	assert.Contains(t, body, "<strong>Company:</strong> Not provided")
	assert.Contains(t, body, "<strong>Phone:</strong> Not provided")
}

func TestRenderEmail_EscapesMarkup(t *testing.T) {
	t.Parallel()

	_, body, err := contact.RenderEmail(context.Background(), contact.ContactRequest{
		Name:    `<script>alert("x")</script>`,
		Email:   "a@b.co",
		Company: `<b>bold</b>`,
		Message: "<img src=x onerror=alert(1)>\nok",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>bold</b>")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, body, "<br>ok")
}
