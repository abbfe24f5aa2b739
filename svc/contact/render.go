package contact

import (
	"context"

	"github.com/iotx/contactrelay/pkg/email/templates"
)

// Subject is the fixed subject line of relayed messages.
const Subject = "New Contact Form Submission from IoT X Website"

// RenderEmail builds the subject and HTML body for req.
func RenderEmail(ctx context.Context, req ContactRequest) (subject, body string, err error) {
	body, err = templates.Render(ctx, contactEmail(req))
	if err != nil {
		return "", "", err
	}
	return Subject, body, nil
}
