package contact

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const notProvided = "Not provided"

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

// contactEmail is the HTML body of a relayed submission. Every submitted
// value is escaped; message line breaks become <br>.
func contactEmail(req ContactRequest) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<h2>New Contact Form Submission</h2>\n")
		sb.WriteString("<p><strong>Name:</strong> " + templ.EscapeString(req.Name) + "</p>\n")
		sb.WriteString("<p><strong>Email:</strong> " + templ.EscapeString(req.Email) + "</p>\n")
		sb.WriteString("<p><strong>Company:</strong> " + templ.EscapeString(orNotProvided(req.Company)) + "</p>\n")
		sb.WriteString("<p><strong>Phone:</strong> " + templ.EscapeString(orNotProvided(req.Phone)) + "</p>\n")
		sb.WriteString("<p><strong>Message:</strong></p>\n<p>")
		for i, line := range strings.Split(strings.ReplaceAll(req.Message, "\r\n", "\n"), "\n") {
			if i > 0 {
				sb.WriteString("<br>")
			}
			sb.WriteString(templ.EscapeString(line))
		}
		sb.WriteString("</p>\n<hr>\n")
		sb.WriteString("<p><em>This email was sent from the IoT X website contact form.</em></p>\n")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}
