package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Render renders tpl into a string, ready to be used as an email HTML body.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
