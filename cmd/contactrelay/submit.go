package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/iotx/contactrelay/pkg/contactform"
	"github.com/iotx/contactrelay/svc/contact"
)

var (
	submitRelay    string
	submitFields   contact.ContactRequest
	submitNoFake   bool
	submitProbeTTL time.Duration
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the contact form to a relay from the terminal",
	Long: `Send one contact form submission the way the website does: validate,
probe the relay's health endpoint, then post.

When the relay is unreachable the website shows success anyway; this
command reports that as "simulated" unless --no-simulate is set.

Example:
  contactrelay submit --relay http://localhost:3000 \
    --name "Jane" --email jane@example.com --message "Hello"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := contactform.NewClient(submitRelay, contactform.WithProbeTimeout(submitProbeTTL))
		if err != nil {
			return err
		}

		form := contactform.NewForm(client,
			contactform.WithSimulatedFallback(!submitNoFake),
			contactform.WithResetDelay(time.Millisecond))
		defer form.Close()

		fields := map[string]string{
			contact.FieldName:    submitFields.Name,
			contact.FieldEmail:   submitFields.Email,
			contact.FieldCompany: submitFields.Company,
			contact.FieldPhone:   submitFields.Phone,
			contact.FieldMessage: submitFields.Message,
		}
		for field, value := range fields {
			if err := form.Set(field, value); err != nil {
				return err
			}
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = " Sending..."
		s.Start()
		res, err := form.Submit(cmd.Context())
		s.Stop()

		out := cmd.OutOrStdout()
		switch res.Status {
		case contactform.StatusDelivered:
			fmt.Fprintln(out, "delivered:", res.Message)
		case contactform.StatusSimulatedDelivered:
			fmt.Fprintln(out, "simulated (relay unreachable)")
		default:
			fmt.Fprintln(out, "failed:", res.Reason)
			if err == nil {
				err = errors.New(res.Reason)
			}
		}
		return err
	},
}

func init() {
	f := submitCmd.Flags()
	f.StringVar(&submitRelay, "relay", "http://localhost:3000", "relay base URL")
	f.StringVar(&submitFields.Name, "name", "", "your name")
	f.StringVar(&submitFields.Email, "email", "", "your email address")
	f.StringVar(&submitFields.Company, "company", "", "company (optional)")
	f.StringVar(&submitFields.Phone, "phone", "", "phone (optional)")
	f.StringVarP(&submitFields.Message, "message", "m", "", "message")
	f.BoolVar(&submitNoFake, "no-simulate", false, "report an unreachable relay as a failure")
	f.DurationVar(&submitProbeTTL, "probe-timeout", contactform.DefaultProbeTimeout, "health probe timeout")
}
