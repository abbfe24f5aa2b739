package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/iotx/contactrelay/pkg/email"
)

const (
	testEmailSubject = "Test Email from IoT X Contact Form"
	separator        = "-------------------------------------"
)

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Verify the SMTP settings and send a test email to the relay account",
	Args:  cobra.NoArgs,
	RunE:  runTestEmail,
}

func runTestEmail(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mailCfg, err := cfg.mail()
	if err != nil {
		return err
	}
	smtpCfg := mailCfg.SMTP

	fmt.Fprintln(out, "Testing email configuration...")
	fmt.Fprintln(out, separator)
	fmt.Fprintln(out, "Host:", smtpCfg.Host)
	fmt.Fprintln(out, "Port:", smtpCfg.Port)
	fmt.Fprintln(out, "User:", smtpCfg.Username)
	fmt.Fprintln(out, "Password:", maskSecret(smtpCfg.Password))
	fmt.Fprintln(out, "Secure:", secureLabel(smtpCfg.Secure()))
	fmt.Fprintln(out, separator)

	sender, err := email.NewSMTPSender(smtpCfg, email.WithVerifyTLS(cfg.environment().VerifyTLS()))
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " Verifying SMTP connection..."
	s.Start()
	err = sender.Verify(ctx)
	s.Stop()
	if err != nil {
		fmt.Fprintln(out, "SMTP connection verification failed:")
		printFailure(out, err)
		return err
	}
	fmt.Fprintln(out, "SMTP connection verified successfully!")

	s.Suffix = " Sending test email..."
	s.Start()
	err = sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   sender.From(),
		Subject:  testEmailSubject,
		BodyHTML: testEmailBody(time.Now()),
		Tag:      "smtp-test",
	})
	s.Stop()
	if err != nil {
		fmt.Fprintln(out, "Failed to send test email:")
		printFailure(out, err)
		return err
	}

	fmt.Fprintln(out, "Test email sent successfully to", sender.From())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "CONFIGURATION CORRECT! Your email system is working properly.")
	return nil
}

func secureLabel(secure bool) string {
	if secure {
		return "Yes (SSL)"
	}
	return "No"
}

func printFailure(w io.Writer, err error) {
	kind := email.Classify(err)
	fmt.Fprintln(w, "Error message:", err)
	fmt.Fprintln(w, "Error code:", kind.Code())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TROUBLESHOOTING:")
	for _, tip := range kind.Tips() {
		fmt.Fprintln(w, "-", tip)
	}
}

func testEmailBody(now time.Time) string {
	return `<h2>Test Email</h2>
<p>This is a test email to verify that the SMTP configuration is working correctly.</p>
<p><strong>Timestamp:</strong> ` + now.UTC().Format("2006-01-02T15:04:05.000Z") + `</p>
<hr>
<p><small>This is an automated test email.</small></p>`
}
