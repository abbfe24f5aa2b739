// Package email sends transactional HTML messages.
//
// EmailSender is the single operation the rest of the code depends on.
// Three implementations exist, selected by MAIL_TRANSPORT through NewSender:
//
//   - SMTPSender talks to an authenticated SMTP relay account with
//     emersion/go-smtp. Port 465 means implicit TLS, other ports upgrade with
//     STARTTLS unless EMAIL_TLS_MODE says otherwise. The account address is
//     the sender of every message. Certificate checks are enabled only when
//     the environment asks for them.
//   - PostmarkSender uses the Postmark API.
//   - DevSender writes messages to a directory for local work.
//
// Delivery failures wrap ErrFailedToSendEmail, ErrConnect, ErrTLS or ErrAuth.
// Classify turns any of them into a FailureKind carrying a short code and
// troubleshooting tips.
//
// Package emailtest provides a recording SMTP server for tests.
package email
