// Package mail delivers completed fact-find summaries to the advisory
// inbox over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"factfind/config"

	gomail "gopkg.in/gomail.v2"
)

// Summary is the content of a delivery: the rendered PDF plus the
// template fields substituted into the body.
type Summary struct {
	UserName    string
	SessionID   int
	SummaryText string
	PDF         []byte
}

// Mailer sends summary emails. Recipients and the body template come
// from the admin settings at send time.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

// Send delivers the summary to the comma-separated recipient list,
// substituting {{userName}}, {{sessionId}}, and {{summary}} in the
// template. An empty template falls back to a default body.
func (m *Mailer) Send(recipients, template string, s Summary) error {
	to := splitRecipients(recipients)
	if len(to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	body := template
	if body == "" {
		body = defaultTemplate
	}
	body = strings.NewReplacer(
		"{{userName}}", s.UserName,
		"{{sessionId}}", fmt.Sprintf("%d", s.SessionID),
		"{{summary}}", s.SummaryText,
	).Replace(body)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", fmt.Sprintf("Fact Find Completed - %s (session %d)", s.UserName, s.SessionID))
	msg.SetBody("text/html", body)
	if len(s.PDF) > 0 {
		msg.Attach(fmt.Sprintf("fact-find-%d.pdf", s.SessionID), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(s.PDF))
			return err
		}))
	}

	return m.dialer.DialAndSend(msg)
}

func splitRecipients(recipients string) []string {
	var out []string
	for _, r := range strings.Split(recipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

const defaultTemplate = `<p>Hello,</p>
<p>{{userName}} has completed their insurance fact find (session {{sessionId}}). The full summary is attached as a PDF.</p>
<pre>{{summary}}</pre>
<p>This is an automated message.</p>`
