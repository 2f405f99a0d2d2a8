package mail

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"net/smtp"

	"github.com/gofiber/fiber/v2/log"

	"github.com/pressroom/newshub/internal/pkg/env"
)

// Message is one outbound HTML mail. Headers carries additional header
// lines such as List-Unsubscribe; From, To and the MIME headers are set
// from the configuration and the other fields.
type Message struct {
	To      string
	Subject string
	Body    string
	Headers map[string]string
}

type smtpConfig struct {
	addr   string
	sender string
	auth   smtp.Auth
}

var (
	cfg     smtpConfig
	cfgOnce sync.Once
)

func config() smtpConfig {
	cfgOnce.Do(func() {
		host := env.GetEnv("SMTP_HOST", "")
		port := env.GetEnv("SMTP_PORT", "")
		username := env.GetEnv("SMTP_USERNAME", "")
		password := env.GetEnv("SMTP_PASSWORD", "")
		sender := env.GetEnv("SMTP_SENDER", "")

		if sender == "" {
			sender = "no-reply@localhost"
			log.Warnf("[Mail] SMTP_SENDER not set, using default sender: %s", sender)
		}

		var auth smtp.Auth
		if username != "" && password != "" {
			auth = smtp.PlainAuth("", username, password, host)
		}

		cfg = smtpConfig{
			addr:   fmt.Sprintf("%s:%s", host, port),
			sender: sender,
			auth:   auth,
		}
	})
	return cfg
}

// Send delivers one mail through the configured SMTP relay.
func Send(msg Message) error {
	c := config()

	err := smtp.SendMail(c.addr, c.auth, c.sender, []string{msg.To}, encode(c.sender, msg))
	if err != nil {
		log.Errorf("[Mail] Send to %s failed: %v", msg.To, err)
	} else {
		log.Infof("[Mail] Sent to %s via %s", msg.To, c.addr)
	}
	return err
}

// SendMail is the plain transactional shortcut (activation mails etc.).
func SendMail(to string, subject string, body string) error {
	return Send(Message{To: to, Subject: subject, Body: body})
}

// encode renders the RFC 5322 wire form. Extra headers are emitted in
// sorted order so the output is deterministic.
func encode(sender string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, msg.To, msg.Subject)

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, msg.Headers[k])
	}

	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
