package gmailclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/gmail/v1"
)

// EmailInterval is the minimum gap between two sends, to stay inside Gmail API rate limits
const EmailInterval = 3 * time.Second

// Email is a message with a plain-text body and an optional HTML alternative
type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SendEmail sends the message from the authorised account. Sends are serialised and throttled.
func (c *Client) SendEmail(ctx context.Context, email Email) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		if wait := EmailInterval - time.Since(c.lastSendTime); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	raw, err := buildMessage(email, uuid.NewString())
	if err != nil {
		return err
	}

	message := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if _, err := c.service.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()
	return nil
}

// buildMessage renders an RFC 822 message; with an HTML body it is multipart/alternative
func buildMessage(email Email, boundary string) ([]byte, error) {
	if len(email.To) == 0 {
		return nil, fmt.Errorf("email has no recipients")
	}

	var b bytes.Buffer
	if email.From != "" {
		fmt.Fprintf(&b, "From: %s\r\n", email.From)
	}
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if email.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(email.Text)
		return b.Bytes(), nil
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, email.Text)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, email.HTML)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return b.Bytes(), nil
}
