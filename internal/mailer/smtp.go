// Package mailer relays contact form messages over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/arzan03/AskSolve/internal/config"
	"github.com/arzan03/AskSolve/internal/models"
	"go.uber.org/zap"
)

// dialTimeout bounds a relay call when the caller's context has no deadline.
const dialTimeout = 30 * time.Second

type sendFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPRelay sends every message to one fixed recipient. Without credentials it
// logs the message instead of sending it.
type SMTPRelay struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
	send   sendFunc
}

func NewSMTPRelay(cfg config.SMTPConfig, logger *zap.Logger) *SMTPRelay {
	return &SMTPRelay{cfg: cfg, logger: logger, send: sendMail}
}

func (r *SMTPRelay) Send(ctx context.Context, msg models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.cfg.Username == "" || r.cfg.Password == "" {
		r.logger.Info("SMTP not configured, contact message not sent",
			zap.String("name", msg.Name),
			zap.String("email", msg.Email),
			zap.String("message", msg.Message),
		)
		return nil
	}

	auth := smtp.PlainAuth("", r.cfg.Username, r.cfg.Password, r.cfg.Host)
	addr := fmt.Sprintf("%s:%s", r.cfg.Host, r.cfg.Port)
	return r.send(ctx, addr, auth, r.cfg.FromEmail, []string{r.cfg.Recipient}, compose(r.cfg, msg))
}

func compose(cfg config.SMTPConfig, msg models.ContactMessage) []byte {
	// Header values come from the form; strip line breaks so they cannot add headers.
	clean := strings.NewReplacer("\r", " ", "\n", " ")
	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"Reply-To: %s\r\n"+
			"To: %s\r\n"+
			"Subject: Contact Form Submission from %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"Name: %s\nEmail: %s\nMessage: %s\n",
		cfg.FromEmail, clean.Replace(msg.Email), cfg.Recipient, clean.Replace(msg.Name),
		msg.Name, msg.Email, msg.Message,
	))
}

// sendMail is smtp.SendMail with the connection bound to ctx, so a relay that
// stops responding fails once the deadline passes.
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dialTimeout)
		defer cancel()
	}

	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	host, _, _ := net.SplitHostPort(addr)
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
