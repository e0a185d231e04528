// Package mail delivers verification emails.
package mail

import (
	"context"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

// Transport names accepted in Options.Service besides the well-known providers.
const (
	ServiceLog  = "log"
	ServiceSMTP = "smtp"
)

// Options configures the mail transport.
type Options struct {
	Service  string
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type endpoint struct {
	host string
	port int
}

// well-known providers, selected by service name
var services = map[string]endpoint{
	"gmail":   {host: "smtp.gmail.com", port: 465},
	"outlook": {host: "smtp-mail.outlook.com", port: 587},
	"hotmail": {host: "smtp-mail.outlook.com", port: 587},
	"yahoo":   {host: "smtp.mail.yahoo.com", port: 465},
}

const implicitTLSPort = 465

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

var _ model.Mailer = (*SMTP)(nil)

// SMTP sends mail through an authenticated SMTP relay.
type SMTP struct {
	client sender
	from   string
}

// New builds the Mailer selected by opts.Service.
func New(opts Options, log *logger.Logger) (model.Mailer, error) {
	if strings.EqualFold(opts.Service, ServiceLog) || opts.Service == "" {
		return NewLog(log), nil
	}
	return NewSMTP(opts)
}

func NewSMTP(opts Options) (*SMTP, error) {
	ep, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(ep.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(opts.User),
		gomail.WithPassword(opts.Password),
	}
	if ep.port == implicitTLSPort {
		clientOpts = append(clientOpts, gomail.WithSSL())
	} else {
		clientOpts = append(clientOpts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(ep.host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	from := opts.From
	if from == "" {
		from = opts.User
	}

	return &SMTP{client: client, from: from}, nil
}

func resolve(opts Options) (endpoint, error) {
	service := strings.ToLower(strings.TrimSpace(opts.Service))
	if service == ServiceSMTP {
		if opts.Host == "" || opts.Port == 0 {
			return endpoint{}, fmt.Errorf("smtp service requires host and port")
		}
		return endpoint{host: opts.Host, port: opts.Port}, nil
	}

	ep, ok := services[service]
	if !ok {
		return endpoint{}, fmt.Errorf("unknown mail service %q", opts.Service)
	}
	if opts.Host != "" {
		ep.host = opts.Host
	}
	if opts.Port != 0 {
		ep.port = opts.Port
	}
	return ep, nil
}

func (s *SMTP) Send(ctx context.Context, msg model.Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (s *SMTP) build(msg model.Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}
