package mailer

import (
	"context"
	"errors"

	"github.com/educore/campus-backend/pkg/helpers"
	tpl "github.com/educore/campus-backend/pkg/mailer/templates"
)

// QueueNotifier enqueues greeting emails on RabbitMQ; the email worker
// renders and delivers them. Delivery is decoupled from the request path
// on purpose: the queue publish is the only thing that can fail here.
type QueueNotifier struct {
	Pub     *helpers.RabbitPublisher
	AppName string
	Company string
	LogoURL string
	Enabled bool
}

func NewQueueNotifier(pub *helpers.RabbitPublisher, appName, company, logoURL string, enabled bool) *QueueNotifier {
	return &QueueNotifier{Pub: pub, AppName: appName, Company: company, LogoURL: logoURL, Enabled: enabled}
}

func (n *QueueNotifier) SendRegistrationGreeting(ctx context.Context, email, name string) error {
	if !n.Enabled {
		return nil
	}
	if n.Pub == nil {
		return errors.New("mail queue not configured")
	}
	data := tpl.GreetingData{
		Name:        name,
		Email:       email,
		AppName:     n.AppName,
		CompanyName: n.Company,
		LogoURL:     n.LogoURL,
	}
	job := EmailJob{To: email, Template: tpl.GreetingRegister, Data: tpl.ToMap(data)}
	return n.Pub.PublishJSON(ctx, job)
}
