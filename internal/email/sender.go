package email

import "context"

// Sender define la interfaz para envio de correos transaccionales.
type Sender interface {
	SendWelcome(ctx context.Context, toEmail string, name string) error
}

type disabledSender struct{}

// NewDisabledSender devuelve un sender que descarta los correos en
// silencio, para despliegues sin SMTP configurado.
func NewDisabledSender() Sender {
	return disabledSender{}
}

func (disabledSender) SendWelcome(context.Context, string, string) error {
	return nil
}
