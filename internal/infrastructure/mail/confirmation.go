package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

const (
	storefrontURL = "https://elite-toolboxes.web.app/"
	backgroundURL = "https://i.ibb.co/nRYdY2n/attachment-90071703-removebg-preview.png"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`
<div style="background-image: url('{{.Background}}');">
<h1>Hello Mr/Mr.s {{.Order.Name}},</h1>
<p>Your order for {{.Order.ToolName}} {{.Order.Quantity}} pieces, at Date: {{.Order.Date}} has been confirmed. It will be shipped soon to your address. Please contact us for any queries</p>
<h3>Our company address</h3>
<p>Trunk road, Feni, Chittagong</p>
<p>Bangladesh</p>
<a href="{{.Storefront}}">Don't want to hear more from us? unsubscribe here.</a>
</div>
`))

// OrderConfirmation renders the confirmation email for a placed order.
func OrderConfirmation(from string, order domain.Order) (domain.EmailMessage, error) {
	var html bytes.Buffer
	err := confirmationHTML.Execute(&html, struct {
		Order      domain.Order
		Background string
		Storefront string
	}{order, backgroundURL, storefrontURL})
	if err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render confirmation: %w", err)
	}

	subject := fmt.Sprintf("Your order for %s has been confirmed", order.ToolName)
	return domain.EmailMessage{
		From:    from,
		To:      order.Email,
		Subject: subject,
		Text:    subject,
		HTML:    html.String(),
	}, nil
}
