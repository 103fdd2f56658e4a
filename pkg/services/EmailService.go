package services

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/adampresley/adamgokit/email"
)

const (
	shareEmailSubject = "Your photos are ready!"
)

var shareEmailTemplate = template.Must(template.New("share-email").Parse(`
<h1>Your photos are ready!</h1>
<p>Hello {{.toName}}! Your photos from {{.fromName}} are ready to view.
There are {{.numPhotos}} photos in this album. Click the button below
to open your gallery.</p>
<a href="{{.link}}">View Album</a>
<p>Or copy this link into your browser: {{.link}}</p>
`))

/*
ShareEmailBody renders the HTML body of an album share email. data must
carry link, numPhotos, toName and fromName.
*/
func ShareEmailBody(data map[string]any) (string, error) {
	body := strings.Builder{}

	if err := shareEmailTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error rendering share email: %w", err)
	}

	return body.String(), nil
}

/*
SendEmail sends an album share email through Resend.
*/
func SendEmail(apiKey, toName, toEmail, fromName, fromEmail string, data map[string]any) error {
	var (
		err  error
		body string
	)

	data["toName"] = toName
	data["fromName"] = fromName

	if body, err = ShareEmailBody(data); err != nil {
		return err
	}

	service := email.NewResendService(&email.Config{
		ApiKey: apiKey,
	})

	return service.Send(email.Mail{
		Body:       body,
		BodyIsHtml: true,
		From: email.EmailAddress{
			Email: fromEmail,
			Name:  fromName,
		},
		Subject: shareEmailSubject,
		To: []email.EmailAddress{
			{Name: toName, Email: toEmail},
		},
	})
}
