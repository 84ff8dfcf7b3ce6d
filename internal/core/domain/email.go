package domain

// EmailMessage is a rendered message ready for submission.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}
