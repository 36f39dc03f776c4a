package models

// EmailMessage is one outbound email.
type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}
