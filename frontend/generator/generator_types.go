package generator

import (
	"errors"
	"strings"
)

const (
	TypeEmail       = "email"
	TypeApplication = "application"
)

var ErrMissingFields = errors.New("please fill in all required fields")

// EmailForm holds the editable fields of a generated email.
type EmailForm struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Greeting string `json:"greeting"`
	Summary  string `json:"summary"`
	Closing  string `json:"closing"`
}

// Validate checks that every email field is present.
func (f EmailForm) Validate() error {
	fields := []string{f.From, f.To, f.Subject, f.Greeting, f.Summary, f.Closing}
	for _, v := range fields {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// ApplicationForm holds the editable fields of a generated application letter.
type ApplicationForm struct {
	Name            string `json:"name"`
	ClassOrPosition string `json:"classOrPosition"`
	Organization    string `json:"organization"`
	To              string `json:"to"`
	ToOrganization  string `json:"toOrganization"`
	Date            string `json:"date"`
	Subject         string `json:"subject"`
	Respected       string `json:"respected"`
	Body            string `json:"body"`
	Closing         string `json:"closing"`
}

// Validate checks the required application fields.
func (f ApplicationForm) Validate() error {
	required := []string{f.Name, f.To, f.Subject, f.Body}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}
