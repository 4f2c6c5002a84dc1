package generator

import (
	"context"
	"fmt"
	"strings"

	"docsmith/infrastructure/llm"
)

// Completer is the LLM boundary used to turn a prompt into structured fields.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

func buildEmailPrompt(prompt string) string {
	return fmt.Sprintf(`Write an email in JSON format with the following keys: from, to, subject, greeting, summary, and closing.
- Use this prompt for the email: %s.
- Extract the sender's name from the 'from' email address (i.e., the part before '@') and include it in the closing.
- End the closing with a polite phrase like 'Yours sincerely' or 'Yours faithfully', followed by a newline and the sender's name.`, prompt)
}

func buildApplicationPrompt(prompt string) string {
	return fmt.Sprintf(`Write an official application letter as JSON. Use these exact keys: name, classOrPosition, organization, to, toOrganization, date, subject, respected, body, closing.
- Only return the JSON object, no extra text.
- The 'closing' should be a polite phrase like "Yours faithfully,", followed by a newline and the sender's name (i.e., the value of the 'name' field).
Prompt: "%s"`, prompt)
}

// GenerateEmailFields asks the model for email fields described by the prompt.
func GenerateEmailFields(ctx context.Context, client Completer, prompt string) (EmailForm, error) {
	reply, err := client.Complete(ctx, buildEmailPrompt(prompt))
	if err != nil {
		return EmailForm{}, err
	}
	var form EmailForm
	if err := llm.ExtractJSONObject(reply, &form); err != nil {
		return EmailForm{}, err
	}
	return form, nil
}

// GenerateApplicationFields asks the model for application fields. The date
// on the form is user-controlled and never overwritten by the model.
func GenerateApplicationFields(ctx context.Context, client Completer, prompt, currentDate string) (ApplicationForm, error) {
	reply, err := client.Complete(ctx, buildApplicationPrompt(prompt))
	if err != nil {
		return ApplicationForm{}, err
	}
	var form ApplicationForm
	if err := llm.ExtractJSONObject(reply, &form); err != nil {
		return ApplicationForm{}, err
	}

	form.Closing = normalizeClosing(form.Closing)
	form.Respected = normalizeRespected(form.Respected)
	form.Date = currentDate
	return form, nil
}

// normalizeClosing rewrites "Yours faithfully, John" as the two-line form
// "Yours faithfully,\nJohn" when the model returned it on one line.
func normalizeClosing(closing string) string {
	if strings.Contains(closing, "\n") {
		return closing
	}
	parts := strings.SplitN(closing, ",", 2)
	if len(parts) != 2 {
		return closing
	}
	phrase := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if name == "" {
		return closing
	}
	return phrase + ",\n" + name
}

func normalizeRespected(respected string) string {
	respected = strings.TrimSpace(respected)
	if respected == "" || strings.HasSuffix(respected, ",") {
		return respected
	}
	return respected + ","
}
