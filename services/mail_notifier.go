package services

import (
	"context"
	"strings"

	"conference-management-api/config"
	"conference-management-api/models"
)

const (
	acceptSubjectTemplate = "Decision on your submission: {{title}}"
	acceptBodyTemplate    = "<p>Dear author,</p>" +
		"<p>We are pleased to inform you that your submission <strong>{{title}}</strong> has been <strong>accepted</strong>.</p>" +
		"<p>Further instructions will follow from the programme committee.</p>"
	rejectBodyTemplate = "<p>Dear author,</p>" +
		"<p>We regret to inform you that your submission <strong>{{title}}</strong> has not been accepted.</p>" +
		"<p>We thank you for your interest and encourage you to submit again next year.</p>"
)

// MailNotifier delivers decision notifications over SMTP.
type MailNotifier struct {
	send func(to []string, subject, html string) error
}

// NewMailNotifier constructs a MailNotifier backed by the shared SMTP
// configuration.
func NewMailNotifier() *MailNotifier {
	return &MailNotifier{send: config.SendMail}
}

func (n *MailNotifier) SendDecisionNotification(ctx context.Context, paper *models.Paper, author models.PaperAuthor, decision *models.Decision) error {
	data := map[string]string{
		"title": paper.Title,
	}

	body := acceptBodyTemplate
	if decision.Outcome == models.OutcomeReject {
		body = rejectBodyTemplate
	}

	subject := applyTemplatePlaceholders(acceptSubjectTemplate, data)
	html := applyTemplatePlaceholders(body, data)
	return n.send([]string{author.Email}, subject, html)
}

func applyTemplatePlaceholders(text string, data map[string]string) string {
	result := text
	for key, value := range data {
		placeholder := "{{" + key + "}}"
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
