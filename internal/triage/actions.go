package triage

import (
	"net/url"
	"strings"
	"unicode"

	"agency-chatbot/internal/domain"
)

// WhatsAppURL builds a wa.me link for number with message pre-filled.
func WhatsAppURL(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	u := "https://wa.me/" + digits
	if message != "" {
		u += "?text=" + url.QueryEscape(message)
	}
	return u
}

// MailtoURL builds a mailto link for address.
func MailtoURL(address, subject string) string {
	u := "mailto:" + strings.TrimSpace(address)
	if subject != "" {
		u += "?subject=" + url.PathEscape(subject)
	}
	return u
}

func whatsAppAction(c domain.Contact, label string) *domain.Action {
	return &domain.Action{
		Kind:  domain.ActionWhatsApp,
		Label: label,
		URL:   WhatsAppURL(c.WhatsAppNumber, c.WhatsAppMessage),
	}
}

func emailAction(c domain.Contact, label string) *domain.Action {
	return &domain.Action{
		Kind:  domain.ActionEmail,
		Label: label,
		URL:   MailtoURL(c.Email, "Project inquiry"),
	}
}
