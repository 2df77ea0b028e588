// ABOUTME: Header parsing and sender filtering for imported email
// ABOUTME: Extracts the sender's name and address and drops automated mail
package sync

import (
	"net/mail"
	"strings"

	"google.golang.org/api/gmail/v1"
)

var automatedSenderPatterns = []string{
	"noreply",
	"no-reply",
	"donotreply",
	"do-not-reply",
	"notifications",
	"notify",
	"mailer-daemon",
	"postmaster",
	"bounces",
	"unsubscribe",
	"newsletter",
	"marketing",
}

// parseHeaders flattens message headers into a map keyed by header name.
func parseHeaders(payload *gmail.MessagePart) map[string]string {
	headers := make(map[string]string)
	if payload == nil {
		return headers
	}
	for _, h := range payload.Headers {
		headers[h.Name] = h.Value
	}
	return headers
}

// isAutomatedSender reports whether from looks like a machine sender. An empty sender
// counts as automated.
func isAutomatedSender(from string) bool {
	if strings.TrimSpace(from) == "" {
		return true
	}
	lower := strings.ToLower(from)
	for _, pattern := range automatedSenderPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// ExtractEmailAddress splits a From-style field into display name, address and lowercased
// domain. Fields that do not parse as an address are returned as the address unchanged.
func ExtractEmailAddress(field string) (name, email, domain string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return "", "", ""
	}

	if addr, err := mail.ParseAddress(field); err == nil {
		name, email = addr.Name, addr.Address
	} else if open, end := strings.LastIndex(field, "<"), strings.LastIndex(field, ">"); open >= 0 && end > open {
		name = strings.Trim(strings.TrimSpace(field[:open]), `"`)
		email = strings.TrimSpace(field[open+1 : end])
	} else {
		email = field
	}

	if at := strings.LastIndex(email, "@"); at > 0 && at < len(email)-1 && strings.Count(email, "@") == 1 {
		domain = strings.ToLower(email[at+1:])
	}
	return strings.TrimSpace(name), email, domain
}

// nameFromEmail derives a display name from the local part of an address.
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
