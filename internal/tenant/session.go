package tenant

import "strings"

// Webpay caps session IDs at 61 characters; stay under it.
const maxSessionLen = 60

// EncodeSession tags a session ID with the owning tenant so the tenant can be
// recovered from the commit callback, which only echoes the session back.
func EncodeSession(tenantID, raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			b.WriteRune(r)
		}
	}

	s := tenantID + "__" + b.String()
	if len(s) > maxSessionLen {
		s = s[:maxSessionLen]
	}

	return s
}

// TenantIDFromSession recovers the tenant tag from an encoded session ID.
// Returns "" for sessions without a tag.
func TenantIDFromSession(sessionID string) string {
	id, _, found := strings.Cut(sessionID, "__")
	if !found {
		return ""
	}

	return id
}
