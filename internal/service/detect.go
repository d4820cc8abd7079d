package service

import (
	"context"
	"strings"
)

// maxDetectChars is how much of the corpus the detection prompt sees.
const maxDetectChars = 1500

// UnknownClient is the placeholder name when detection fails.
const UnknownClient = "Inconnu"

const detectSystemPrompt = `Tu analyses des documents d'audit sécurité. ` +
	`Identifie le nom de l'organisation cliente auditée dans le texte fourni. ` +
	`Réponds uniquement avec le nom, sans phrase. ` +
	`Si aucun nom n'est identifiable, réponds exactement "Inconnu".`

// DetectClientName asks the model for the audited organisation's name
// from the start of the corpus. Failures and empty answers come back as
// UnknownClient, never as an error to the caller.
func DetectClientName(ctx context.Context, chat ChatClient, corpus string) string {
	text := strings.TrimSpace(corpus)
	if text == "" {
		return UnknownClient
	}

	name, err := chat.Complete(ctx, detectSystemPrompt, truncate(text, maxDetectChars), false)
	if err != nil {
		return UnknownClient
	}

	name = strings.Trim(strings.TrimSpace(name), `"'«» `)
	if name == "" || len(name) > 120 {
		return UnknownClient
	}
	return name
}
