package service

import (
	"strings"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/refdata"
)

// questionRule rewrites a requirement starting with an infinitive lemma
// into an "is it already in place" question. Rules are evaluated in
// order; the declarative default below catches everything else.
type questionRule struct {
	Lemma      string
	Participle string
}

const questionPrefix = "L’organisation a-t-elle"

// questionRules is ordered with multi-word lemmas first so "mettre en
// place" wins over any shorter overlap.
var questionRules = []questionRule{
	{"mettre en place", "mis en place"},
	{"mettre à jour", "mis à jour"},
	{"sensibiliser", "sensibilisé"},
	{"authentifier", "authentifié"},
	{"journaliser", "journalisé"},
	{"sauvegarder", "sauvegardé"},
	{"implémenter", "implémenté"},
	{"cloisonner", "cloisonné"},
	{"formaliser", "formalisé"},
	{"identifier", "identifié"},
	{"surveiller", "surveillé"},
	{"contrôler", "contrôlé"},
	{"documenter", "documenté"},
	{"sécuriser", "sécurisé"},
	{"segmenter", "segmenté"},
	{"autoriser", "autorisé"},
	{"appliquer", "appliqué"},
	{"maintenir", "maintenu"},
	{"interdire", "interdit"},
	{"recenser", "recensé"},
	{"protéger", "protégé"},
	{"chiffrer", "chiffré"},
	{"définir", "défini"},
	{"assurer", "assuré"},
	{"limiter", "limité"},
	{"séparer", "séparé"},
	{"activer", "activé"},
	{"changer", "changé"},
	{"former", "formé"},
	{"tester", "testé"},
}

// RequirementToQuestion turns an ANSSI requirement title into a plain
// French audit question. Requirements starting with a known infinitive
// become "L’organisation a-t-elle <participe> ... ?"; anything else
// falls back to a direct conformity question.
func RequirementToQuestion(requirement string) string {
	text := strings.TrimSpace(requirement)
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	for _, rule := range questionRules {
		if !strings.HasPrefix(lower, rule.Lemma) {
			continue
		}
		rest := strings.TrimSpace(text[len(rule.Lemma):])
		rest = strings.TrimLeft(rest, ": ")
		if rest == "" {
			return questionPrefix + " " + rule.Participle + " ?"
		}
		return questionPrefix + " " + rule.Participle + " " + rest + " ?"
	}

	return "Cette exigence est-elle respectée : « " + text + " » ?"
}

// Questionnaire returns the full measure list for an audit mode: the
// ISO clause questionnaire for the mode followed by the ANSSI hygiene
// measures with rewritten questions.
func Questionnaire(mode domain.AuditMode) []domain.Measure {
	measures := refdata.ISOQuestionnaire(mode)
	return append(measures, refdata.ANSSIMeasures(RequirementToQuestion)...)
}
