package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

func TestRequirementToQuestion(t *testing.T) {
	tests := []struct {
		name        string
		requirement string
		expected    string
	}{
		{
			"infinitive with rule",
			"Sensibiliser les utilisateurs aux risques liés aux usages numériques",
			"L’organisation a-t-elle sensibilisé les utilisateurs aux risques liés aux usages numériques ?",
		},
		{
			"multi word lemma wins",
			"Mettre en place un réseau Wi-Fi séparé pour les visiteurs",
			"L’organisation a-t-elle mis en place un réseau Wi-Fi séparé pour les visiteurs ?",
		},
		{
			"mettre à jour",
			"Mettre à jour les composants logiciels sans délai",
			"L’organisation a-t-elle mis à jour les composants logiciels sans délai ?",
		},
		{
			"no matching lemma",
			"Politique de sécurité des systèmes d'information",
			"Cette exigence est-elle respectée : « Politique de sécurité des systèmes d'information » ?",
		},
		{
			"empty input",
			"   ",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequirementToQuestion(tt.requirement))
		})
	}
}

func TestRequirementToQuestionAlwaysInterrogative(t *testing.T) {
	// Every ANSSI measure must come out as a question, whatever its verb.
	for _, m := range Questionnaire(domain.AuditModeInternal) {
		q := RequirementToQuestion(m.Title)
		assert.NotEmpty(t, q, m.ID)
		assert.Equal(t, byte('?'), q[len(q)-1], m.ID)
	}
}

func TestQuestionnaireModes(t *testing.T) {
	internal := Questionnaire(domain.AuditModeInternal)
	official := Questionnaire(domain.AuditModeOfficial)

	// The official mode prepends the management clauses, so it is a
	// strict superset.
	assert.Greater(t, len(official), len(internal))

	ids := make(map[string]bool, len(official))
	for _, m := range official {
		assert.False(t, ids[m.ID], "duplicate measure ID %s", m.ID)
		ids[m.ID] = true
	}
	for _, m := range internal {
		assert.True(t, ids[m.ID], "internal measure %s missing from official mode", m.ID)
	}
}
