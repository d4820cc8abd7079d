// Package refdata holds the fixed compliance reference tables: the
// ANSSI hygiene guide measures and the ISO 27001 questionnaires. The
// tables are loaded at process start and never mutated.
package refdata

import "github.com/oussamalaaniba/auditbot-iso27001/internal/domain"

type anssiMeasure struct {
	ID    string
	Title string
}

var anssiSections = []struct {
	Theme    string
	Measures []anssiMeasure
}{
	{
		Theme: "I – Sensibiliser et former",
		Measures: []anssiMeasure{
			{"I-1", "Former les équipes opérationnelles"},
			{"I-2", "Sensibiliser les utilisateurs"},
			{"I-3", "Maîtriser les risques de l’infogérance"},
		},
	},
	{
		Theme: "II – Connaître le SI",
		Measures: []anssiMeasure{
			{"II-4", "Identifier données/serveurs sensibles & schéma réseau"},
			{"II-5", "Inventaire des comptes privilégiés"},
			{"II-6", "Procédures arrivée/départ/changement"},
			{"II-7", "Autoriser la connexion aux seuls équipements maîtrisés"},
		},
	},
	{
		Theme: "III – Authentifier & contrôler les accès",
		Measures: []anssiMeasure{
			{"III-8", "Comptes nominatifs & séparation des rôles"},
			{"III-9", "Droits sur les ressources sensibles"},
			{"III-10", "Règles de mots de passe"},
			{"III-11", "Protéger les mots de passe stockés"},
			{"III-12", "Changer les identifiants par défaut"},
			{"III-13", "Authentification forte"},
		},
	},
	{
		Theme: "IV – Sécuriser les postes",
		Measures: []anssiMeasure{
			{"IV-14", "Niveau de sécurité minimal du parc"},
			{"IV-15", "Se protéger des supports amovibles"},
			{"IV-16", "Gestion centralisée des politiques de sécurité"},
			{"IV-17", "Activer/configurer le pare-feu local"},
			{"IV-18", "Chiffrer les données sensibles transmises"},
		},
	},
	{
		Theme: "V – Sécuriser le réseau",
		Measures: []anssiMeasure{
			{"V-19", "Segmenter & cloisonner le réseau"},
			{"V-20", "Sécurité du Wi-Fi & séparation des usages"},
			{"V-21", "Protocoles réseau sécurisés"},
			{"V-22", "Passerelle d’accès sécurisé à Internet"},
			{"V-23", "Cloisonner les services exposés Internet"},
			{"V-24", "Protéger la messagerie professionnelle"},
			{"V-25", "Sécuriser les interconnexions partenaires"},
			{"V-26", "Contrôler l’accès aux salles serveurs/locaux techniques"},
		},
	},
	{
		Theme: "VI – Sécuriser l’administration",
		Measures: []anssiMeasure{
			{"VI-27", "Interdire Internet sur postes/serveurs d’admin"},
			{"VI-28", "Réseau d’administration dédié/cloisonné"},
			{"VI-29", "Limiter les droits d’admin sur postes"},
		},
	},
	{
		Theme: "VII – Gérer le nomadisme",
		Measures: []anssiMeasure{
			{"VII-30", "Sécurisation physique des terminaux nomades"},
			{"VII-31", "Chiffrer les données sensibles (matériel perdable)"},
			{"VII-32", "Sécuriser la connexion réseau en mobilité"},
			{"VII-33", "Politiques dédiées aux terminaux mobiles"},
		},
	},
	{
		Theme: "VIII – Maintenir le SI à jour",
		Measures: []anssiMeasure{
			{"VIII-34", "Politique de mise à jour"},
			{"VIII-35", "Anticiper fin de support & limiter adhérences"},
		},
	},
	{
		Theme: "IX – Superviser, auditer, réagir",
		Measures: []anssiMeasure{
			{"IX-36", "Activer/configurer les journaux"},
			{"IX-37", "Politique de sauvegarde"},
			{"IX-38", "Audits réguliers & actions correctives"},
		},
	},
	{
		Theme: "X – Pour aller plus loin",
		Measures: []anssiMeasure{
			{"X-39", "Gestion des vulnérabilités avancée (option)"},
			{"X-40", "Durcissement renforcé (option)"},
			{"X-41", "Tests d’intrusion réguliers (option)"},
			{"X-42", "Plans d’amélioration continue (option)"},
		},
	},
}

// ANSSIMeasures returns the hygiene guide measures flattened in guide
// order, each with its derived audit question.
func ANSSIMeasures(toQuestion func(string) string) []domain.Measure {
	if toQuestion == nil {
		toQuestion = func(s string) string { return s }
	}
	measures := make([]domain.Measure, 0, 42)
	for _, section := range anssiSections {
		for _, m := range section.Measures {
			measures = append(measures, domain.Measure{
				ID:       m.ID,
				Theme:    section.Theme,
				Title:    m.Title,
				Question: toQuestion(m.Title),
			})
		}
	}
	return measures
}
