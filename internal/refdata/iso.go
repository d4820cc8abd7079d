package refdata

import "github.com/oussamalaaniba/auditbot-iso27001/internal/domain"

type isoQuestion struct {
	Clause   string
	Question string
}

var isoAnnexA = []struct {
	Domain    string
	Questions []isoQuestion
}{
	{
		Domain: "A.5 Politiques de sécurité de l'information",
		Questions: []isoQuestion{
			{"5.1", "Existe-t-il une politique de sécurité formellement approuvée par la direction ?"},
			{"5.2", "La politique est-elle communiquée à tous les employés et parties prenantes pertinentes ?"},
			{"5.3", "Un processus de révision régulière de la politique est-il en place et documenté ?"},
		},
	},
	{
		Domain: "A.6 Organisation de la sécurité de l'information",
		Questions: []isoQuestion{
			{"6.1", "Les rôles et responsabilités en matière de sécurité de l'information sont-ils clairement définis et communiqués ?"},
			{"6.2", "Existe-t-il un responsable de la sécurité de l'information désigné (RSSI) ?"},
			{"6.3", "La sécurité est-elle coordonnée entre les différents départements ?"},
		},
	},
	{
		Domain: "A.7 Sécurité des ressources humaines",
		Questions: []isoQuestion{
			{"7.1", "Les candidats font-ils l’objet d’une vérification d’antécédents avant embauche ?"},
			{"7.2", "Une formation à la sécurité est-elle dispensée à l’intégration ?"},
			{"7.3", "Les obligations contractuelles incluent-elles des exigences de sécurité ?"},
		},
	},
	{
		Domain: "A.8 Gestion des actifs",
		Questions: []isoQuestion{
			{"8.1", "Un inventaire des actifs est-il tenu à jour et approuvé ?"},
			{"8.2", "Les actifs sont-ils classifiés selon leur sensibilité ?"},
			{"8.3", "Des règles d'utilisation acceptable des actifs sont-elles définies ?"},
		},
	},
	{
		Domain: "A.9 Contrôle d'accès",
		Questions: []isoQuestion{
			{"9.1", "Existe-t-il une politique de contrôle d’accès ?"},
			{"9.2", "Les droits sont-ils accordés selon le principe du moindre privilège ?"},
			{"9.3", "Les droits sont-ils révoqués immédiatement en cas de départ ou changement de poste ?"},
		},
	},
	{
		Domain: "A.10 Cryptographie",
		Questions: []isoQuestion{
			{"10.1", "Une politique d’utilisation de la cryptographie est-elle définie ?"},
			{"10.2", "Les clés cryptographiques sont-elles gérées de manière sécurisée ?"},
		},
	},
	{
		Domain: "A.11 Sécurité physique et environnementale",
		Questions: []isoQuestion{
			{"11.1", "Les accès physiques aux zones sensibles sont-ils contrôlés ?"},
			{"11.2", "Les équipements sont-ils protégés contre les menaces environnementales ?"},
			{"11.3", "Une procédure de gestion des visiteurs est-elle appliquée ?"},
		},
	},
	{
		Domain: "A.12 Sécurité opérationnelle",
		Questions: []isoQuestion{
			{"12.1", "Les procédures opérationnelles sont-elles documentées et accessibles ?"},
			{"12.2", "Les changements sont-ils contrôlés par un processus de gestion des changements ?"},
			{"12.3", "Les journaux d'activité sont-ils collectés et analysés régulièrement ?"},
		},
	},
	{
		Domain: "A.13 Sécurité des communications",
		Questions: []isoQuestion{
			{"13.1", "Les réseaux sont-ils segmentés et protégés ?"},
			{"13.2", "Les communications sensibles sont-elles chiffrées ?"},
			{"13.3", "Une politique d'utilisation des services de messagerie est-elle définie ?"},
		},
	},
	{
		Domain: "A.14 Acquisition, développement et maintenance des systèmes",
		Questions: []isoQuestion{
			{"14.1", "Les exigences de sécurité sont-elles intégrées dans les projets ?"},
			{"14.2", "Des tests de sécurité sont-ils effectués avant mise en production ?"},
			{"14.3", "Les vulnérabilités applicatives sont-elles corrigées rapidement ?"},
		},
	},
	{
		Domain: "A.15 Relations avec les fournisseurs",
		Questions: []isoQuestion{
			{"15.1", "Les contrats fournisseurs incluent-ils des clauses de sécurité ?"},
			{"15.2", "Les performances sécurité des fournisseurs sont-elles évaluées ?"},
		},
	},
	{
		Domain: "A.16 Gestion des incidents de sécurité",
		Questions: []isoQuestion{
			{"16.1", "Un processus de gestion des incidents est-il défini ?"},
			{"16.2", "Les incidents sont-ils documentés et analysés ?"},
			{"16.3", "Les leçons apprises sont-elles intégrées aux procédures ?"},
		},
	},
	{
		Domain: "A.17 Continuité d'activité",
		Questions: []isoQuestion{
			{"17.1", "La sécurité de l'information est-elle intégrée au PCA ?"},
			{"17.2", "Le PCA est-il testé régulièrement ?"},
		},
	},
	{
		Domain: "A.18 Conformité",
		Questions: []isoQuestion{
			{"18.1", "Les exigences légales et réglementaires sont-elles respectées ?"},
			{"18.2", "Des audits internes sont-ils réalisés périodiquement ?"},
		},
	},
}

var isoManagement = []struct {
	Domain    string
	Questions []isoQuestion
}{
	{
		Domain: "4. Contexte de l'organisation",
		Questions: []isoQuestion{
			{"4.1", "Le contexte interne et externe de l'organisation est-il documenté ?"},
			{"4.2", "Les besoins et attentes des parties prenantes sont-ils identifiés ?"},
			{"4.3", "Le périmètre du SMSI est-il défini et documenté ?"},
		},
	},
	{
		Domain: "5. Leadership",
		Questions: []isoQuestion{
			{"5.1", "La direction démontre-t-elle son engagement envers le SMSI ?"},
			{"5.2", "Une politique de sécurité est-elle définie et approuvée par la direction ?"},
		},
	},
	{
		Domain: "6. Planification",
		Questions: []isoQuestion{
			{"6.1", "Les risques liés à la sécurité de l'information sont-ils identifiés et évalués ?"},
			{"6.2", "Des objectifs mesurables de sécurité sont-ils définis et suivis ?"},
		},
	},
	{
		Domain: "7. Support",
		Questions: []isoQuestion{
			{"7.1", "Les ressources nécessaires au SMSI sont-elles allouées ?"},
			{"7.2", "Le personnel est-il compétent et formé à la sécurité de l'information ?"},
		},
	},
	{
		Domain: "8. Fonctionnement",
		Questions: []isoQuestion{
			{"8.1", "Les opérations sont-elles planifiées et maîtrisées ?"},
			{"8.2", "Les résultats des évaluations des risques sont-ils intégrés aux activités ?"},
		},
	},
	{
		Domain: "9. Évaluation des performances",
		Questions: []isoQuestion{
			{"9.1", "La performance du SMSI est-elle mesurée et évaluée ?"},
			{"9.2", "Des audits internes sont-ils réalisés conformément au programme d'audit ?"},
		},
	},
	{
		Domain: "10. Amélioration",
		Questions: []isoQuestion{
			{"10.1", "Les non-conformités sont-elles traitées par des actions correctives ?"},
			{"10.2", "L'amélioration continue du SMSI est-elle démontrée ?"},
		},
	},
}

func flattenISO(sections []struct {
	Domain    string
	Questions []isoQuestion
}) []domain.Measure {
	var measures []domain.Measure
	for _, section := range sections {
		for _, q := range section.Questions {
			measures = append(measures, domain.Measure{
				ID:       section.Domain + " " + q.Clause,
				Theme:    section.Domain,
				Title:    q.Question,
				Question: q.Question,
			})
		}
	}
	return measures
}

// ISOQuestionnaire returns the clause questions for an audit mode.
// The official mode prepends the management clauses to the annex A set.
func ISOQuestionnaire(mode domain.AuditMode) []domain.Measure {
	switch mode {
	case domain.AuditModeOfficial:
		return append(flattenISO(isoManagement), flattenISO(isoAnnexA)...)
	default:
		return flattenISO(isoAnnexA)
	}
}
