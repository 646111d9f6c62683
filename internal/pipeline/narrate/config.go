package narrate

import (
	"fmt"
	"strings"

	"fairbot/internal/models"
)

// i18n holds the localized narration fragments. "{date}" and "{n}" are
// substituted by tr.
var i18n = map[string]map[string]string{
	"no_info": {
		"fr": "Aucune information disponible pour cette question.",
		"en": "No information available for this question.",
		"de": "Keine Informationen zu dieser Frage verfügbar.",
		"ar": "لا توجد معلومات متاحة لهذا السؤال.",
		"ja": "この質問に関する情報はありません。",
		"zh": "暂无关于此问题的信息。",
	},
	"intro_programme": {
		"fr": "Le programme du {date} propose {n} moment(s) fort(s).",
		"en": "The program for {date} includes {n} key event(s).",
		"de": "Das Programm vom {date} umfasst {n} Höhepunkt(e).",
		"ar": "برنامج يوم {date} يتضمن {n} فعالية.",
		"ja": "{date} のプログラムには {n} 件のイベントがあります。",
		"zh": "{date} 的活动安排包含 {n} 项活动。",
	},
}

// tr resolves an i18n key for a language, falling back to French, and
// substitutes the date and count placeholders.
func tr(key, lang, date string, n int) string {
	byLang, ok := i18n[key]
	if !ok {
		return ""
	}
	text, ok := byLang[models.NormalizeLang(lang)]
	if !ok {
		text = byLang["fr"]
	}
	text = strings.ReplaceAll(text, "{date}", date)
	text = strings.ReplaceAll(text, "{n}", fmt.Sprintf("%d", n))
	return text
}

// closingRemarks are the per-theme pools a closing line is drawn from.
var closingRemarks = map[string][]string{
	"general": {
		"Vous pouvez explorer d'autres journées du programme pour découvrir encore plus d'activités.",
		"N'hésitez pas à poser une question spécifique sur un auteur ou un atelier qui vous intéresse.",
	},
	"programmes": {
		"Vous souhaitez en savoir plus ? Demandez la description détaillée d'une session pour découvrir son contenu.",
		"Pour aller plus loin, vous pouvez poser une question sur les invités ou les thèmes abordés.",
	},
	"enfants": {
		"Pour les plus jeunes, demandez la description complète des animations afin de mieux préparer votre visite.",
		"Vous pouvez aussi explorer les activités enfants prévues les autres jours.",
	},
	"editeurs": {
		"Vous pouvez demander la liste complète des maisons d'édition par pays.",
		"Si vous cherchez un éditeur en particulier, indiquez son nom et je vous dirai où le trouver.",
	},
}
