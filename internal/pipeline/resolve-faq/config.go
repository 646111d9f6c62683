package resolvefaq

import "fairbot/internal/models"

// faqDatabase holds the curated entries. Order matters: entries are
// scanned first to last and the first synonym hit wins.
var faqDatabase = []models.FAQEntry{
	{
		Key:      "horaires",
		Synonyms: []string{"horaires", "heures", "ouverture", "fermeture", "hours", "schedule", "opening", "closing"},
		Responses: map[string]string{
			"fr": "La foire est ouverte tous les jours de 9h à 19h.",
			"en": "The fair is open daily from 9 AM to 7 PM.",
			"de": "Die Messe ist täglich von 9 bis 19 Uhr geöffnet.",
			"ar": "المعرض مفتوح يوميًا من الساعة 9 صباحًا حتى 7 مساءً.",
			"ja": "フェアは毎日9時から19時まで開催されています。",
			"zh": "展会每天开放时间为上午9点至晚上7点。",
		},
	},
	{
		Key:      "billets",
		Synonyms: []string{"billets", "ticket", "entree", "pass", "tickets", "entry"},
		Responses: map[string]string{
			"fr": "Les billets peuvent être achetés en ligne ou à l'entrée de la foire.",
			"en": "Tickets can be purchased online or at the entrance.",
			"de": "Tickets können online oder am Eingang gekauft werden.",
			"ar": "يمكن شراء التذاكر عبر الإنترنت أو عند مدخل المعرض.",
			"ja": "チケットはオンラインまたは会場入口で購入できます。",
			"zh": "门票可在线购买或在入口处购买。",
		},
	},
	{
		Key:      "lieu",
		Synonyms: []string{"lieu", "stand", "salle", "hall", "emplacement", "place", "location", "where"},
		Responses: map[string]string{
			"fr": "L'événement se déroule au Parc des Expositions du Kram, à Tunis.",
			"en": "The event takes place at the Kram Exhibition Center in Tunis.",
			"de": "Das Event findet im Kram Exhibition Center in Tunis statt.",
			"ar": "يُقام الحدث في مركز معارض الكرام في تونس.",
			"ja": "イベントはトゥニスのクラム展示センターで開催されます。",
			"zh": "活动在突尼斯的卡拉姆展览中心举行。",
		},
	},
	{
		Key:      "paiement",
		Synonyms: []string{"paiement", "payer", "carte", "paypal", "cash", "especes", "payment", "credit card"},
		Responses: map[string]string{
			"fr": "Les paiements sont acceptés par carte, PayPal ou en espèces.",
			"en": "Payments are accepted by credit card, PayPal, or cash.",
			"de": "Zahlungen werden per Kreditkarte, PayPal oder bar akzeptiert.",
			"ar": "يتم قبول المدفوعات بواسطة بطاقة الائتمان أو PayPal أو نقدًا.",
			"ja": "支払いはクレジットカード、PayPal、または現金で受け付けています。",
			"zh": "可通过信用卡、PayPal或现金支付。",
		},
	},
}

// contextualFallbacks answer near-topic questions that miss the curated
// entries. Keywords are stored normalized (lowercase, unaccented).
var contextualFallbacks = []struct {
	Keyword  string
	Response string
}{
	{"horaire", "Les horaires varient selon les jours. Consultez la section Programme pour plus de détails."},
	{"lieu", "Les événements ont lieu dans plusieurs halls et salles de la Maison de la Foire."},
	{"enfant", "Un espace dédié aux enfants propose diverses animations et spectacles."},
	{"editeur", "Une carte des éditeurs est disponible dans la section dédiée."},
	{"livre", "Des auteurs tunisiens et étrangers y présentent leurs œuvres."},
	{"invite", "De nombreux invités seront présents pour dédicacer leurs livres."},
}

// genericMessages is the French last-resort pool, one picked at random.
var genericMessages = []string{
	"Désolé, je n'ai pas compris votre question. Pouvez-vous la reformuler ?",
	"Je ne trouve aucune correspondance à votre demande. Essayez des mots comme 'programme', 'horaire', 'enfants' ou 'invités'.",
	"Votre question semble hors du sujet de la foire. Je peux vous aider avec les horaires, les événements ou les stands.",
	"Désolé, aucune correspondance à votre question. Essayez d'être plus précis.",
}

// fallbackTexts are the localized generic answers, keyed by language
// then verbosity mode.
var fallbackTexts = map[string]map[models.Mode]string{
	"fr": {
		models.ModeBrief:    "Je ne suis pas sûr de bien comprendre. Parlez-moi des horaires, billets ou lieux.",
		models.ModeDetailed: "Je ne suis pas certain de la réponse exacte. Essayez de reformuler votre question à propos des programmes, éditeurs ou stands.",
	},
	"en": {
		models.ModeBrief:    "I'm not sure I understand. Try asking about schedules, tickets, or locations.",
		models.ModeDetailed: "I'm not entirely sure how to answer that. Try rephrasing your question about programs, exhibitors, or event details.",
	},
	"de": {
		models.ModeBrief:    "Ich bin mir nicht sicher. Fragen Sie nach Zeiten, Tickets oder Orten.",
		models.ModeDetailed: "Bitte formulieren Sie Ihre Frage zu Programmen, Ausstellern oder Veranstaltungen neu.",
	},
	"ar": {
		models.ModeBrief:    "لست متأكدًا من الفهم. اسأل عن المواعيد أو التذاكر أو الموقع.",
		models.ModeDetailed: "يرجى إعادة صياغة سؤالك حول البرامج أو العارضين أو الفعاليات.",
	},
	"ja": {
		models.ModeBrief:    "よく分かりません。時間、チケット、場所について聞いてみてください。",
		models.ModeDetailed: "プログラムや出展者、イベントについて質問を言い換えてみてください。",
	},
	"zh": {
		models.ModeBrief:    "我不太明白。可以询问时间、门票或地点。",
		models.ModeDetailed: "请尝试重新表述有关活动、参展商或安排的问题。",
	},
}
