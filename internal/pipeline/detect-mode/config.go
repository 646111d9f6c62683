// internal/pipeline/detect-mode/config.go
package detectmode

// Hint phrases, matched as substrings of the normalized question so
// inflected forms still hit. Listed order is the tie-break order: detailed
// hints win over brief hints, and both win over the length heuristics.
var detailedHints = []string{
	"detail", "liste complete", "programme complet", "complet", "concretes",
	"elaborez", "en profondeur", "montre-moi", "affiche-moi", "tous les",
	"toutes les", "enumere", "decris", "listez", "ne manquez aucun detail",
	"precises", "donne-moi", "afficher tout", "tous les jours",
	"explique-moi", "plan parfait", "toute la ",
}

var briefHints = []string{
	"brievement", "resume", "en bref", "juste une idee", "simplement",
	"a-peu-pres", "quelques", "un peu", "jeter un coup d'oeil", "un apercu",
	"juste", "seulement", "version courte", "sois concis", "soyez bref",
	"vite", "rapidement", "vite fait",
}

const (
	briefWordLimit    = 6
	detailedWordFloor = 12
)
