package models

import "strings"

// Audience display tags. The merge of the two programme collections keeps
// find order (general before children) and tags each record with its origin.
const (
	AudienceGeneral  = "Tous publics"
	AudienceChildren = "Enfants"
)

// Textual defaults for absent optional fields. Missing data degrades to
// these, it never fails a request.
const (
	DefaultTitle  = "Sans titre"
	DefaultTime   = "Heure inconnue"
	DefaultRoom   = "Salle inconnue"
	DefaultHost   = "Sans directeur"
	DefaultAccess = "Réservée aux invités"
)

// Session is one programme record. The datastore is schema-less; fields not
// present in the source document carry the textual defaults above.
type Session struct {
	Date        string `json:"date"`
	Title       string `json:"titre"`
	Time        string `json:"heure"`
	Host        string `json:"directeur,omitempty"`
	Room        string `json:"salle"`
	Access      string `json:"acces,omitempty"`
	Description string `json:"description,omitempty"`
	Audience    string `json:"public"`
}

// SessionFromDocument converts a raw datastore document into a Session,
// applying the textual defaults. Returns false when doc is not a well-formed
// mapping; callers discard those records silently.
func SessionFromDocument(doc interface{}, audience string) (Session, bool) {
	m, ok := doc.(map[string]interface{})
	if !ok || m == nil {
		return Session{}, false
	}
	s := Session{
		Date:        docString(m, "date", ""),
		Title:       docString(m, "titre", DefaultTitle),
		Time:        docString(m, "heure", docString(m, "duree", DefaultTime)),
		Host:        docString(m, "directeur", DefaultHost),
		Room:        docString(m, "salle", DefaultRoom),
		Access:      docString(m, "acces", DefaultAccess),
		Description: docString(m, "description", ""),
		Audience:    audience,
	}
	if s.Title == DefaultTitle {
		// Some documents use "nom" instead of "titre".
		s.Title = docString(m, "nom", DefaultTitle)
	}
	return s, true
}

func docString(m map[string]interface{}, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	str, ok := v.(string)
	if !ok {
		return fallback
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return fallback
	}
	return str
}

// Exhibitor is one publishing-house record from the exhibitor collection.
type Exhibitor struct {
	Name    string `json:"editeur"`
	Country string `json:"pays"`
	Stand   int    `json:"stand"`
}
