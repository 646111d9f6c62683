package narrate

import "fairbot/internal/models"

type sourceKind int

const (
	// sourceExplicit carries already-typed sessions.
	sourceExplicit sourceKind = iota
	// sourceDocuments wraps raw datastore documents; non-mapping records
	// are discarded silently during resolution.
	sourceDocuments
	// sourceDeferred resolves sessions from the datastore at execution
	// time, using the input date.
	sourceDeferred
)

// SessionSource tags where the narrated sessions come from. Callers that
// already hold typed sessions pass them explicitly; callers holding raw
// documents wrap them; callers with only a date defer the lookup.
type SessionSource struct {
	kind     sourceKind
	sessions []models.Session
	docs     []interface{}
	audience string
}

func ExplicitSource(sessions []models.Session) SessionSource {
	return SessionSource{kind: sourceExplicit, sessions: sessions}
}

func DocumentSource(docs []interface{}, audience string) SessionSource {
	return SessionSource{kind: sourceDocuments, docs: docs, audience: audience}
}

func DeferredSource() SessionSource {
	return SessionSource{kind: sourceDeferred}
}

type Input struct {
	Source   SessionSource
	Date     string
	Mode     models.Mode
	Question string
	Lang     string

	// IncludeChildren merges the children programme into a deferred
	// lookup, general records first, each record tagged with its origin.
	IncludeChildren bool

	// Theme selects the closing-remark pool (general, programmes,
	// enfants, editeurs). Empty means general.
	Theme string
}

type Output struct {
	Answer models.Answer `json:"answer"`

	// SessionCount is the number of sessions actually narrated.
	SessionCount int `json:"sessionCount"`
}
