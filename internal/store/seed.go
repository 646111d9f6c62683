package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	apperrors "fairbot/internal/common/errors"
)

// sessionSchema is the shape every seeded programme document must satisfy.
// The datastore itself stays schema-less; validation happens once at load.
const sessionSchema = `{
	"type": "object",
	"properties": {
		"date":        {"type": "string", "minLength": 1},
		"titre":       {"type": "string"},
		"nom":         {"type": "string"},
		"heure":       {"type": "string"},
		"duree":       {"type": "string"},
		"directeur":   {"type": "string"},
		"salle":       {"type": "string"},
		"acces":       {"type": "string"},
		"description": {"type": "string"},
		"invites":     {"type": "array", "items": {"type": "string"}}
	},
	"required": ["date"],
	"additionalProperties": true
}`

const exhibitorSchema = `{
	"type": "object",
	"properties": {
		"editeur": {"type": "string", "minLength": 1},
		"pays":    {"type": "string", "minLength": 1},
		"stand":   {"type": "integer"}
	},
	"required": ["editeur", "pays"],
	"additionalProperties": false
}`

// Seed validates and loads documents into a collection. Called once at
// startup; request handling never mutates the collections.
func (s *EventStore) Seed(ctx context.Context, collection, schema string, docs []map[string]interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)

	for i, doc := range docs {
		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
		if err != nil {
			return fmt.Errorf("validate seed doc %d for %s: %w", i, collection, err)
		}
		if !result.Valid() {
			msgs := ""
			for _, desc := range result.Errors() {
				msgs += desc.String() + "; "
			}
			return fmt.Errorf("seed doc %d for %s rejected: %w", i, collection, apperrors.NewSeedValidationFailedError(msgs))
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal seed doc %d for %s: %w", i, collection, err)
		}
		if err := s.rdb.RPush(ctx, collection, payload).Err(); err != nil {
			return fmt.Errorf("push seed doc %d to %s: %w", i, collection, err)
		}
	}

	s.logger.Info("collection seeded", map[string]interface{}{
		"collection": collection,
		"documents":  len(docs),
	})
	return nil
}

// SeedDefaults loads the bundled 2023 event catalog into empty collections.
// Already-populated collections are left untouched.
func (s *EventStore) SeedDefaults(ctx context.Context) error {
	type bundle struct {
		collection string
		schema     string
		docs       []map[string]interface{}
	}

	for _, b := range []bundle{
		{CollectionGeneral, sessionSchema, defaultGeneralSessions},
		{CollectionChildren, sessionSchema, defaultChildrenSessions},
		{CollectionExhibitors, exhibitorSchema, defaultExhibitors},
	} {
		n, err := s.rdb.LLen(ctx, b.collection).Result()
		if err != nil {
			return fmt.Errorf("inspect %s: %w", b.collection, err)
		}
		if n > 0 {
			continue
		}
		if err := s.Seed(ctx, b.collection, b.schema, b.docs); err != nil {
			return err
		}
	}
	return nil
}

var defaultGeneralSessions = []map[string]interface{}{
	{
		"date":        "28 Avril 2023",
		"titre":       "Cérémonie d'ouverture",
		"heure":       "09h00 - 10h30",
		"directeur":   "Comité d'organisation",
		"salle":       "Salle Baghdad",
		"acces":       "Ouvert au public",
		"description": "Ouverture officielle de la foire avec les discours inauguraux et la présentation des invités d'honneur.",
	},
	{
		"date":        "28 Avril 2023",
		"titre":       "Conférence : la littérature arabe contemporaine",
		"heure":       "11h00 - 12h30",
		"directeur":   "Samir Ben Ahmed",
		"salle":       "Salle Babel",
		"acces":       "Ouvert au public",
		"description": "Table ronde sur les courants actuels du roman arabe, avec plusieurs auteurs invités.",
		"invites":     []string{"Samir Ben Ahmed", "Leila Trabelsi"},
	},
	{
		"date":        "29 Avril 2023",
		"titre":       "Atelier d'écriture créative",
		"heure":       "10h00 - 12h00",
		"directeur":   "Nadia Khelifi",
		"salle":       "Salle Dejla & Forat",
		"acces":       "Sur inscription",
		"description": "Atelier pour développer vos compétences en écriture et partager vos textes.",
	},
	{
		"date":        "02 Mai 2023",
		"titre":       "Rencontre avec Jean Dupont",
		"heure":       "14h00 - 15h30",
		"directeur":   "Jean Dupont",
		"salle":       "Salle Babel",
		"acces":       "Ouvert au public",
		"description": "Rencontrez Jean Dupont pour parler de ses derniers romans sur l'environnement.",
		"invites":     []string{"Jean Dupont"},
	},
	{
		"date":        "02 Mai 2023",
		"titre":       "Débat : édition et traduction",
		"heure":       "16h00 - 17h30",
		"salle":       "Convention du Ministère de la Culture",
		"acces":       "Ouvert au public",
		"description": "Les défis de la traduction littéraire entre l'arabe, le français et l'anglais.",
	},
	{
		"date":      "07 Mai 2023",
		"titre":     "Cérémonie de clôture",
		"heure":     "17h00 - 19h00",
		"directeur": "Comité d'organisation",
		"salle":     "Salle Baghdad",
		"acces":     "Ouvert au public",
	},
}

var defaultChildrenSessions = []map[string]interface{}{
	{
		"date":        "28 Avril 2023",
		"titre":       "Atelier enfants - Lecture interactive",
		"heure":       "10h00 - 11h00",
		"directeur":   "Equipe animation jeunesse",
		"salle":       "Espace Enfants",
		"acces":       "Ouvert au public",
		"description": "Un atelier pour enfants où ils participent à des lectures interactives.",
	},
	{
		"date":        "29 Avril 2023",
		"titre":       "Spectacle de contes",
		"heure":       "15h00 - 16h00",
		"salle":       "Espace Enfants",
		"acces":       "Ouvert au public",
		"description": "Contes traditionnels tunisiens racontés aux plus jeunes.",
	},
	{
		"date":  "02 Mai 2023",
		"titre": "Concours de dessin",
		"heure": "10h00 - 12h00",
		"salle": "Espace Enfants",
	},
}

var defaultExhibitors = []map[string]interface{}{
	{"pays": "Jordanie", "editeur": "Association de Conservation du Quran", "stand": 205},
	{"pays": "Tunisie", "editeur": "Maison Khrif pour l'Édition", "stand": 400},
	{"pays": "Tunisie", "editeur": "Sweeps", "stand": 401},
	{"pays": "Tunisie", "editeur": "Douane Nationale des Mines", "stand": 402},
	{"pays": "Maroc", "editeur": "StepPublishing", "stand": 403},
	{"pays": "Liban", "editeur": "Maison des Nobles", "stand": 405},
	{"pays": "Liban", "editeur": "Centre des Études de l'Union Arabe", "stand": 406},
	{"pays": "Syrie", "editeur": "Maison Yesmina pour la Traduction, Édition et Distribution", "stand": 500},
	{"pays": "Egypte", "editeur": "Dar El Maaref", "stand": 501},
}
