package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Plural message keys; their text lives here because x/text selects the
// form from the argument at format time.
const (
	KeyActiveApiaries = "card.active_count"
	KeyInApiaries     = "card.in_apiaries"
	KeyQueenAge       = "hive.queen_age"
	KeyExtractions    = "harvest.extractions"
)

func registerPlurals(cat *catalog.Builder, tag language.Tag) error {
	base, _ := tag.Base()
	var msgs map[string]catalog.Message
	switch base.String() {
	case "ru":
		msgs = map[string]catalog.Message{
			KeyActiveApiaries: plural.Selectf(1, "%d",
				plural.One, "%d активная",
				plural.Few, "%d активных",
				plural.Other, "%d активных"),
			KeyInApiaries: plural.Selectf(1, "%d",
				plural.One, "в %d пасеке",
				plural.Other, "в %d пасеках"),
			KeyQueenAge: plural.Selectf(1, "%d",
				plural.One, "Матка: %d год",
				plural.Few, "Матка: %d года",
				plural.Other, "Матка: %d лет"),
			KeyExtractions: plural.Selectf(1, "%d",
				plural.One, "(%d откачка)",
				plural.Few, "(%d откачки)",
				plural.Other, "(%d откачек)"),
		}
	default:
		msgs = map[string]catalog.Message{
			KeyActiveApiaries: plural.Selectf(1, "%d",
				plural.Other, "%d active"),
			KeyInApiaries: plural.Selectf(1, "%d",
				plural.One, "in %d apiary",
				plural.Other, "in %d apiaries"),
			KeyQueenAge: plural.Selectf(1, "%d",
				plural.One, "Queen: %d year",
				plural.Other, "Queen: %d years"),
			KeyExtractions: plural.Selectf(1, "%d",
				plural.One, "(%d extraction)",
				plural.Other, "(%d extractions)"),
		}
	}
	for key, msg := range msgs {
		if err := cat.Set(tag, key, msg); err != nil {
			return err
		}
	}
	return nil
}
