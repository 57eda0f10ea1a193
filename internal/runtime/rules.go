package runtime

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// sortRules returns a copy of rules stably ordered by title under the
// collation of lang. Unknown tags collate as the root locale.
func sortRules(lang string, rules []domain.Rule) []domain.Rule {
	if len(rules) == 0 {
		return nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	// Collators keep scratch buffers, so one per call.
	collator := collate.New(tag)

	out := slices.Clone(rules)
	slices.SortStableFunc(out, func(a, b domain.Rule) int {
		return collator.CompareString(a.Title, b.Title)
	})
	return out
}
