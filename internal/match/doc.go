// Package match maps template field names onto canonical record paths.
//
// Each stage is a pure function so it can be tested on its own:
//   - Normalize: lowercase tokens, compact form, party suffix
//   - AllowedCategories, Excluded, Barred: hard filters applied before scoring
//   - Score: alias tiers 100/90/70/50/30
//   - SelectBest: single winner above the entry's minimum
//
// AutoMap chains the stages over a field list. Levenshtein distance is used
// only for suggestions on fields that stay unmapped.
package match
