package game

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

// pickWords selects the crew word, the impostor word and the category name
// for a new round.
//
// From round 3 on, the draw is biased towards secret words that have a
// related partner: up to wordAttempts redraws are tried before settling
// for an unrelated word and the bare impostor marker.
func (e *Engine) pickWords() (secret, impostor, category string) {
	if len(e.categories) == 0 {
		secret = e.pickUnused(fallbackWords)
		e.usedWords[secret] = true
		return secret, NoRelatedWord, ""
	}

	var lastWord string
	var lastCat *Category
	for attempt := 0; attempt < wordAttempts; attempt++ {
		cat := e.categories[e.rng.Intn(len(e.categories))]
		word := e.drawWord(cat)
		if word == "" {
			continue // empty category
		}
		if e.round < relatedFromRound {
			e.commitWord(word, cat)
			return word, NoRelatedWord, cat.Name
		}
		if related, ok := e.related(word, cat, e.categories, e.usedWords, e.rng); ok {
			e.commitWord(word, cat)
			return word, related, cat.Name
		}
		lastWord, lastCat = word, cat
	}

	if lastWord == "" {
		// Every configured category was empty.
		lastWord = e.pickUnused(fallbackWords)
	}
	e.commitWord(lastWord, lastCat)
	name := ""
	if lastCat != nil {
		name = lastCat.Name
	}
	return lastWord, NoRelatedWord, name
}

// drawWord picks a candidate word from a category. Mixed categories flip a
// coin between the loose-word pool and a pair's crew word.
func (e *Engine) drawWord(cat *Category) string {
	if cat.Type == CategoryMixed && len(cat.Pairs) > 0 {
		if len(cat.Words) == 0 || e.rng.Intn(2) == 0 {
			words := make([]string, len(cat.Pairs))
			for i, p := range cat.Pairs {
				words[i] = p.Word
			}
			return e.pickUnused(words)
		}
	}
	return e.pickUnused(cat.Words)
}

// pickUnused draws uniformly among words not yet used this game. When the
// whole pool has been used it is reset and drawn from again.
func (e *Engine) pickUnused(words []string) string {
	if len(words) == 0 {
		return ""
	}
	unused := make([]string, 0, len(words))
	for _, w := range words {
		if !e.usedWords[w] {
			unused = append(unused, w)
		}
	}
	if len(unused) == 0 {
		for _, w := range words {
			delete(e.usedWords, w)
		}
		unused = words
	}
	return unused[e.rng.Intn(len(unused))]
}

// commitWord marks the selected word as used and records the category hit.
func (e *Engine) commitWord(word string, cat *Category) {
	e.usedWords[word] = true
	if cat != nil {
		cat.UseCount++
		cat.LastUsed = time.Now()
	}
}

// RelatedByCategory is the default related-word strategy: the exact pair
// partner first, then another unused word from the same single-type
// category, then a weak last resort of a word with the same length or
// same first letter from any other category.
func RelatedByCategory(secret string, current *Category, all []*Category, used map[string]bool, rng *rand.Rand) (string, bool) {
	if current != nil {
		for _, p := range current.Pairs {
			if p.Word == secret {
				return p.Related, true
			}
			if p.Related == secret {
				return p.Word, true
			}
		}
		if current.Type == CategorySingle {
			candidates := make([]string, 0, len(current.Words))
			for _, w := range current.Words {
				if w != secret && !used[w] {
					candidates = append(candidates, w)
				}
			}
			if len(candidates) > 0 {
				return candidates[rng.Intn(len(candidates))], true
			}
		}
	}

	var lookalikes []string
	for _, cat := range all {
		if cat == current {
			continue
		}
		for _, w := range cat.Words {
			if w != secret && looksAlike(w, secret) {
				lookalikes = append(lookalikes, w)
			}
		}
	}
	if len(lookalikes) > 0 {
		return lookalikes[rng.Intn(len(lookalikes))], true
	}
	return "", false
}

// looksAlike matches words of the same rune length or the same first
// letter, ignoring case.
func looksAlike(a, b string) bool {
	if utf8.RuneCountInString(a) == utf8.RuneCountInString(b) {
		return true
	}
	ra, _ := utf8.DecodeRuneInString(a)
	rb, _ := utf8.DecodeRuneInString(b)
	return strings.EqualFold(string(ra), string(rb))
}
