package game

import (
	"strings"
	"unicode"
)

// Curated display labels for known badge ids.
var badgeLabels = map[string]string{
	"badge_first_connection": "🛰️ First Contact",
	"badge_7_day_streak":     "🔥 Consistency Star",
	"badge_engaged":          "🤝 Engaged Networker",
	"badge_industry":         "🏆 Industry Insider",
}

// BadgeLabel resolves a badge id to a display label. Unknown ids fall back
// to a deterministic transform: underscores become spaces and each word is
// capitalized, so "badge_custom_thing" renders as "Badge Custom Thing".
func BadgeLabel(id string) string {
	if label, ok := badgeLabels[id]; ok {
		return label
	}
	words := strings.Split(id, "_")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
