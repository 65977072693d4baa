package relay

import (
	"math/rand"
)

const notificationIcon = "/assets/icons/icon-192x192.png"

// Emotion is one entry of the tap catalog. Messages holds the phrasing
// variants the notification body is picked from.
type Emotion struct {
	Tag      string
	Emoji    string
	Messages []string
}

var emotionCatalog = map[string]Emotion{
	"love": {
		Tag:   "love",
		Emoji: "❤️",
		Messages: []string{
			"is thinking of you",
			"sends you all their love",
			"misses you",
		},
	},
	"wave": {
		Tag:   "wave",
		Emoji: "\U0001f44b",
		Messages: []string{
			"says hi",
			"is waving at you",
			"wants your attention",
		},
	},
	"kiss": {
		Tag:   "kiss",
		Emoji: "\U0001f618",
		Messages: []string{
			"blows you a kiss",
			"sends you a kiss",
		},
	},
	"hug": {
		Tag:   "hug",
		Emoji: "\U0001f917",
		Messages: []string{
			"sends you a big hug",
			"wants to hug you",
		},
	},
	"fire": {
		Tag:   "fire",
		Emoji: "\U0001f525",
		Messages: []string{
			"thinks you are on fire",
			"is hyped about you",
		},
	},
	"sparkle": {
		Tag:   "sparkle",
		Emoji: "✨",
		Messages: []string{
			"thinks you sparkle",
			"sends you good vibes",
		},
	},
	"bunny": {
		Tag:   "bunny",
		Emoji: "\U0001f430",
		Messages: []string{
			"sends you a bunny",
			"hops over to say hi",
		},
	},
	"moon": {
		Tag:   "moon",
		Emoji: "\U0001f319",
		Messages: []string{
			"says goodnight",
			"is dreaming of you",
		},
	},
}

// LookupEmotion returns the catalog entry for a tag.
func LookupEmotion(tag string) (Emotion, bool) {
	e, ok := emotionCatalog[tag]
	return e, ok
}

// ValidEmotion reports whether the tag names a catalog entry. Free-form tags
// are rejected so the client icon set stays authoritative.
func ValidEmotion(tag string) bool {
	_, ok := emotionCatalog[tag]
	return ok
}

// RandomMessage picks one phrasing variant for the emotion.
func (e Emotion) RandomMessage() string {
	return e.Messages[rand.Intn(len(e.Messages))]
}

// EmotionTags lists the catalog tags. Used by validation messages and tests.
func EmotionTags() []string {
	tags := make([]string, 0, len(emotionCatalog))
	for tag := range emotionCatalog {
		tags = append(tags, tag)
	}
	return tags
}
