package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmotionCatalog(t *testing.T) {
	expected := []string{"love", "wave", "kiss", "hug", "fire", "sparkle", "bunny", "moon"}
	assert.ElementsMatch(t, expected, EmotionTags())

	for _, tag := range expected {
		e, ok := LookupEmotion(tag)
		require.True(t, ok, tag)
		assert.Equal(t, tag, e.Tag)
		assert.NotEmpty(t, e.Emoji)
		assert.NotEmpty(t, e.Messages)
	}
}

func TestValidEmotionRejectsUnknown(t *testing.T) {
	assert.False(t, ValidEmotion(""))
	assert.False(t, ValidEmotion("anger"))
	assert.False(t, ValidEmotion("LOVE"))
	assert.True(t, ValidEmotion("love"))
}

func TestRandomMessageStaysInCatalog(t *testing.T) {
	e, ok := LookupEmotion("love")
	require.True(t, ok)

	for i := 0; i < 50; i++ {
		assert.Contains(t, e.Messages, e.RandomMessage())
	}
}
