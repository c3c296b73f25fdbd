package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestRemoveString(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, RemoveString([]string{"a", "b", "c", "b"}, "b"))
	assert.Equal(t, []string{}, RemoveString([]string{}, "b"))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(16)
	assert.Len(t, s, 16)
	assert.NotEqual(t, s, RandomAlphabetString(16))
}

func TestNormalizeForSearch(t *testing.T) {
	assert.Equal(t, "ipad", NormalizeForSearch("iPad"))
	// katakana folds onto hiragana so either script matches
	assert.Equal(t, "じてんしゃ", NormalizeForSearch("ジテンシャ"))
	assert.Equal(t, "じてんしゃ", NormalizeForSearch("じてんしゃ"))
	// kanji and ascii pass through
	assert.Equal(t, "教科書 abc", NormalizeForSearch("教科書 ABC"))
	assert.Equal(t, "", NormalizeForSearch(""))
}
