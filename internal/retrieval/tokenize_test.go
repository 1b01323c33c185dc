package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndSplitsOnPunctuation(t *testing.T) {
	got := Tokenize("Use SQLite, not Postgres!")
	assert.Equal(t, []string{"use", "sqlite", "not", "postgres"}, got)
}

func TestTokenize_DropsSingleCharacterRuns(t *testing.T) {
	got := Tokenize("a b cd e1")
	assert.Equal(t, []string{"cd", "e1"}, got)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   "))
}

func TestUniqueTokens(t *testing.T) {
	set := uniqueTokens([]string{"foo", "bar", "foo"})
	assert.Len(t, set, 2)
	_, ok := set["foo"]
	assert.True(t, ok)
}

func TestTermFrequencies(t *testing.T) {
	tf := termFrequencies([]string{"foo", "bar", "foo"})
	assert.Equal(t, 2, tf["foo"])
	assert.Equal(t, 1, tf["bar"])
}
