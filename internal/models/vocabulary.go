package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultWords is the fixed 7-word study vocabulary. A deployment can
// override it with a vocabulary file, but the stimulus set and the
// analysis scripts were built around these words.
var defaultWords = []string{
	"안녕하세요",
	"고마워요",
	"미안합니다",
	"좋아요",
	"싫어요",
	"도와주세요",
	"배고파요",
}

// Vocabulary holds the target words every participant judges.
type Vocabulary struct {
	Words []string `yaml:"words"`
}

// DefaultVocabulary returns the built-in word list.
func DefaultVocabulary() *Vocabulary {
	words := make([]string, len(defaultWords))
	copy(words, defaultWords)
	return &Vocabulary{Words: words}
}

// LoadVocabulary reads and parses the vocabulary file, falling back to the
// built-in word list when the file does not exist.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultVocabulary(), nil
		}
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vocabulary YAML: %w", err)
	}
	if len(vocab.Words) == 0 {
		return DefaultVocabulary(), nil
	}
	return &vocab, nil
}

// Size is the number of words, and therefore the number of symbol
// preference rows expected per participant.
func (v *Vocabulary) Size() int {
	return len(v.Words)
}
