package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is one of the fixed challenge themes. Each category has its own
// daily challenge, submission slot, vote quota and leaderboard.
type Category string

const (
	CategoryTinyStory        Category = "tiny_story"
	CategorySceneDescription Category = "scene_description"
	CategorySpecificWord     Category = "specific_word"
	CategoryRhymingPhrase    Category = "rhyming_phrase"
	CategoryEmotion          Category = "emotion"
	CategoryDialogue         Category = "dialogue"
	CategoryIdiom            Category = "idiom"
	CategorySlogan           Category = "slogan"
	CategoryMovieQuote       Category = "movie_quote"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTinyStory,
	CategorySceneDescription,
	CategorySpecificWord,
	CategoryRhymingPhrase,
	CategoryEmotion,
	CategoryDialogue,
	CategoryIdiom,
	CategorySlogan,
	CategoryMovieQuote,
}

// ParseCategory normalizes s and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// DisplayName renders "tiny_story" as "Tiny Story".
func (c Category) DisplayName() string {
	// Casers carry state and must not be shared across goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

func (c Category) String() string { return string(c) }
