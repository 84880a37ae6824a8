// Package langid identifies the language of free text. It is a stateless
// utility with no ties to the auth flow.
package langid

import (
	"errors"
	"strings"

	"github.com/pemistahl/lingua-go"
)

var ErrEmptyText = errors.New("empty_text")

// UnknownLanguage is reported for codes outside the display-name table and
// for text the detector cannot place.
const UnknownLanguage = "Unknown Language"

// languageNames maps ISO 639-1 codes to display names. The table is wider
// than the detector's language set; unmatched entries simply never fire.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"zh": "Chinese",
	"ja": "Japanese",
	"ru": "Russian",
	"ar": "Arabic",
	"pt": "Portuguese",
	"it": "Italian",
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"gu": "Gujarati",
	"mr": "Marathi",
	"pa": "Punjabi",
	"ur": "Urdu",
	"ko": "Korean",
	"fa": "Persian",
	"th": "Thai",
	"tr": "Turkish",
	"vi": "Vietnamese",
	"id": "Indonesian",
	"nl": "Dutch",
	"pl": "Polish",
	"uk": "Ukrainian",
	"el": "Greek",
	"he": "Hebrew",
	"sv": "Swedish",
}

// detectorLanguages is the candidate set the statistical models load for.
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Russian,
	lingua.Arabic,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Hindi,
	lingua.Bengali,
	lingua.Tamil,
	lingua.Telugu,
	lingua.Gujarati,
	lingua.Marathi,
	lingua.Punjabi,
	lingua.Urdu,
	lingua.Korean,
	lingua.Persian,
	lingua.Thai,
	lingua.Turkish,
	lingua.Vietnamese,
	lingua.Indonesian,
	lingua.Dutch,
	lingua.Polish,
	lingua.Ukrainian,
	lingua.Greek,
	lingua.Hebrew,
	lingua.Swedish,
}

type Detector struct {
	inner lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build(),
	}
}

// Result is a detection outcome: the ISO 639-1 code (empty when the text
// could not be placed) and a display name.
type Result struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (d *Detector) Detect(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}

	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return Result{Language: UnknownLanguage}, nil
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	name, mapped := languageNames[code]
	if !mapped {
		name = UnknownLanguage
	}
	return Result{Code: code, Language: name}, nil
}
