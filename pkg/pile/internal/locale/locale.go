// Package locale translates the demo card titles and key hints.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var messageFiles embed.FS

// CityIDs are the message IDs of the demo cards, in display order.
var CityIDs = []string{"Tokyo", "NewYork", "SaoPaulo", "Seoul"}

// Hint message IDs.
const (
	HintPush   = "HelpPush"
	HintPop    = "HelpPop"
	HintUpdate = "HelpUpdate"
	HintReset  = "HelpReset"
	HintQuit   = "HelpQuit"
)

// Translator resolves message IDs for one preferred language.
type Translator struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// New loads the embedded message files and picks the best match for
// the given language preferences (BCP 47 tags or Accept-Language
// values). English is the fallback.
func New(langs ...string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(messageFiles, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(messageFiles, f); err != nil {
			return nil, fmt.Errorf("locale: %s: %w", path.Base(f), err)
		}
	}

	matcher := language.NewMatcher(bundle.LanguageTags())
	tag, _ := language.MatchStrings(matcher, langs...)
	base, _ := tag.Base()

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, langs...),
		tag:       language.Make(base.String()),
	}, nil
}

// Language returns the base language the translator settled on.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Text returns the translation of id, or id itself when it has none.
func (t *Translator) Text(id string) string {
	// A message missing from the chosen language still comes back in
	// English alongside a not-found error.
	s, _ := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if s == "" {
		return id
	}
	return s
}

// Cities returns the translated demo card titles.
func (t *Translator) Cities() []string {
	out := make([]string, len(CityIDs))
	for i, id := range CityIDs {
		out[i] = t.Text(id)
	}
	return out
}

// Cards returns a pluralized count of cards, such as "3 cards".
func (t *Translator) Cards(n int) string {
	s, _ := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    "CardCount",
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if s == "" {
		return fmt.Sprintf("%d", n)
	}
	return s
}
