package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"

	"github.com/fernandobatels/blitz-money/utils"
)

const DefaultLang = "en_US"

//go:embed langs/*.yaml
var langs embed.FS

// Texts gives the messages and number format of one language.
type Texts struct {
	Lang    string
	keys    map[string]string
	printer *message.Printer
}

func readLang(lang string) (map[string]string, error) {
	content, err := langs.ReadFile("langs/" + lang + ".yaml")
	if err != nil {
		return nil, err
	}

	texts := map[string]string{}
	err = yaml.Unmarshal(content, &texts)
	if err != nil {
		return nil, fmt.Errorf("decode lang '%s': %w", lang, err)
	}

	return texts, nil
}

// Available lists the embedded languages.
func Available() []string {
	entries, _ := langs.ReadDir("langs")

	found := map[string]bool{}
	for _, entry := range entries {
		found[strings.TrimSuffix(entry.Name(), ".yaml")] = true
	}

	return utils.GetKeys(found)
}

func tagOf(lang string) language.Tag {
	return language.Make(strings.ReplaceAll(lang, "_", "-"))
}

// New loads lang, or DefaultLang when lang is not available. Messages missing
// in lang come from DefaultLang.
func New(lang string) (*Texts, error) {
	// en_US.UTF-8 as found in LANG
	lang, _, _ = strings.Cut(lang, ".")

	defaults, err := readLang(DefaultLang)
	if err != nil {
		return nil, err
	}

	texts, err := readLang(lang)
	if err != nil {
		lang = DefaultLang
		texts = defaults
	}

	defaultTag := tagOf(DefaultLang)
	tag := tagOf(lang)

	builder := catalog.NewBuilder(catalog.Fallback(defaultTag))
	keys := map[string]string{}

	for key, msg := range defaults {
		keys[key] = msg
		err := builder.SetString(defaultTag, key, msg)
		if err != nil {
			return nil, err
		}
	}

	for key, msg := range texts {
		keys[key] = msg
		err := builder.SetString(tag, key, msg)
		if err != nil {
			return nil, err
		}
	}

	return &Texts{
		Lang:    lang,
		keys:    keys,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Text returns the message of key, or key itself when there is none.
func (t *Texts) Text(key string) string {
	if _, exists := t.keys[key]; !exists {
		return key
	}
	return t.printer.Sprintf(key)
}

func (t *Texts) Textf(key string, args ...interface{}) string {
	if _, exists := t.keys[key]; !exists {
		return key + " " + fmt.Sprint(args...)
	}
	return t.printer.Sprintf(key, args...)
}

// Money formats value with two decimals using the separators of the language.
func (t *Texts) Money(currency string, value decimal.Decimal) string {
	formatted := t.printer.Sprint(number.Decimal(value.InexactFloat64(), number.Scale(2)))
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}
