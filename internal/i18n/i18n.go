// Package i18n turns the stable error keys returned by the services, and the
// validator's field errors, into display messages for a locale.
package i18n

import (
	"errors"
	"fmt"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
)

// SupportedLocales lists the locales with a message catalogue, default first.
var SupportedLocales = []string{"en", "fr"}

var catalogue = map[string]map[string]string{
	"en": {
		"MissingName":                "Please enter a name",
		"MissingPrice":               "Please enter a price",
		"PriceNotANumber":            "The value entered for the price must be a number",
		"PriceNotGreaterThanZero":    "The price must be greater than zero",
		"PriceOutOfRange":            "The price must have at most 2 decimals and be below 100000000",
		"MissingQuantity":            "Please enter a stock value",
		"StockNotAnInteger":          "The value entered for the stock must be an integer",
		"StockNotGreaterThanZero":    "The stock must be greater than zero",
		"CartEmpty":                  "Your cart is empty",
		"InsufficientStock":          "Not enough stock for this product",
		"ProductNotFound":            "This product does not exist",
		"QuantityNotGreaterThanZero": "The quantity must be greater than zero",
	},
	"fr": {
		"MissingName":                "Veuillez saisir un nom",
		"MissingPrice":               "Veuillez saisir un prix",
		"PriceNotANumber":            "La valeur saisie pour le prix doit être un nombre",
		"PriceNotGreaterThanZero":    "Le prix doit être supérieur à zéro",
		"PriceOutOfRange":            "Le prix doit avoir au plus 2 décimales et être inférieur à 100000000",
		"MissingQuantity":            "Veuillez saisir un stock",
		"StockNotAnInteger":          "La valeur saisie pour le stock doit être un entier",
		"StockNotGreaterThanZero":    "Le stock doit être supérieur à zéro",
		"CartEmpty":                  "Votre panier est vide",
		"InsufficientStock":          "Stock insuffisant pour ce produit",
		"ProductNotFound":            "Ce produit n'existe pas",
		"QuantityNotGreaterThanZero": "La quantité doit être supérieure à zéro",
	},
}

// Translator resolves messages for the supported locales.
type Translator struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
}

// New loads the catalogue and registers the validator's default field
// messages for every supported locale on validate.
func New(defaultLocale string, validate *validator.Validate) (*Translator, error) {
	fallback := localeByName(defaultLocale)
	if fallback == nil {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}
	uni := ut.New(fallback, en.New(), fr.New())

	for _, locale := range SupportedLocales {
		trans, _ := uni.GetTranslator(locale)
		for key, text := range catalogue[locale] {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("failed to add %s message %s: %w", locale, key, err)
			}
		}
		if validate == nil {
			continue
		}
		var err error
		switch locale {
		case "en":
			err = en_translations.RegisterDefaultTranslations(validate, trans)
		case "fr":
			err = fr_translations.RegisterDefaultTranslations(validate, trans)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to register %s validator messages: %w", locale, err)
		}
	}

	return &Translator{uni: uni, defaultLocale: defaultLocale}, nil
}

func localeByName(name string) locales.Translator {
	switch name {
	case "en":
		return en.New()
	case "fr":
		return fr.New()
	}
	return nil
}

func (t *Translator) translator(locale string) ut.Translator {
	if trans, found := t.uni.GetTranslator(locale); found {
		return trans
	}
	trans, _ := t.uni.GetTranslator(t.defaultLocale)
	return trans
}

// Message returns the display message of key in locale.
// Unknown keys are returned unchanged.
func (t *Translator) Message(locale, key string) string {
	msg, err := t.translator(locale).T(key)
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// FieldErrors translates validator errors into a field -> message map.
// It returns nil when err is not a validator.ValidationErrors.
func (t *Translator) FieldErrors(locale string, err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	trans := t.translator(locale)
	out := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		out[e.Field()] = e.Translate(trans)
	}
	return out
}
