// Package i18n renders the locale-dependent parts of the feed: post
// timestamps and the validation message of the comment form.
package i18n

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	pt_BR_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/pkg/errors"
)

const (
	PortugueseBR = "pt_BR"
	English      = "en"
)

// Locale formats dates and messages for one display language.
type Locale struct {
	tag        string
	calendar   locales.Translator
	trans      ut.Translator
	absolute   func(cal locales.Translator, t time.Time) string
	magnitudes []humanize.RelTimeMagnitude
	past       string
	future     string
	required   string
	register   func(v *validator.Validate, trans ut.Translator) error
}

// New returns the locale for tag. Supported tags are "pt_BR" and "en".
func New(tag string) (*Locale, error) {
	var l *Locale
	switch tag {
	case PortugueseBR:
		l = &Locale{
			calendar:   pt_BR.New(),
			absolute:   absolutePortuguese,
			magnitudes: portugueseMagnitudes,
			past:       "há",
			future:     "em",
			required:   "Esse campo é obrigatório!!!",
			register:   pt_BR_translations.RegisterDefaultTranslations,
		}
	case English:
		l = &Locale{
			calendar: en.New(),
			absolute: absoluteEnglish,
			past:     "ago",
			future:   "from now",
			required: "This field is required",
			register: en_translations.RegisterDefaultTranslations,
		}
	default:
		return nil, fmt.Errorf("unsupported locale %q", tag)
	}
	l.tag = tag

	uni := ut.New(l.calendar, l.calendar)
	trans, found := uni.GetTranslator(l.calendar.Locale())
	if !found {
		return nil, fmt.Errorf("no translator for locale %q", tag)
	}
	l.trans = trans
	return l, nil
}

// MustNew is New for locales known at compile time.
func MustNew(tag string) *Locale {
	l, err := New(tag)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag returns the locale identifier.
func (l *Locale) Tag() string {
	return l.tag
}

// Absolute renders t in the locale's date and time convention.
func (l *Locale) Absolute(t time.Time) string {
	return l.absolute(l.calendar, t)
}

// Relative renders the distance between then and now as a "time ago" phrase.
func (l *Locale) Relative(then, now time.Time) string {
	if l.magnitudes == nil {
		return humanize.RelTime(then, now, l.past, l.future)
	}
	return humanize.CustomRelTime(then, now, l.past, l.future, l.magnitudes)
}

// FieldRequired is the message shown when the comment field is submitted empty.
func (l *Locale) FieldRequired() string {
	return l.required
}

// NewValidator returns a validator whose errors translate into this locale,
// with the "required" tag overridden by FieldRequired.
func (l *Locale) NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := l.register(v, l.trans); err != nil {
		return nil, errors.Wrap(err, "register default translations")
	}
	err := v.RegisterTranslation("required", l.trans, func(trans ut.Translator) error {
		return trans.Add("required", l.required, true)
	}, func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T("required", fe.Field())
		if err != nil {
			return l.required
		}
		return msg
	})
	if err != nil {
		return nil, errors.Wrap(err, "register required translation")
	}
	return v, nil
}

// Translate turns a validation error into a user-facing message. Errors that
// did not come from the validator are returned verbatim.
func (l *Locale) Translate(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Translate(l.trans)
	}
	return err.Error()
}
