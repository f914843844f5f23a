package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/BruksfildServices01/clients-api/internal/validators"
)

// Validator checks decoded request values and reports violations as English
// sentences keyed by the JSON field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() (*Validator, error) {
	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag:     validators.StrongPasswordTag,
			fn:      validators.StrongPassword,
			message: "{0} must include at least one number, one upper case letter, one lower case letter and one special character",
		},
		{
			tag:     validators.PasswordBytesTag,
			fn:      validators.PasswordBytes,
			message: "{0} must be at most " + strconv.Itoa(validators.MaxPasswordBytes) + " bytes long",
		},
	}
	for _, rule := range rules {
		if err := registerRule(v, trans, rule.tag, rule.fn, rule.message); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: v, trans: trans}, nil
}

func registerRule(v *validator.Validate, trans ut.Translator, tag string, fn validator.Func, message string) error {
	if err := v.RegisterValidation(tag, fn); err != nil {
		return err
	}
	return v.RegisterTranslation(
		tag,
		trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(fe.Tag(), fe.Field())
			return msg
		},
	)
}

// MustNew is New for wiring code that cannot recover from a bad setup.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// fieldErrors validates s and returns the first message for every failing
// field, keyed by the JSON field name.
func (v *Validator) fieldErrors(s any) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	msgs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := msgs[fe.Field()]; !seen {
			msgs[fe.Field()] = fe.Translate(v.trans)
		}
	}
	return msgs, nil
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
