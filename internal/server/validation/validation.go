// Package validation checks caller input with go-playground/validator and
// renders failures as per-field English messages.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/infixtech/ixtportal/internal/common"
)

const (
	passwordTag = "ixtpassword"
	notBlankTag = "notblank"

	// MinPasswordLength is the shortest password accepted.
	MinPasswordLength = 6
)

// Error lists the offending fields keyed by their JSON names.
// It matches common.ErrValidation with errors.Is.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", common.ErrValidation, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return common.ErrValidation }

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(passwordTag, passwordValidation)
	_ = v.RegisterValidation(notBlankTag, notBlankValidation)

	// default translations are already registered, so the register func is a noop
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{passwordTag, notBlankTag} {
		_ = v.RegisterTranslation(tag, trans, registerFn, translateCustom)
	}

	return &Validator{validate: v, translator: trans}
}

// Struct validates s according to its `validate` tags.
func (v *Validator) Struct(s any) error {
	return v.wrap(v.validate.Struct(s))
}

// Password applies the password policy on its own, for flows that take a
// bare password rather than a struct.
func (v *Validator) Password(password string) error {
	in := struct {
		Password string `json:"password" validate:"required,ixtpassword"`
	}{password}
	return v.Struct(in)
}

func (v *Validator) wrap(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	return &Error{Fields: fields}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case passwordTag:
		return fmt.Sprintf("must be at least %d characters and contain a lowercase letter, an uppercase letter and a digit", MinPasswordLength)
	case notBlankTag:
		return "this field cannot be blank"
	default:
		return ""
	}
}

func passwordValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return StrongPassword(s)
}

// StrongPassword reports whether s satisfies the password policy.
func StrongPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}
