package models

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	id "passport/pkg/domain"
	dErrors "passport/pkg/domain-errors"
)

var personNamePattern = regexp.MustCompile(`^[a-zA-Z.-]+$`)

// nameRules is "required,personname"; personname allows letters, periods and
// hyphens only.
const nameRules = "required,personname"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Builder collects the fields of a passport and validates them on Build.
// The four constructor arguments are required; the middle name is optional.
type Builder struct {
	firstName   string
	middleName  string
	lastName    string
	dateOfBirth time.Time
	nationality string
}

func NewBuilder(firstName, lastName string, dateOfBirth time.Time, nationality string) *Builder {
	return &Builder{
		firstName:   firstName,
		lastName:    lastName,
		dateOfBirth: dateOfBirth,
		nationality: nationality,
	}
}

// MiddleName sets the optional middle name.
func (b *Builder) MiddleName(middleName string) *Builder {
	b.middleName = middleName
	return b
}

// Build validates the collected fields against now and returns a new
// passport with a fresh ID and an empty stamp log.
//
// Validation is fail-fast in this order: first name, last name, date of
// birth. Every failure is CodeInvalidInput and no partial record is returned.
// The builder itself is not modified, so it can be corrected and rebuilt.
func (b *Builder) Build(now time.Time) (*Passport, error) {
	firstName := strings.TrimSpace(b.firstName)
	if err := validate.Var(firstName, nameRules); err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid first name format")
	}
	lastName := strings.TrimSpace(b.lastName)
	if err := validate.Var(lastName, nameRules); err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid last name format")
	}
	dob := dateOf(b.dateOfBirth)
	if dob.After(dateOf(now)) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "date of birth cannot be in the future")
	}

	middleName := strings.TrimSpace(b.middleName)
	if middleName != "" {
		middleName = capitalize(middleName)
	}

	return &Passport{
		id:             id.NewPassportID(),
		firstName:      capitalize(firstName),
		middleName:     middleName,
		lastName:       capitalize(lastName),
		dateOfBirth:    dob,
		nationality:    b.nationality,
		expirationDate: addYears(dob, ValidityYears),
	}, nil
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}
