// Package validate holds the field-level checks every student record must
// pass before it is written to a store.
//
// The checks exist in two shapes:
//
//   - plain boolean functions (ID, Age, Gender, Grade) with no side effects;
//   - the same functions registered as go-playground/validator tags
//     (student_id, student_age, student_gender, student_grade) so a decoded
//     types.Student can be checked with a single Struct call.
//
// Record turns the first violated rule into a *FieldError that callers can
// show to the user as-is.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
)

// Tags registered on the shared validator instance.
const (
	TagID     = "student_id"
	TagAge    = "student_age"
	TagGender = "student_gender"
	TagGrade  = "student_grade"
)

// Genders is the fixed gender enumeration, in canonical capitalisation.
var Genders = []string{"Male", "Female", "Others"}

var (
	idPattern    = regexp.MustCompile(`^[0-9]{3}$`)
	agePattern   = regexp.MustCompile(`^[0-9]{2}$`)
	gradePattern = regexp.MustCompile(`^[A-Z]$`)
)

// ID reports whether s is exactly three decimal digits.
func ID(s string) bool {
	return idPattern.MatchString(s)
}

// Age reports whether s is exactly two decimal digits.
func Age(s string) bool {
	return agePattern.MatchString(s)
}

// Gender reports whether s names a member of Genders, ignoring case.
func Gender(s string) bool {
	_, ok := CanonicalGender(s)
	return ok
}

// Grade reports whether s is a single uppercase ASCII letter.
func Grade(s string) bool {
	return gradePattern.MatchString(s)
}

// CanonicalGender returns the Genders member equal to s ignoring case.
func CanonicalGender(s string) (string, bool) {
	for _, g := range Genders {
		if strings.EqualFold(g, s) {
			return g, true
		}
	}
	return "", false
}

// ErrInvalid is the kind shared by every *FieldError.
var ErrInvalid = errors.New("invalid field")

// FieldError names the field that failed validation and why.
type FieldError struct {
	Field  string // column name, e.g. "Age"
	Reason string // user-facing sentence
}

func (e *FieldError) Error() string { return e.Reason }

// Unwrap lets errors.Is(err, ErrInvalid) match any field error.
func (e *FieldError) Unwrap() error { return ErrInvalid }

var messages = map[string]string{
	types.ColumnID:     "student ID must be 3 digits only",
	types.ColumnAge:    "age must be a 2 digit number",
	types.ColumnGender: "gender must be Male, Female, or Others",
	types.ColumnGrade:  "grade must be a single uppercase letter",
}

// Message returns the user-facing sentence for a failed column, or a
// generic one for columns without a rule.
func Message(column string) string {
	if m, ok := messages[column]; ok {
		return m
	}
	return "field " + column + " is invalid"
}

var instance = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New()

	rules := map[string]func(string) bool{
		TagID:     ID,
		TagAge:    Age,
		TagGender: Gender,
		TagGrade:  Grade,
	}
	for tag, fn := range rules {
		// Registration only fails for an empty tag or nil func.
		if err := vd.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}

	return vd
}

// Struct runs every registered rule on s. A non-nil error is always
// validator.ValidationErrors, one entry per failing field in declaration
// order.
func Struct(s types.Student) error {
	return instance.Struct(s)
}

// Record checks s and returns the first violated rule as a *FieldError,
// or nil when every field is valid.
func Record(s types.Student) error {
	err := Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	field := verrs[0].Field()
	return &FieldError{Field: field, Reason: Message(field)}
}

// Normalize returns s with Gender in canonical capitalisation. It is
// applied after Record succeeds, just before a write.
func Normalize(s types.Student) types.Student {
	if g, ok := CanonicalGender(s.Gender); ok {
		s.Gender = g
	}
	return s
}
