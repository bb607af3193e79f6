package validate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudent() types.Student {
	return types.Student{
		ID:     "101",
		Name:   "Asha",
		Age:    "19",
		Gender: "Female",
		Course: "Math",
		Grade:  "A",
	}
}

func TestID(t *testing.T) {
	for i := 0; i < 1000; i++ {
		s := fmt.Sprintf("%03d", i)
		assert.True(t, ID(s), s)
	}

	for _, s := range []string{"", "1", "12", "1234", "abc", "12a", " 12", "١٢٣"} {
		assert.False(t, ID(s), s)
	}
}

func TestAge(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := fmt.Sprintf("%02d", i)
		assert.True(t, Age(s), s)
	}

	for _, s := range []string{"5", "abc", "123", "", "1a", "-1"} {
		assert.False(t, Age(s), s)
	}
}

func TestGender(t *testing.T) {
	for _, s := range []string{"Male", "male", "FEMALE", "Others", "others"} {
		assert.True(t, Gender(s), s)
	}
	for _, s := range []string{"", "Other", "M", "unknown"} {
		assert.False(t, Gender(s), s)
	}

	g, ok := CanonicalGender("oThErS")
	require.True(t, ok)
	assert.Equal(t, "Others", g)
}

func TestGrade(t *testing.T) {
	assert.True(t, Grade("A"))
	assert.True(t, Grade("Z"))
	assert.False(t, Grade("a"))
	assert.False(t, Grade("AB"))
	assert.False(t, Grade(""))
	assert.False(t, Grade("1"))
	assert.False(t, Grade("É"))
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(validStudent()))

	s := validStudent()
	s.ID = "1"
	s.Grade = "b"

	err := Struct(s)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "ID", verrs[0].Field())
	assert.Equal(t, TagID, verrs[0].Tag())
	assert.Equal(t, "Grade", verrs[1].Field())
	assert.Equal(t, TagGrade, verrs[1].Tag())
}

func TestRecord(t *testing.T) {
	assert.NoError(t, Record(validStudent()))

	tests := []struct {
		name   string
		mutate func(*types.Student)
		field  string
	}{
		{"bad id", func(s *types.Student) { s.ID = "10" }, types.ColumnID},
		{"bad age", func(s *types.Student) { s.Age = "5" }, types.ColumnAge},
		{"bad gender", func(s *types.Student) { s.Gender = "Other" }, types.ColumnGender},
		{"bad grade", func(s *types.Student) { s.Grade = "a" }, types.ColumnGrade},
		{"first failure wins", func(s *types.Student) { s.Age = "abc"; s.Grade = "" }, types.ColumnAge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mutate(&s)

			err := Record(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, Message(tt.field), fe.Error())
		})
	}
}

func TestRecord_FreeFormFields(t *testing.T) {
	s := validStudent()
	s.Name = ""
	s.Course = ""
	assert.NoError(t, Record(s))
}

func TestNormalize(t *testing.T) {
	s := validStudent()
	s.Gender = "male"
	assert.Equal(t, "Male", Normalize(s).Gender)
}
