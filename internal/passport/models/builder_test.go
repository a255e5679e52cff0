package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "passport/pkg/domain-errors"
)

var today = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

func dob(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBuild_Success(t *testing.T) {
	p, err := NewBuilder("jane", "DOE", dob(1995, time.May, 23), "British").Build(today)
	require.NoError(t, err)

	assert.False(t, p.ID().IsNil())
	assert.Equal(t, "Jane", p.FirstName())
	assert.Equal(t, "Doe", p.LastName())
	assert.Empty(t, p.MiddleName())
	assert.Equal(t, "British", p.Nationality())
	assert.Equal(t, dob(1995, time.May, 23), p.DateOfBirth())
	assert.Equal(t, dob(2005, time.May, 23), p.ExpirationDate())
	assert.Empty(t, p.Stamps())
	assert.Empty(t, p.StampLog())
}

func TestBuild_Capitalization(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  string
	}{
		{"mixed case", "jOHN", "John"},
		{"all upper", "MARY", "Mary"},
		{"hyphenated", "anne-marie", "Anne-marie"},
		{"initial with period", "j.", "J."},
		{"surrounding whitespace", "  peter  ", "Peter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewBuilder(tt.first, "Smith", dob(1980, time.January, 1), "Irish").Build(today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.FirstName())
		})
	}
}

func TestBuild_MiddleName(t *testing.T) {
	t.Run("present middle name is capitalized", func(t *testing.T) {
		p, err := NewBuilder("john", "doe", dob(1990, time.January, 15), "American").
			MiddleName("fITZGERALD").
			Build(today)
		require.NoError(t, err)
		assert.Equal(t, "Fitzgerald", p.MiddleName())
		assert.Equal(t, "John Fitzgerald Doe", p.FullName())
	})

	t.Run("absent middle name stays empty", func(t *testing.T) {
		p, err := NewBuilder("john", "doe", dob(1990, time.January, 15), "American").Build(today)
		require.NoError(t, err)
		assert.Equal(t, "", p.MiddleName())
		assert.Equal(t, "John Doe", p.FullName())
	})
}

func TestBuild_ValidationFailures(t *testing.T) {
	valid := dob(2000, time.January, 1)
	tests := []struct {
		name    string
		first   string
		last    string
		dob     time.Time
		wantMsg string
	}{
		{"empty first name", "", "Valid", valid, "invalid first name format"},
		{"spaces-only first name", "   ", "Valid", valid, "invalid first name format"},
		{"digits in first name", "J0hn", "Valid", valid, "invalid first name format"},
		{"inner space in first name", "Mary Ann", "Valid", valid, "invalid first name format"},
		{"empty last name", "Valid", "", valid, "invalid last name format"},
		{"spaces-only last name", "Valid", "  ", valid, "invalid last name format"},
		{"digits in last name", "Valid", "Sm1th", valid, "invalid last name format"},
		{"future date of birth", "Valid", "Valid", today.AddDate(0, 0, 1), "date of birth cannot be in the future"},
		{"far future date of birth", "Valid", "Valid", today.AddDate(1, 0, 0), "date of birth cannot be in the future"},
		{"first name reported before last name", "1", "2", valid, "invalid first name format"},
		{"names reported before date", "Valid", "2", today.AddDate(1, 0, 0), "invalid last name format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewBuilder(tt.first, tt.last, tt.dob, "Nowhere").Build(today)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestBuild_DateOfBirthBoundary(t *testing.T) {
	t.Run("born today is accepted", func(t *testing.T) {
		_, err := NewBuilder("Baby", "New", today, "Earth").Build(today)
		require.NoError(t, err)
	})

	t.Run("later on the same day is still today", func(t *testing.T) {
		laterToday := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC)
		_, err := NewBuilder("Baby", "New", laterToday, "Earth").Build(today)
		require.NoError(t, err)
	})

	t.Run("evaluated against the supplied now", func(t *testing.T) {
		b := NewBuilder("Baby", "New", dob(2024, time.June, 16), "Earth")
		_, err := b.Build(today)
		require.Error(t, err)

		_, err = b.Build(today.AddDate(0, 0, 1))
		require.NoError(t, err)
	})
}

func TestBuild_LeapDayExpiration(t *testing.T) {
	p, err := NewBuilder("Leap", "Year", dob(2000, time.February, 29), "Calendar").Build(today)
	require.NoError(t, err)
	assert.Equal(t, dob(2010, time.February, 28), p.ExpirationDate())
}

func TestBuild_FreshIDs(t *testing.T) {
	b := NewBuilder("Same", "Person", dob(1970, time.July, 4), "Repeat")
	first, err := b.Build(today)
	require.NoError(t, err)
	second, err := b.Build(today)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.True(t, first.Equal(second))
}
