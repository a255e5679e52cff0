package models

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "passport/pkg/domain-errors"
)

func mustBuild(t *testing.T, b *Builder) *Passport {
	t.Helper()
	p, err := b.Build(today)
	require.NoError(t, err)
	return p
}

func TestAddStamp(t *testing.T) {
	t.Run("trims and joins in insertion order", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Stamp", "Collector", dob(1992, time.November, 30), "Wanderer"))

		require.NoError(t, p.AddStamp("Brazil"))
		require.NoError(t, p.AddStamp("  Argentina  "))

		assert.Equal(t, "Brazil, Argentina", p.StampLog())
		assert.Equal(t, []string{"Brazil", "Argentina"}, p.Stamps())
	})

	t.Run("blank stamp leaves the log unchanged", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Stamp", "Collector", dob(1992, time.November, 30), "Wanderer"))
		require.NoError(t, p.AddStamp("Chile"))

		err := p.AddStamp("   ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Equal(t, "Chile", p.StampLog())
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Stamp", "Collector", dob(1992, time.November, 30), "Wanderer"))
		require.NoError(t, p.AddStamp("Peru"))

		stamps := p.Stamps()
		stamps[0] = "Tampered"
		assert.Equal(t, "Peru", p.StampLog())
	})

	t.Run("rejected after revocation", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Stamp", "Collector", dob(1992, time.November, 30), "Wanderer"))
		require.NoError(t, p.AddStamp("Peru"))
		p.Revoke()

		err := p.AddStamp("Bolivia")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.True(t, p.IsRevoked())
		assert.Equal(t, "Peru", p.StampLog())
	})

	t.Run("revocation outranks a blank stamp", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Stamp", "Collector", dob(1992, time.November, 30), "Wanderer"))
		p.Revoke()

		err := p.AddStamp("  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("concurrent appends are all kept", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Busy", "Traveller", dob(1985, time.March, 3), "Global"))
		const n = 50
		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, p.AddStamp("Somewhere"))
			}()
		}
		wg.Wait()
		assert.Len(t, p.Stamps(), n)
	})
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	t.Run("born fifteen years ago is expired", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Old", "Timer", now.AddDate(-15, 0, 0), "Historic"))
		assert.True(t, p.IsExpired(now))
	})

	t.Run("born today is not expired", func(t *testing.T) {
		p, err := NewBuilder("New", "Born", now, "Fresh").Build(now)
		require.NoError(t, err)
		assert.False(t, p.IsExpired(now))
	})

	t.Run("expiration day itself is still valid", func(t *testing.T) {
		p := mustBuild(t, NewBuilder("Edge", "Case", dob(2010, time.January, 1), "Boundary"))
		assert.False(t, p.IsExpired(dob(2020, time.January, 1)))
		assert.True(t, p.IsExpired(dob(2020, time.January, 2)))
	})
}

func TestEqual(t *testing.T) {
	base := mustBuild(t, NewBuilder("Test", "User", dob(1980, time.January, 1), "Testican"))

	t.Run("ignores id and stamps", func(t *testing.T) {
		other := mustBuild(t, NewBuilder("TEST", "user", dob(1980, time.January, 1), "Testican"))
		require.NoError(t, other.AddStamp("Elsewhere"))
		assert.True(t, base.Equal(other))
	})

	t.Run("differs on each holder field", func(t *testing.T) {
		variants := []*Builder{
			NewBuilder("Other", "User", dob(1980, time.January, 1), "Testican"),
			NewBuilder("Test", "Other", dob(1980, time.January, 1), "Testican"),
			NewBuilder("Test", "User", dob(1980, time.January, 2), "Testican"),
			NewBuilder("Test", "User", dob(1980, time.January, 1), "Elsewhere"),
			NewBuilder("Test", "User", dob(1980, time.January, 1), "Testican").MiddleName("Middle"),
		}
		for _, b := range variants {
			assert.False(t, base.Equal(mustBuild(t, b)))
		}
	})

	t.Run("nil handling", func(t *testing.T) {
		var nilPassport *Passport
		assert.False(t, base.Equal(nil))
		assert.True(t, nilPassport.Equal(nil))
	})
}

func TestSummary(t *testing.T) {
	p := mustBuild(t, NewBuilder("john", "doe", dob(1990, time.January, 15), "American").MiddleName("quincy"))

	s := p.Summary(today)
	assert.Equal(t, p.ID().Short(), s.ShortID)
	assert.Equal(t, "John Quincy Doe", s.FullName)
	assert.Equal(t, "01/15/1990", s.DateOfBirth)
	assert.Equal(t, "01/15/2000", s.ExpirationDate)
	assert.Equal(t, "American", s.Nationality)
	assert.True(t, s.Expired)

	want := "Passport [ID=" + p.ID().Short() +
		", Name=John Quincy Doe, DOB=01/15/1990, Nationality=American, Expires=01/15/2000, Expired=true]"
	assert.Equal(t, want, s.String())
}
