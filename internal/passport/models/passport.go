package models

import (
	"fmt"
	"strings"
	"sync"
	"time"

	id "passport/pkg/domain"
	dErrors "passport/pkg/domain-errors"
)

// ValidityYears is the fixed lifetime of a passport, counted from the
// holder's date of birth.
const ValidityYears = 10

// DisplayDateLayout renders dates as MM/DD/YYYY.
const DisplayDateLayout = "01/02/2006"

// Passport is an issued identity document.
//
// Invariants:
//   - ID is assigned once by the builder and never changes
//   - FirstName/LastName are non-empty, letters/periods/hyphens, capitalized
//   - ExpirationDate == DateOfBirth + ValidityYears
//   - the stamp log is append-only and keeps insertion order
//
// Identity fields are unexported and have no setters. The only mutation is
// AddStamp, which is guarded by the record's own lock so holders of the same
// pointer can append concurrently. A Passport must not be copied after
// construction.
type Passport struct {
	id             id.PassportID
	firstName      string
	middleName     string
	lastName       string
	dateOfBirth    time.Time
	nationality    string
	expirationDate time.Time

	mu      sync.RWMutex
	stamps  []string
	revoked bool
}

func (p *Passport) ID() id.PassportID { return p.id }
func (p *Passport) FirstName() string { return p.firstName }
func (p *Passport) MiddleName() string { return p.middleName }
func (p *Passport) LastName() string { return p.lastName }
func (p *Passport) DateOfBirth() time.Time { return p.dateOfBirth }
func (p *Passport) Nationality() string { return p.nationality }
func (p *Passport) ExpirationDate() time.Time { return p.expirationDate }

// FullName joins first, optional middle and last names with single spaces.
func (p *Passport) FullName() string {
	if p.middleName == "" {
		return p.firstName + " " + p.lastName
	}
	return p.firstName + " " + p.middleName + " " + p.lastName
}

// AddStamp appends a trimmed travel stamp to the log.
//
// Errors: CodeInvariantViolation once the passport has been revoked,
// otherwise CodeInvalidInput for a blank stamp. The log is unchanged on error.
func (p *Passport) AddStamp(stamp string) error {
	stamp = strings.TrimSpace(stamp)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.revoked {
		return dErrors.New(dErrors.CodeInvariantViolation, "passport has been revoked")
	}
	if stamp == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "stamp cannot be empty")
	}
	p.stamps = append(p.stamps, stamp)
	return nil
}

// Stamps returns a copy of the stamp log in insertion order.
func (p *Passport) Stamps() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.stamps...)
}

// StampLog renders the stamp log comma-space joined, e.g. "Brazil, Argentina".
func (p *Passport) StampLog() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return strings.Join(p.stamps, ", ")
}

// Revoke detaches the record from active use. It is terminal and idempotent;
// further stamp appends are rejected.
func (p *Passport) Revoke() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked = true
}

func (p *Passport) IsRevoked() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.revoked
}

// IsExpired reports whether the calendar date of now is strictly after the
// expiration date.
func (p *Passport) IsExpired(now time.Time) bool {
	return dateOf(now).After(p.expirationDate)
}

// Equal compares holder attributes only: names, date of birth and
// nationality. ID and stamps are ignored.
func (p *Passport) Equal(other *Passport) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.firstName == other.firstName &&
		p.middleName == other.middleName &&
		p.lastName == other.lastName &&
		p.dateOfBirth.Equal(other.dateOfBirth) &&
		p.nationality == other.nationality
}

// Summary is the human-readable projection of a passport used by logs and the
// demo driver.
type Summary struct {
	ShortID        string
	FullName       string
	DateOfBirth    string
	Nationality    string
	ExpirationDate string
	Expired        bool
}

// Summary projects the passport for display, evaluating expiry against now.
func (p *Passport) Summary(now time.Time) Summary {
	return Summary{
		ShortID:        p.id.Short(),
		FullName:       p.FullName(),
		DateOfBirth:    p.dateOfBirth.Format(DisplayDateLayout),
		Nationality:    p.nationality,
		ExpirationDate: p.expirationDate.Format(DisplayDateLayout),
		Expired:        p.IsExpired(now),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("Passport [ID=%s, Name=%s, DOB=%s, Nationality=%s, Expires=%s, Expired=%t]",
		s.ShortID, s.FullName, s.DateOfBirth, s.Nationality, s.ExpirationDate, s.Expired)
}

// dateOf truncates t to its calendar date, expressed at midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addYears shifts a date by whole years, clamping 29 February to 28 February
// in non-leap target years instead of rolling into March.
func addYears(date time.Time, years int) time.Time {
	shifted := date.AddDate(years, 0, 0)
	if shifted.Month() != date.Month() {
		shifted = shifted.AddDate(0, 0, -shifted.Day())
	}
	return shifted
}
