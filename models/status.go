// models/status.go - Applicant status enum and level lattice
package models

import "fmt"

// Status is the single source of truth for where an applicant is in the
// pipeline. It replaces the legacy multi-boolean representation
// (verified/completedProfile/admitted/confirmed/declined).
type Status string

const (
	StatusUnverified       Status = "UNVERIFIED"
	StatusVerified         Status = "VERIFIED"
	StatusCompletedProfile Status = "COMPLETED_PROFILE"
	StatusAdmitted         Status = "ADMITTED"
	StatusRejected         Status = "REJECTED"
	StatusWaitlisted       Status = "WAITLISTED"
	StatusConfirmed        Status = "CONFIRMED"
	StatusDeclined         Status = "DECLINED"
)

// ErrUnknownStatus is returned when a status value is outside the enumeration.
type ErrUnknownStatus struct {
	Value Status
}

func (e *ErrUnknownStatus) Error() string {
	return fmt.Sprintf("unknown status: %q", string(e.Value))
}

// statusLevels maps each status to its rank-group index. Statuses sharing a
// level (ADMITTED/REJECTED, CONFIRMED/DECLINED) are mutually exclusive
// outcomes of a single decision point. This is NOT the admin triage order
// used by the participant directory; the two tables disagree on purpose.
var statusLevels = map[Status]int{
	StatusUnverified:       0,
	StatusVerified:         1,
	StatusCompletedProfile: 2,
	StatusAdmitted:         3,
	StatusRejected:         3,
	StatusWaitlisted:       4,
	StatusConfirmed:        5,
	StatusDeclined:         5,
}

// exactOnly holds statuses that are exact outcomes, not graduated progress.
// Having one of these never implies any lower status.
var exactOnly = map[Status]bool{
	StatusRejected:   true,
	StatusWaitlisted: true,
}

// StatusLevel returns the zero-based rank-group index of a status.
func StatusLevel(s Status) (int, error) {
	level, ok := statusLevels[s]
	if !ok {
		return 0, &ErrUnknownStatus{Value: s}
	}
	return level, nil
}

// StatusImplies reports whether holding src guarantees tgt is or was also
// attained. Within a rank group, sibling outcomes do not substitute for each
// other: being admitted must never satisfy a check for being rejected.
func StatusImplies(src, tgt Status) bool {
	if exactOnly[src] || exactOnly[tgt] {
		return src == tgt
	}
	srcLevel, err := StatusLevel(src)
	if err != nil {
		return false
	}
	tgtLevel, err := StatusLevel(tgt)
	if err != nil {
		return false
	}
	if srcLevel == tgtLevel {
		return src == tgt
	}
	return srcLevel > tgtLevel
}

// Valid reports whether s is a member of the enumeration.
func (s Status) Valid() bool {
	_, ok := statusLevels[s]
	return ok
}

// LegacyStatusFlags is the pre-migration shape where each pipeline stage was
// an independent boolean. Admitted uses three states: nil (no decision),
// true, and false (rejected).
type LegacyStatusFlags struct {
	Verified         bool  `json:"verified"`
	CompletedProfile bool  `json:"completedProfile"`
	Admitted         *bool `json:"admitted"`
	Confirmed        bool  `json:"confirmed"`
	Declined         bool  `json:"declined"`
}

// StatusFromLegacyFlags collapses the legacy booleans into a single enum
// value using the documented precedence:
// declined > confirmed > admitted=true > admitted=false > completedProfile >
// verified > unverified.
func StatusFromLegacyFlags(f LegacyStatusFlags) Status {
	switch {
	case f.Declined:
		return StatusDeclined
	case f.Confirmed:
		return StatusConfirmed
	case f.Admitted != nil && *f.Admitted:
		return StatusAdmitted
	case f.Admitted != nil && !*f.Admitted:
		return StatusRejected
	case f.CompletedProfile:
		return StatusCompletedProfile
	case f.Verified:
		return StatusVerified
	default:
		return StatusUnverified
	}
}
