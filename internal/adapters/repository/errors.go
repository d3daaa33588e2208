package repository

import "errors"

// Sentinel kinds for applicant store errors.
var (
	// ErrApplicantNotFound marks a name with no row in the worksheet.
	ErrApplicantNotFound = errors.New("applicant not found")

	// ErrDuplicateName marks a write that would make an applicant name
	// ambiguous within a worksheet. Names are the only key the sheet has.
	ErrDuplicateName = errors.New("duplicate applicant name")

	// ErrInvalidLimit marks a non-positive top-N limit.
	ErrInvalidLimit = errors.New("invalid top-n limit")
)
