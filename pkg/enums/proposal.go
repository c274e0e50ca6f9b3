package enums

import "fmt"

// ProposalStatus tracks a commercial proposal through review.
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

var validProposalStatuses = []ProposalStatus{
	ProposalStatusDraft,
	ProposalStatusSent,
	ProposalStatusApproved,
	ProposalStatusRejected,
}

// String implements fmt.Stringer.
func (s ProposalStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProposalStatus.
func (s ProposalStatus) IsValid() bool {
	for _, candidate := range validProposalStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProposalStatus converts raw input into a ProposalStatus.
func ParseProposalStatus(value string) (ProposalStatus, error) {
	for _, candidate := range validProposalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid proposal status %q", value)
}

// DraftKind names a staging slot for proposals awaiting PDF rendering.
type DraftKind string

const (
	DraftKindPending DraftKind = "pending"
	DraftKindRich    DraftKind = "rich"
)

var validDraftKinds = []DraftKind{
	DraftKindPending,
	DraftKindRich,
}

// String implements fmt.Stringer.
func (k DraftKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known DraftKind.
func (k DraftKind) IsValid() bool {
	for _, candidate := range validDraftKinds {
		if candidate == k {
			return true
		}
	}
	return false
}
