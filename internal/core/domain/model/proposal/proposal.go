// Package proposal holds the read model of a research-data proposal as served
// by the external proposal service. The delivery engine never owns or mutates
// proposals; it only reads the fields required to coordinate deliveries.
package proposal

import (
	"errors"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"
)

// ErrProposalIsNotConstructed is returned when a Proposal instance was not
// created through NewProposal.
var ErrProposalIsNotConstructed = errors.New("Proposal must be created via NewProposal")

// PlaceholderApplicantEmail substitutes the primary applicant's address in
// coordination tasks when the proposal carries none.
const PlaceholderApplicantEmail = "unknown-applicant@placeholder.invalid"

// Proposal is the slice of an access proposal the delivery engine cares about:
// identity, project name for coordination tasks, and the researcher addresses
// notified about results.
type Proposal struct {
	id                kernel.UUID
	projectName       string
	applicantEmail    string
	participantEmails []string

	isConstructed bool
}

// NewProposal creates a proposal read model. The applicant email may be empty;
// ResearcherEmails substitutes a placeholder in that case.
func NewProposal(
	id kernel.UUID,
	projectName string,
	applicantEmail string,
	participantEmails []string,
) (*Proposal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if projectName == "" {
		return nil, errs.NewValueIsRequiredError("projectName")
	}

	return &Proposal{
		id:                id,
		projectName:       projectName,
		applicantEmail:    applicantEmail,
		participantEmails: participantEmails,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Proposal instance was properly constructed.
func (p *Proposal) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProposalIsNotConstructed
	}
	return nil
}

// ID returns the proposal's identifier.
func (p *Proposal) ID() kernel.UUID {
	return p.id
}

// ProjectName returns the project name used in coordination tasks.
func (p *Proposal) ProjectName() string {
	return p.projectName
}

// ApplicantEmail returns the primary applicant's address, empty if unknown.
func (p *Proposal) ApplicantEmail() string {
	return p.applicantEmail
}

// ParticipantEmails returns the addresses of the participating researchers.
func (p *Proposal) ParticipantEmails() []string {
	return p.participantEmails
}

// ResearcherEmails collects the primary applicant plus all participants.
// A placeholder address stands in when the primary applicant is missing.
func (p *Proposal) ResearcherEmails() []string {
	applicant := p.applicantEmail
	if applicant == "" {
		applicant = PlaceholderApplicantEmail
	}

	emails := make([]string, 0, len(p.participantEmails)+1)
	emails = append(emails, applicant)
	emails = append(emails, p.participantEmails...)
	return emails
}
