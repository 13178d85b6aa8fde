package ports

import (
	"context"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/location"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/core/domain/model/proposal"
)

// ProposalStore loads proposal read models from the external proposal service.
// Access rules are enforced by that service; a denied or missing proposal
// surfaces as a not-found error.
type ProposalStore interface {
	GetProposal(ctx context.Context, proposalID kernel.UUID) (*proposal.Proposal, error)
}

// LocationDirectory resolves location references to their directory entries.
type LocationDirectory interface {
	// ResolveLocation resolves a single location reference.
	// Returns a not-found error for unknown references.
	ResolveLocation(ctx context.Context, locationID string) (*location.Location, error)
}

// TaskRef is the external coordination system's reference to a created task.
type TaskRef struct {
	TaskID      string
	BusinessKey string
}

// CreateTaskRequest carries everything the coordination system needs to start
// a delivery task.
type CreateTaskRequest struct {
	ProposalID         kernel.UUID
	ProjectName        string
	ManagementSite     string
	IntegrationCenters []string
	ResearcherEmails   []string
	RequestedDate      time.Time
}

// CoordinationClient is the adapter to the external delivery-coordination
// system. Its own protocol is out of scope; the engine treats it as a black
// box with these five operations.
type CoordinationClient interface {
	// CreateTask starts a coordination task for an automated delivery.
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskRef, error)

	// FetchReceivedDatasets lists the supplying-location addresses whose
	// datasets arrived for the business key since the given time.
	FetchReceivedDatasets(ctx context.Context, businessKey string, since time.Time) ([]string, error)

	// FetchResultURL returns the published result URL for the task, or an
	// empty string when no result is available yet.
	FetchResultURL(ctx context.Context, taskID string) (string, error)

	// ReleaseDataSet asks the coordination system to release and consolidate
	// the dataset for the business key.
	ReleaseDataSet(ctx context.Context, businessKey string) error

	// ExtendReleaseWindow moves the release window of the business key to the
	// new date.
	ExtendReleaseWindow(ctx context.Context, businessKey string, newDate time.Time) error
}

// NotificationDispatcher delivers outbox events to the external notification
// system. Delivery is best-effort; failures are retried by the relay job.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event *notification.Event) error
}

// LockService grants named, time-boxed exclusive locks across horizontally
// scaled instances. The lease is not renewed; idempotent batch operations
// tolerate the rare overlap of a run outliving its lease.
type LockService interface {
	// AcquireLock tries to take the named lock for the lease duration.
	// Returns false when another holder owns it.
	AcquireLock(ctx context.Context, name string, lease time.Duration) (bool, error)

	// ReleaseLock releases the named lock if this instance still holds it.
	ReleaseLock(ctx context.Context, name string) error
}
