package domain

// Role represents a user role in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether the given role name is known
func ValidRole(role string) bool {
	return role == string(RoleUser) || role == string(RoleAdmin)
}

// AuthMethod tracks how an account may authenticate
type AuthMethod string

const (
	AuthMethodPassword AuthMethod = "password"
	AuthMethodGoogle   AuthMethod = "google"
	AuthMethodMultiple AuthMethod = "multiple"
)

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "Open"
	JobStatusClosed JobStatus = "Closed"
)

// ApplicationStatus represents the lifecycle state of a job application
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "Pending"
	ApplicationReviewed    ApplicationStatus = "Reviewed"
	ApplicationShortlisted ApplicationStatus = "Shortlisted"
	ApplicationAccepted    ApplicationStatus = "Accepted"
	ApplicationRejected    ApplicationStatus = "Rejected"
)

// applicationTransitions is the legal transition set. Accepted and Rejected
// are terminal; Pending may move directly to a terminal state.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationReviewed, ApplicationShortlisted, ApplicationAccepted, ApplicationRejected},
	ApplicationReviewed:    {ApplicationShortlisted, ApplicationAccepted, ApplicationRejected},
	ApplicationShortlisted: {ApplicationAccepted, ApplicationRejected},
	ApplicationAccepted:    {},
	ApplicationRejected:    {},
}

// Valid reports whether the status is one of the enumerated values
func (s ApplicationStatus) Valid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s
func (s ApplicationStatus) Terminal() bool {
	return len(applicationTransitions[s]) == 0
}
