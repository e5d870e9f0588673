package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the lifecycle state of a service request.
// Values are persisted as their integer index.
type RequestStatus int

// Possible request status values
const (
	RequestStatusPending RequestStatus = iota
	RequestStatusAccepted
	RequestStatusInProgress
	RequestStatusCompleted
	RequestStatusCancelled
)

// String returns the status name.
func (s RequestStatus) String() string {
	switch s {
	case RequestStatusAccepted:
		return "Accepted"
	case RequestStatusInProgress:
		return "InProgress"
	case RequestStatusCompleted:
		return "Completed"
	case RequestStatusCancelled:
		return "Cancelled"
	default:
		return "Pending"
	}
}

// RequestStatusFromIndex clamps i into the valid status range.
func RequestStatusFromIndex(i int) RequestStatus {
	if i < int(RequestStatusPending) {
		return RequestStatusPending
	}
	if i > int(RequestStatusCancelled) {
		return RequestStatusCancelled
	}
	return RequestStatus(i)
}

// ParseRequestStatus maps a status name to its value, ignoring case, spaces,
// underscores and hyphens. Unknown names map to Pending.
func ParseRequestStatus(s string) RequestStatus {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	switch key {
	case "accepted":
		return RequestStatusAccepted
	case "inprogress":
		return RequestStatusInProgress
	case "completed":
		return RequestStatusCompleted
	case "cancelled", "canceled":
		return RequestStatusCancelled
	default:
		return RequestStatusPending
	}
}

// Request is a client's order for a provider's service.
type Request struct {
	ID          uuid.UUID
	ServiceID   uuid.UUID
	ClientID    uuid.UUID
	ProviderID  uuid.UUID
	Description string
	Status      RequestStatus
	CreatedAt   time.Time
	CompletedAt time.Time
	Comments    []string
}

// NewRequest creates a pending Request. A nil id is replaced with a fresh one.
func NewRequest(id, serviceID, clientID, providerID uuid.UUID) *Request {
	return &Request{
		ID:         ensureID(id),
		ServiceID:  serviceID,
		ClientID:   clientID,
		ProviderID: providerID,
		Status:     RequestStatusPending,
		CreatedAt:  now(),
	}
}

// SetDescription stores the trimmed description.
func (r *Request) SetDescription(description string) {
	r.Description = strings.TrimSpace(description)
}

// UpdateStatus moves the request to status. CompletedAt is recorded on the
// first transition into Completed and is never cleared or overwritten.
// Reports whether the status changed.
func (r *Request) UpdateStatus(status RequestStatus, at time.Time) bool {
	if r.Status == status {
		return false
	}

	r.Status = status
	if status == RequestStatusCompleted && r.CompletedAt.IsZero() {
		r.CompletedAt = at
	}
	return true
}

// AddComment appends a trimmed comment. Blank comments are rejected.
func (r *Request) AddComment(comment string) error {
	c := strings.TrimSpace(comment)
	if c == "" {
		return ErrEmptyContent
	}
	r.Comments = append(r.Comments, c)
	return nil
}

// Involves reports whether userID is the client or the provider.
func (r Request) Involves(userID uuid.UUID) bool {
	return r.ClientID == userID || r.ProviderID == userID
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	if r.Comments != nil {
		r.Comments = append([]string(nil), r.Comments...)
	}
	return r
}

// Info returns a one-line summary.
func (r Request) Info() string {
	return fmt.Sprintf("Request %s | %s", shortID(r.ID), r.Status)
}

// FullInfo returns a multi-line description of the request.
func (r Request) FullInfo() string {
	var b strings.Builder
	b.WriteString("=== REQUEST ===\n")
	fmt.Fprintf(&b, "id: %s\n", r.ID)
	fmt.Fprintf(&b, "serviceId: %s\n", r.ServiceID)
	fmt.Fprintf(&b, "clientId: %s\n", r.ClientID)
	fmt.Fprintf(&b, "providerId: %s\n", r.ProviderID)
	fmt.Fprintf(&b, "status: %s\n", r.Status)
	fmt.Fprintf(&b, "description: %s\n", r.Description)
	fmt.Fprintf(&b, "createdAt: %s\n", FormatTimestamp(r.CreatedAt))
	fmt.Fprintf(&b, "completedAt: %s\n", FormatTimestamp(r.CompletedAt))
	fmt.Fprintf(&b, "comments: %d\n", len(r.Comments))
	return b.String()
}

type requestJSON struct {
	ID          string          `json:"id"`
	ServiceID   string          `json:"serviceId"`
	ClientID    string          `json:"clientId"`
	ProviderID  string          `json:"providerId"`
	Description string          `json:"description"`
	Status      json.RawMessage `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	CompletedAt string          `json:"completedAt"`
	Comments    []string        `json:"comments"`
}

// MarshalJSON implements json.Marshaler. Status is written as its index.
func (r Request) MarshalJSON() ([]byte, error) {
	comments := r.Comments
	if comments == nil {
		comments = []string{}
	}
	return json.Marshal(requestJSON{
		ID:          r.ID.String(),
		ServiceID:   r.ServiceID.String(),
		ClientID:    r.ClientID.String(),
		ProviderID:  r.ProviderID.String(),
		Description: r.Description,
		Status:      json.RawMessage(fmt.Sprintf("%d", int(r.Status))),
		CreatedAt:   FormatTimestamp(r.CreatedAt),
		CompletedAt: FormatTimestamp(r.CompletedAt),
		Comments:    comments,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Status may be an index or a
// legacy name; a missing createdAt defaults to now; a Completed request
// without completedAt takes its createdAt.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw requestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Request{
		ID:          ensureID(parseIDOrNil(raw.ID)),
		ServiceID:   parseIDOrNil(raw.ServiceID),
		ClientID:    parseIDOrNil(raw.ClientID),
		ProviderID:  parseIDOrNil(raw.ProviderID),
		Description: raw.Description,
		Status:      decodeRequestStatus(raw.Status),
		CreatedAt:   parseTimestampOr(raw.CreatedAt, now()),
		CompletedAt: parseTimestampOr(raw.CompletedAt, time.Time{}),
	}

	for _, c := range raw.Comments {
		_ = r.AddComment(c)
	}

	if r.Status == RequestStatusCompleted && r.CompletedAt.IsZero() {
		r.CompletedAt = r.CreatedAt
	}
	return nil
}

func decodeRequestStatus(raw json.RawMessage) RequestStatus {
	if len(raw) == 0 {
		return RequestStatusPending
	}

	var index float64
	if err := json.Unmarshal(raw, &index); err == nil {
		return RequestStatusFromIndex(int(index))
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return ParseRequestStatus(name)
	}

	return RequestStatusPending
}
