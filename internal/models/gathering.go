package models

import "time"

// GatheringStatus is the lifecycle state of a gathering.
// The only transition is StatusOpen -> StatusClosed; closed is terminal.
type GatheringStatus string

const (
	StatusOpen   GatheringStatus = "open"
	StatusClosed GatheringStatus = "closed"
)

// PaymentSource tells user-entered payments apart from payments generated when
// a gathering is closed.
type PaymentSource string

const (
	// PaymentSourceUser is a payment recorded by a person. Documents written
	// before the source field existed decode with an empty source, which is
	// treated the same way.
	PaymentSourceUser PaymentSource = "user"

	// PaymentSourceSettlement is a balancing payment appended by the settlement
	// performed on close.
	PaymentSourceSettlement PaymentSource = "settlement"
)

// Gathering represents a bounded expense-sharing event.
type Gathering struct {
	// ID is chosen by the user and unique among gatherings.
	ID string `json:"id"`

	// Description is free text shown alongside the ID.
	Description string `json:"description"`

	// Status is open until the gathering is closed.
	Status GatheringStatus `json:"status"`

	// CreatedAt is when the gathering was created.
	CreatedAt time.Time `json:"createdAt"`

	// Members lists participations in insertion order.
	// A given MemberID appears at most once.
	Members []GatheringMember `json:"members"`
}

// GatheringMember represents one GlobalMember's participation in one Gathering.
type GatheringMember struct {
	// MemberID references GlobalMember.ID.
	MemberID string `json:"memberId"`

	// Expenses are owned by this participation, in insertion order.
	Expenses []Expense `json:"expenses"`

	// Payments are owned by this participation, in insertion order.
	Payments []Payment `json:"payments"`
}

// Expense is money a member spent on behalf of the group. Amount is always positive.
type Expense struct {
	ID        string    `json:"id"`
	Amount    Amount    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payment is money a member paid back (positive) or received (negative).
type Payment struct {
	ID        string        `json:"id"`
	Amount    Amount        `json:"amount"`
	CreatedAt time.Time     `json:"createdAt"`
	Source    PaymentSource `json:"source,omitempty"`
}

// IsSettlement reports whether the payment was generated by closing a gathering.
func (p Payment) IsSettlement() bool { return p.Source == PaymentSourceSettlement }

// IsClosed reports whether the gathering reached its terminal state.
func (g *Gathering) IsClosed() bool { return g.Status == StatusClosed }

// Member returns the participation of memberID, or nil if absent.
func (g *Gathering) Member(memberID string) *GatheringMember {
	for i := range g.Members {
		if g.Members[i].MemberID == memberID {
			return &g.Members[i]
		}
	}
	return nil
}

// HasMember reports whether memberID participates in the gathering.
func (g *Gathering) HasMember(memberID string) bool { return g.Member(memberID) != nil }

// LastActivity returns the latest expense or payment timestamp, or CreatedAt
// when nothing was recorded after creation.
func (g *Gathering) LastActivity() time.Time {
	latest := g.CreatedAt
	for _, m := range g.Members {
		for _, e := range m.Expenses {
			if e.CreatedAt.After(latest) {
				latest = e.CreatedAt
			}
		}
		for _, p := range m.Payments {
			if p.CreatedAt.After(latest) {
				latest = p.CreatedAt
			}
		}
	}
	return latest
}
