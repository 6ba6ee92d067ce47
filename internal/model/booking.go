package model

// Reservation statuses accepted by the backend.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// ValidReservationStatus reports whether s is one of the known statuses.
func ValidReservationStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation is a booking as seen from the stylist dashboard.
type Reservation struct {
	ID         int    `json:"id"`
	ClientName string `json:"client_name"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

// ReservationRequest is the booking form a client submits. Date is
// YYYY-MM-DD and Time is HH:MM.
type ReservationRequest struct {
	ServiceID int    `json:"service,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
}

// MobileRequest broadcasts a home-service request to mobile stylists.
type MobileRequest struct {
	Service  string `json:"service"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Details  string `json:"details,omitempty"`
}

// Dashboard is the role-dependent summary from /api/dashboard.
type Dashboard struct {
	Profile             *DashboardProfile   `json:"profile,omitempty"`
	Proposals           []PriceProposal     `json:"proposals,omitempty"`
	DeplacementRequests []MobileRequestView `json:"deplacement_requests,omitempty"`
}

type DashboardProfile struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	Capacity int     `json:"capacity"`
	Waiting  int     `json:"waiting"`
}

type PriceProposal struct {
	ID            int     `json:"id"`
	ProposedPrice float64 `json:"proposed_price"`
	Notes         string  `json:"notes"`
	Service       string  `json:"service"`
	CoiffeurName  string  `json:"coiffeur_name"`
}

type MobileRequestView struct {
	ID       int    `json:"id"`
	Service  string `json:"service"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}
