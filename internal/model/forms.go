package model

// ClientSignup is the client registration form.
type ClientSignup struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CoiffeurSignup is the stylist registration form. It travels as multipart
// because it may carry the bank transfer proof.
type CoiffeurSignup struct {
	Name          string
	Email         string
	Password      string
	City          string
	Phone         string
	Category      string
	Description   string
	Address       string
	VirementName  string
	VirementProof string // local file path, optional
}

// NewMenuItem is a dashboard menu entry before the backend assigns an id.
type NewMenuItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// NewPublication is a dashboard post. Images are local file paths.
type NewPublication struct {
	Text   string
	Images []string
}
