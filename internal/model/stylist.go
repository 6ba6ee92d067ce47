package model

// Stylist categories used by the backend.
const (
	CategoryMen    = "Homme"
	CategoryWomen  = "Femme"
	CategoryMobile = "Déplacé"
)

// Stylist is the list shape returned by /api/stylists.
type Stylist struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	City        string   `json:"city"`
	Rating      float64  `json:"rating"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Waiting     int      `json:"waiting"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// StylistDetail is the full profile returned by /api/stylists/{id}.
type StylistDetail struct {
	Stylist
	Address         string        `json:"address"`
	Images          []string      `json:"images"`
	Menu            []MenuItem    `json:"menu"`
	Services        []Service     `json:"services"`
	Feed            []Publication `json:"feed"`
	IsSubscribed    bool          `json:"is_subscribed"`
	SubscriberCount int           `json:"subscriber_count"`
}

type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type Service struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Publication struct {
	ID          int      `json:"id"`
	Text        string   `json:"text"`
	Images      []string `json:"images"`
	CreatedAt   string   `json:"created_at"`
	Likes       int      `json:"likes"`
	Comments    []string `json:"comments"`
	LikedByUser bool     `json:"liked_by_user"`
}

// Location is a stylist pin on the map.
type Location struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Address  string  `json:"address"`
	Category string  `json:"category"`
}

// NearbyStylist is a stylist within the nearby radius, with distance in km.
type NearbyStylist struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Dist float64 `json:"dist"`
}
