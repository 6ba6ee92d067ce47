package devserver

import (
	"sort"
	"sync"
	"time"

	"myhair/internal/model"
)

type account struct {
	profile  model.Profile
	password string
	phone    string
	code     string // pending confirmation or reset code
}

type salon struct {
	active        bool
	category      string
	description   string
	address       string
	rating        float64
	capacity      int
	waiting       int
	lat, lng      *float64
	menu          []model.MenuItem
	services      []model.Service
	feed          []model.Publication
	subscribers   map[int]bool
	comments      []string
	virementProof string
}

type booking struct {
	model.Reservation
	stylistID int
	clientID  int
}

// state is the whole in-memory backend.
type state struct {
	mu       sync.Mutex
	nextID   int
	accounts map[int]*account
	salons   map[int]*salon
	bookings map[int]*booking
	requests []model.MobileRequestView
	sessions map[string]int
}

func newState() *state {
	return &state{
		nextID:   100,
		accounts: make(map[int]*account),
		salons:   make(map[int]*salon),
		bookings: make(map[int]*booking),
		sessions: make(map[string]int),
	}
}

func (s *state) id() int {
	s.nextID++
	return s.nextID
}

func ptr(f float64) *float64 { return &f }

// seed loads the demo data. Every password is "password".
func (s *state) seed() {
	s.accounts[1] = &account{
		profile:  model.Profile{ID: 1, Name: "Sara Benali", Email: "sara@client.com", Type: model.UserClient, City: "Paris", IsConfirmed: true},
		password: "password",
	}
	s.accounts[7] = &account{
		profile:  model.Profile{ID: 7, Name: "Amal", Email: "amal@salon.com", Type: model.UserCoiffeur, City: "Paris", Image: "/static/avatar/woman.png", IsConfirmed: true},
		password: "password",
	}
	s.accounts[8] = &account{
		profile:  model.Profile{ID: 8, Name: "Karim", Email: "karim@salon.com", Type: model.UserCoiffeur, City: "Lyon", Image: "/static/avatar/dep.png", IsConfirmed: true},
		password: "password",
	}

	s.salons[7] = &salon{
		active:      true,
		category:    model.CategoryWomen,
		description: "Coupes, couleurs et **brushing** sans rendez-vous.",
		address:     "12 rue Oberkampf, Paris",
		rating:      4.8,
		capacity:    5,
		waiting:     2,
		lat:         ptr(48.8566),
		lng:         ptr(2.3522),
		menu:        []model.MenuItem{{ID: 11, Name: "Brushing", Price: 25}, {ID: 12, Name: "Couleur", Price: 60, Description: "Couleur complète"}},
		services:    []model.Service{{ID: 21, Name: "Coupe femme", Price: 35}},
		feed:        []model.Publication{{ID: 31, Text: "Nouvelle saison, nouvelles couleurs", CreatedAt: "2024-03-01", Likes: 4}},
		subscribers: map[int]bool{},
	}
	s.salons[8] = &salon{
		active:      true,
		category:    model.CategoryMobile,
		description: "Je me déplace à domicile dans tout Lyon.",
		address:     "Lyon",
		rating:      4.5,
		capacity:    3,
		waiting:     6,
		lat:         ptr(45.7640),
		lng:         ptr(4.8357),
		services:    []model.Service{{ID: 22, Name: "Coupe homme", Price: 20}},
		subscribers: map[int]bool{},
	}

	s.bookings[41] = &booking{
		Reservation: model.Reservation{ID: 41, ClientName: "Sara Benali", Service: "Coupe femme", Date: "2024-03-10", Time: "10:30:00", Status: model.StatusPending},
		stylistID:   7,
		clientID:    1,
	}
}

func (s *state) stylist(id int) (model.Stylist, bool) {
	acc, ok := s.accounts[id]
	if !ok {
		return model.Stylist{}, false
	}
	sl, ok := s.salons[id]
	if !ok {
		return model.Stylist{}, false
	}
	return model.Stylist{
		ID:          id,
		Name:        acc.profile.Name,
		Category:    sl.category,
		City:        acc.profile.City,
		Rating:      sl.rating,
		Image:       acc.profile.Image,
		Description: sl.description,
		Capacity:    sl.capacity,
		Waiting:     sl.waiting,
		Lat:         sl.lat,
		Lng:         sl.lng,
	}, true
}

// activeIDs returns the ids of active stylists in ascending order.
func (s *state) activeIDs() []int {
	ids := make([]int, 0, len(s.salons))
	for id, sl := range s.salons {
		if sl.active {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (s *state) accountByEmail(email string) *account {
	for _, acc := range s.accounts {
		if acc.profile.Email == email {
			return acc
		}
	}
	return nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}
