package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"myhair/internal/api"
	apperrors "myhair/internal/errors"
	"myhair/internal/model"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var (
	clientUser  = &model.Profile{ID: 1, Name: "Sara", Type: model.UserClient, City: "Paris"}
	stylistUser = &model.Profile{ID: 7, Name: "Amal", Type: model.UserCoiffeur, City: "Paris"}
)

func ptr(f float64) *float64 { return &f }

func sampleStylists() []model.Stylist {
	return []model.Stylist{
		{ID: 7, Name: "amal", Category: model.CategoryWomen, City: "Paris", Rating: 4.8, Waiting: 2, Capacity: 5, Lat: ptr(48.8566), Lng: ptr(2.3522)},
		{ID: 8, Name: "karim", Category: model.CategoryMobile, City: "Lyon", Rating: 4.5, Waiting: 6, Capacity: 3, Lat: ptr(45.764), Lng: ptr(4.8357)},
		{ID: 9, Name: "nadia", Category: model.CategoryWomen, City: "Lyon", Rating: 3.9, Waiting: 0, Capacity: 8},
	}
}

// fakeAPI records calls and serves canned data.
type fakeAPI struct {
	mu sync.Mutex

	stylists  []model.Stylist
	details   map[int]*model.StylistDetail
	nearby    []model.NearbyStylist
	locations []model.Location
	workspace *api.Workspace
	err       error

	waiting      []int
	statuses     map[int]string
	reserved     []model.ReservationRequest
	mobile       []model.MobileRequest
	menuAdded    []model.NewMenuItem
	menuDeleted  []int
	subscribed   []bool
	comments     []string
	clients      []model.ClientSignup
	coiffeurs    []model.CoiffeurSignup
	locationsSet [][2]float64
	avatars      []string
	published    []model.NewPublication
}

func newFakeAPI() *fakeAPI {
	amal := &model.StylistDetail{
		Stylist: sampleStylists()[0],
		Address: "12 rue de Rivoli",
		Menu: []model.MenuItem{
			{ID: 11, Name: "Coupe", Price: 25},
			{ID: 12, Name: "Brushing", Price: 18},
		},
		Services: []model.Service{{ID: 21, Name: "Coupe + brushing", Price: 40}},
	}
	return &fakeAPI{
		stylists: sampleStylists(),
		details:  map[int]*model.StylistDetail{7: amal},
		statuses: map[int]string{},
		workspace: &api.Workspace{
			Detail: amal,
			Reservations: []model.Reservation{
				{ID: 41, ClientName: "Sara", Service: "Coupe", Date: "2025-03-01", Time: "10:00", Status: model.StatusPending},
			},
			Summary: &model.Dashboard{Profile: &model.DashboardProfile{Category: model.CategoryWomen, Rating: 4.8, Capacity: 5, Waiting: 2}},
		},
	}
}

func (f *fakeAPI) Stylists(ctx context.Context, q api.StylistQuery) ([]model.Stylist, error) {
	return f.stylists, f.err
}

func (f *fakeAPI) Stylist(ctx context.Context, id int) (*model.StylistDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, apperrors.NewAPIError(404, "Stylist not found")
	}
	return d, nil
}

func (f *fakeAPI) Nearby(ctx context.Context, lat, lon float64) ([]model.NearbyStylist, error) {
	return f.nearby, f.err
}

func (f *fakeAPI) Locations(ctx context.Context) ([]model.Location, error) {
	return f.locations, f.err
}

func (f *fakeAPI) Subscribe(ctx context.Context, id int, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed = append(f.subscribed, on)
	return f.err
}

func (f *fakeAPI) Comment(ctx context.Context, id int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, text)
	return f.err
}

func (f *fakeAPI) Reserve(ctx context.Context, id int, req model.ReservationRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.reserved = append(f.reserved, req)
	return 100, nil
}

func (f *fakeAPI) RequestMobile(ctx context.Context, req model.MobileRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mobile = append(f.mobile, req)
	return f.err
}

func (f *fakeAPI) SignupClient(ctx context.Context, form model.ClientSignup) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = append(f.clients, form)
	return 101, f.err
}

func (f *fakeAPI) SignupCoiffeur(ctx context.Context, form model.CoiffeurSignup) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coiffeurs = append(f.coiffeurs, form)
	return 102, f.err
}

func (f *fakeAPI) LoadWorkspace(ctx context.Context, id int) (*api.Workspace, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.workspace, nil
}

func (f *fakeAPI) UpdateWaiting(ctx context.Context, id, waiting int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waiting = append(f.waiting, waiting)
	return f.err
}

func (f *fakeAPI) SetReservationStatus(ctx context.Context, id int, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
	return f.err
}

func (f *fakeAPI) AddMenuItem(ctx context.Context, item model.NewMenuItem) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menuAdded = append(f.menuAdded, item)
	return 13, f.err
}

func (f *fakeAPI) DeleteMenuItem(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menuDeleted = append(f.menuDeleted, id)
	return f.err
}

func (f *fakeAPI) UpdateLocation(ctx context.Context, lat, lng float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locationsSet = append(f.locationsSet, [2]float64{lat, lng})
	return f.err
}

func (f *fakeAPI) Publish(ctx context.Context, pub model.NewPublication) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, pub)
	return 32, f.err
}

func (f *fakeAPI) UploadAvatar(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.avatars = append(f.avatars, path)
	return "/static/avatar/new.png", f.err
}

var errBackendDown = apperrors.NetworkError("GET /api/stylists", errors.New("connection refused"))

func testDeps(f *fakeAPI, user *model.Profile) deps {
	return deps{ctx: context.Background(), api: f, user: user}
}

// Key helpers.

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// typeInto feeds s rune by rune and drops the resulting cursor commands.
func typeInto(s screen, text string) screen {
	for _, r := range text {
		s, _ = s.Update(keyRunes(string(r)))
	}
	return s
}

// collect runs cmd and flattens batches. Timer driven messages (spinner
// ticks, cursor blinks) are dropped.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, cursor.BlinkMsg, nil:
		default:
			out = append(out, msg)
		}
	}
	return out
}

// feed runs cmd and hands every message back to s until nothing is left.
func feed(t *testing.T, s screen, cmd tea.Cmd) (screen, []tea.Msg) {
	t.Helper()
	var external []tea.Msg
	pending := collect(t, cmd)
	for steps := 0; len(pending) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		msg := pending[0]
		pending = pending[1:]
		switch msg.(type) {
		case navigateMsg, statusMsg, loginRequestMsg:
			external = append(external, msg)
			continue
		}
		var next tea.Cmd
		s, next = s.Update(msg)
		pending = append(pending, collect(t, next)...)
	}
	return s, external
}

// navigation returns the navigate message among msgs, if any.
func navigation(msgs []tea.Msg) (navigateMsg, bool) {
	for _, m := range msgs {
		if nav, ok := m.(navigateMsg); ok {
			return nav, true
		}
	}
	return navigateMsg{}, false
}

// drain runs cmd against the app until no message is left.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	pending := collect(t, cmd)
	for steps := 0; len(pending) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		msg := pending[0]
		pending = pending[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		_, next := a.Update(msg)
		pending = append(pending, collect(t, next)...)
	}
}
