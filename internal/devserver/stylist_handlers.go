package devserver

import (
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"myhair/internal/catalog"
	"myhair/internal/model"
)

func (s *Server) handleStylists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city, category := q.Get("city"), q.Get("category")

	s.state.mu.Lock()
	out := make([]model.Stylist, 0)
	for _, id := range s.state.activeIDs() {
		st, _ := s.state.stylist(id)
		if city != "" && st.City != city {
			continue
		}
		if category != "" && category != "all" && st.Category != category {
			continue
		}
		out = append(out, st)
	}
	s.state.mu.Unlock()

	if q.Get("sort_by") == catalog.SortWaiting {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Waiting < out[j].Waiting })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStylist(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	viewer, _ := s.sessionUser(r)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	st, ok := s.state.stylist(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	sl := s.state.salons[id]
	detail := model.StylistDetail{
		Stylist:         st,
		Address:         sl.address,
		Images:          []string{},
		Menu:            append([]model.MenuItem{}, sl.menu...),
		Services:        append([]model.Service{}, sl.services...),
		Feed:            append([]model.Publication{}, sl.feed...),
		IsSubscribed:    sl.subscribers[viewer],
		SubscriberCount: len(sl.subscribers),
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateWaiting(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok || id != userID(r) {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	var body struct {
		WaitingCount *int `json:"waiting_count"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sl, ok := s.state.salons[id]
	if !ok {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	if body.WaitingCount != nil {
		sl.waiting = catalog.QueueDelta(*body.WaitingCount, 0)
	}
	writeMessage(w, http.StatusOK, "Updated")
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	var body struct {
		Comment string `json:"comment"`
	}
	_ = decodeJSON(r, &body)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if acc := s.state.accounts[userID(r)]; acc == nil || acc.profile.Type != model.UserClient {
		writeError(w, http.StatusForbidden, "Client login required")
		return
	}
	sl, ok := s.state.salons[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	sl.comments = append(sl.comments, body.Comment)
	writeMessage(w, http.StatusCreated, "Comment added")
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	viewer := userID(r)
	if acc := s.state.accounts[viewer]; acc == nil || acc.profile.Type != model.UserClient {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	sl, ok := s.state.salons[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	if r.Method == http.MethodDelete {
		delete(sl.subscribers, viewer)
	} else {
		sl.subscribers[viewer] = true
	}
	writeMessage(w, http.StatusOK, "Updated")
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]model.Location, 0)
	for _, id := range s.state.activeIDs() {
		sl := s.state.salons[id]
		if sl.lat == nil || sl.lng == nil {
			continue
		}
		out = append(out, model.Location{
			ID:       id,
			Name:     s.state.accounts[id].profile.Name,
			Lat:      *sl.lat,
			Lng:      *sl.lng,
			Address:  sl.address,
			Category: sl.category,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleNearby lists located stylists within the nearby radius. Missing
// coordinates default to central Paris; malformed ones yield an empty list.
func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon := 48.86, 2.33
	var err error
	if v := r.URL.Query().Get("lat"); v != "" {
		if lat, err = strconv.ParseFloat(v, 64); err != nil {
			writeJSON(w, http.StatusOK, []model.NearbyStylist{})
			return
		}
	}
	if v := r.URL.Query().Get("lon"); v != "" {
		if lon, err = strconv.ParseFloat(v, 64); err != nil {
			writeJSON(w, http.StatusOK, []model.NearbyStylist{})
			return
		}
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]model.NearbyStylist, 0)
	for _, id := range s.state.activeIDs() {
		sl := s.state.salons[id]
		if sl.lat == nil || sl.lng == nil {
			continue
		}
		d := catalog.Distance(lat, lon, *sl.lat, *sl.lng)
		if d >= catalog.NearbyRadiusKm {
			continue
		}
		out = append(out, model.NearbyStylist{
			ID:   id,
			Name: s.state.accounts[id].profile.Name,
			Lat:  *sl.lat,
			Lng:  *sl.lng,
			Dist: catalog.RoundKm(d),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	var req model.ReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", req.Date))
		return
	}
	at, err := time.Parse("15:04", req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time %q", req.Time))
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sl, ok := s.state.salons[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Stylist not found")
		return
	}
	service := "General"
	for _, sv := range sl.services {
		if sv.ID == req.ServiceID {
			service = sv.Name
		}
	}
	client := s.state.accounts[userID(r)]
	bid := s.state.id()
	s.state.bookings[bid] = &booking{
		Reservation: model.Reservation{
			ID:         bid,
			ClientName: client.profile.Name,
			Service:    service,
			Date:       date.Format("2006-01-02"),
			Time:       at.Format("15:04:05"),
			Status:     model.StatusPending,
			Notes:      req.Notes,
		},
		stylistID: id,
		clientID:  client.profile.ID,
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Reservation submitted", "id": bid})
}

func (s *Server) handleReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok || id != userID(r) {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	s.state.mu.Lock()
	out := make([]model.Reservation, 0)
	for _, b := range s.state.bookings {
		if b.stylistID == id {
			out = append(out, b.Reservation)
		}
	}
	s.state.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	_ = decodeJSON(r, &body)
	if !model.ValidReservationStatus(body.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	b, ok := s.state.bookings[id]
	if !ok || b.stylistID != userID(r) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	b.Status = body.Status
	writeMessage(w, http.StatusOK, "Updated")
}

// stylistSession returns the salon of the session user, or writes 403.
// Must be called with the state lock held.
func (s *Server) stylistSession(w http.ResponseWriter, r *http.Request) (*salon, bool) {
	sl, ok := s.state.salons[userID(r)]
	if !ok {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return nil, false
	}
	return sl, true
}

func (s *Server) handleAddMenu(w http.ResponseWriter, r *http.Request) {
	var item model.NewMenuItem
	if err := decodeJSON(r, &item); err != nil || item.Name == "" {
		writeError(w, http.StatusBadRequest, "Name and price are required")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sl, ok := s.stylistSession(w, r)
	if !ok {
		return
	}
	id := s.state.id()
	sl.menu = append(sl.menu, model.MenuItem{ID: id, Name: item.Name, Price: item.Price, Description: item.Description})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Item added", "id": id})
}

func (s *Server) handleDeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sl, ok := s.stylistSession(w, r)
	if !ok {
		return
	}
	for i, m := range sl.menu {
		if m.ID == id {
			sl.menu = append(sl.menu[:i], sl.menu[i+1:]...)
			writeMessage(w, http.StatusOK, "Deleted")
			return
		}
	}
	writeError(w, http.StatusNotFound, "Not found")
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sl, ok := s.stylistSession(w, r)
	if !ok {
		return
	}
	sl.lat, sl.lng = body.Latitude, body.Longitude
	writeMessage(w, http.StatusOK, "Location updated")
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sl, ok := s.stylistSession(w, r)
	if !ok {
		return
	}
	images := []string{}
	for _, hdr := range r.MultipartForm.File["pub_images"] {
		images = append(images, "/static/uploads/pub_"+filepath.Base(hdr.Filename))
	}
	id := s.state.id()
	sl.feed = append([]model.Publication{{ID: id, Text: r.FormValue("text"), Images: images, CreatedAt: today()}}, sl.feed...)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Published", "id": id})
}

func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	_, hdr, err := r.FormFile("avatar_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, ok := s.stylistSession(w, r); !ok {
		return
	}
	url := "/static/uploads/avatar_" + filepath.Base(hdr.Filename)
	s.state.accounts[userID(r)].profile.Image = url
	writeJSON(w, http.StatusOK, map[string]any{"message": "Avatar updated", "image_url": url})
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req model.MobileRequest
	if err := decodeJSON(r, &req); err != nil || req.Service == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "Service and location are required")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.requests = append(s.state.requests, model.MobileRequestView{
		ID:       s.state.id(),
		Service:  req.Service,
		Location: req.Location,
		Date:     req.Date,
		Time:     req.Time,
	})
	writeMessage(w, http.StatusCreated, "Request broadcast")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acc := s.state.accounts[userID(r)]
	if acc == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var out model.Dashboard
	switch acc.profile.Type {
	case model.UserClient:
		out.Proposals = []model.PriceProposal{}
	case model.UserCoiffeur:
		sl := s.state.salons[acc.profile.ID]
		out.Profile = &model.DashboardProfile{
			Category: sl.category,
			Rating:   sl.rating,
			Capacity: sl.capacity,
			Waiting:  sl.waiting,
		}
		if sl.category == model.CategoryMobile {
			out.DeplacementRequests = append([]model.MobileRequestView{}, s.state.requests...)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
