package devserver

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"path/filepath"

	"myhair/internal/model"
)

func confirmationCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acc := s.state.accountByEmail(body.Email)
	if acc == nil || acc.password != body.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.startSession(w, acc.profile.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    acc.profile,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.state.mu.Lock()
		delete(s.state.sessions, c.Value)
		s.state.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// handleCheck answers {"user": profile} for a live session.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentProfile(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": p})
}

// handleMe answers the bare profile, with the camelCase confirmation flag.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentProfile(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"email":       p.Email,
		"type":        p.Type,
		"city":        p.City,
		"isConfirmed": p.IsConfirmed,
		"image":       p.Image,
	})
}

func (s *Server) currentProfile(r *http.Request) (model.Profile, bool) {
	id, ok := s.sessionUser(r)
	if !ok {
		return model.Profile{}, false
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acc, ok := s.state.accounts[id]
	if !ok {
		return model.Profile{}, false
	}
	return acc.profile, true
}

func (s *Server) handleSignupClient(w http.ResponseWriter, r *http.Request) {
	var form model.ClientSignup
	if err := decodeJSON(r, &form); err != nil || form.Email == "" || form.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.state.accountByEmail(form.Email) != nil {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	id := s.state.id()
	s.state.accounts[id] = &account{
		profile:  model.Profile{ID: id, Name: form.Name, Email: form.Email, Type: model.UserClient, City: form.City},
		password: form.Password,
		phone:    form.Phone,
		code:     confirmationCode(),
	}
	s.startSession(w, id)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Account created", "userId": id})
}

var defaultAvatars = map[string]string{
	model.CategoryMen:    "/static/avatar/man.png",
	model.CategoryWomen:  "/static/avatar/woman.png",
	model.CategoryMobile: "/static/avatar/dep.png",
}

func (s *Server) handleSignupCoiffeur(w http.ResponseWriter, r *http.Request) {
	// the transfer proof is optional, so a plain urlencoded form is accepted too
	if err := r.ParseMultipartForm(10 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	email := r.FormValue("email")
	if email == "" || r.FormValue("password") == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var proof string
	if _, hdr, err := r.FormFile("virement_proof"); err == nil {
		proof = "/static/uploads/virement_" + filepath.Base(hdr.Filename)
	}

	category := r.FormValue("category")
	image, ok := defaultAvatars[category]
	if !ok {
		image = "/static/uploads/default_coiffeur.png"
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.state.accountByEmail(email) != nil {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	id := s.state.id()
	s.state.accounts[id] = &account{
		profile: model.Profile{
			ID:    id,
			Name:  r.FormValue("name"),
			Email: email,
			Type:  model.UserCoiffeur,
			City:  r.FormValue("city"),
			Image: image,
		},
		password: r.FormValue("password"),
		phone:    r.FormValue("phone"),
		code:     confirmationCode(),
	}
	s.state.salons[id] = &salon{
		category:      category,
		description:   r.FormValue("description"),
		address:       r.FormValue("address"),
		subscribers:   map[int]bool{},
		virementProof: proof,
	}
	s.startSession(w, id)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Account created", "userId": id})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	_ = decodeJSON(r, &body)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acc := s.state.accounts[userID(r)]
	if acc == nil || body.Code == "" || body.Code != acc.code {
		writeError(w, http.StatusBadRequest, "Invalid code")
		return
	}
	acc.profile.IsConfirmed = true
	acc.code = ""
	if sl, ok := s.state.salons[acc.profile.ID]; ok {
		sl.active = true
	}
	writeMessage(w, http.StatusOK, "Account confirmed successfully")
}

func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	_ = decodeJSON(r, &body)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if acc := s.state.accountByEmail(body.Email); acc != nil {
		acc.code = confirmationCode()
		writeMessage(w, http.StatusOK, "Reset code sent")
		return
	}
	writeMessage(w, http.StatusOK, "If account exists, code sent")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	_ = decodeJSON(r, &body)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acc := s.state.accountByEmail(body.Email)
	if acc == nil || acc.code == "" || acc.code != body.Code || body.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Invalid email or code")
		return
	}
	acc.password = body.NewPassword
	acc.code = ""
	writeMessage(w, http.StatusOK, "Password reset successfully")
}
