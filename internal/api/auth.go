package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"myhair/internal/model"
	"myhair/internal/telemetry"
)

// ErrNoProfile is returned when a 2xx login answer carries no user.
var ErrNoProfile = errors.New("response carried no user profile")

// CheckSession asks the backend who the session cookie belongs to. A nil
// profile with a nil error means the backend answered without a user.
// Both {"user": {...}} and a bare profile body are understood.
func (c *Client) CheckSession(ctx context.Context) (*model.Profile, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.SessionPath, &raw); err != nil {
		return nil, err
	}
	return decodeProfile(raw)
}

func decodeProfile(raw json.RawMessage) (*model.Profile, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var wrapped struct {
		User *model.Profile `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.User != nil {
		if !wrapped.User.Valid() {
			return nil, nil
		}
		return wrapped.User, nil
	}
	var bare model.Profile
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	if !bare.Valid() {
		return nil, nil
	}
	return &bare, nil
}

type loginResponse struct {
	Message string         `json:"message"`
	User    *model.Profile `json:"user"`
	Warning string         `json:"warning"`
}

// Login posts the credentials and returns the logged-in profile.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Profile, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.User.Valid() {
		return nil, ErrNoProfile
	}
	if resp.Warning != "" {
		telemetry.LogInfo("login warning", "warning", resp.Warning, "user_id", resp.User.ID)
	}
	return resp.User, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

type signupResponse struct {
	UserID int `json:"userId"`
}

// SignupClient registers a client account and returns its id. The backend
// logs the new account in.
func (c *Client) SignupClient(ctx context.Context, form model.ClientSignup) (int, error) {
	var resp signupResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/signup/client", form, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// SignupCoiffeur registers a stylist account. The optional transfer proof
// is uploaded from the local path in VirementProof.
func (c *Client) SignupCoiffeur(ctx context.Context, form model.CoiffeurSignup) (int, error) {
	mp := newMultipart()
	mp.field("name", form.Name)
	mp.field("email", form.Email)
	mp.field("password", form.Password)
	mp.field("city", form.City)
	mp.field("phone", form.Phone)
	mp.field("category", form.Category)
	mp.field("description", form.Description)
	mp.field("address", form.Address)
	mp.field("virement_name", form.VirementName)
	if form.VirementProof != "" {
		mp.file("virement_proof", form.VirementProof)
	}
	body, contentType, err := mp.finish()
	if err != nil {
		return 0, err
	}

	var resp signupResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup/coiffeur", body, contentType, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// ConfirmEmail submits the emailed confirmation code for the current session.
func (c *Client) ConfirmEmail(ctx context.Context, code string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/confirm", map[string]string{"code": code}, nil)
}

// ForgotPassword requests a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/forgot", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using the emailed code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	payload := map[string]string{"email": email, "code": code, "new_password": newPassword}
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/reset", payload, nil)
}
