package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// stateStore tracks outstanding OAuth state tokens. In-memory is fine for a
// single process; states are single-use.
type stateStore struct {
	mu     sync.Mutex
	states map[string]bool
}

func newStateStore() *stateStore {
	return &stateStore{states: make(map[string]bool)}
}

func (s *stateStore) add(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = true
}

// consume removes a state and reports whether it was outstanding.
func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.states[state] {
		return false
	}
	delete(s.states, state)
	return true
}

// handleLinkedInAuth redirects the user to the LinkedIn authorization page.
func (s *Server) handleLinkedInAuth(w http.ResponseWriter, r *http.Request) {
	if s.cfg.OAuth.ClientID == "" {
		s.redirectAuthError(w, r, "not_configured")
		return
	}

	state := uuid.NewString()
	s.states.add(state)

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.cfg.OAuth.ClientID)
	params.Set("redirect_uri", s.cfg.OAuth.RedirectURI)
	params.Set("scope", "openid profile email")
	params.Set("state", state)

	http.Redirect(w, r, s.cfg.OAuth.AuthURL+"?"+params.Encode(), http.StatusFound)
}

// linkedinProfile mirrors the OpenID Connect userinfo response fields we use.
type linkedinProfile struct {
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// handleLinkedInCallback exchanges the authorization code for a token,
// fetches the user profile, and hands it to the frontend as a base64url
// payload. Every failure mode redirects back with an auth_error tag.
func (s *Server) handleLinkedInCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		s.redirectAuthError(w, r, errParam)
		return
	}
	if !s.states.consume(q.Get("state")) {
		s.redirectAuthError(w, r, "invalid_state")
		return
	}

	token, err := s.exchangeCode(r, q.Get("code"))
	if err != nil {
		s.logger.WithError(err).Warn("linkedin token exchange failed")
		s.redirectAuthError(w, r, "token_failed")
		return
	}

	profile, err := s.fetchProfile(r, token)
	if err != nil {
		s.logger.WithError(err).Warn("linkedin profile fetch failed")
		s.redirectAuthError(w, r, "profile_failed")
		return
	}

	user := map[string]string{
		"name":      profile.Name,
		"firstName": profile.GivenName,
		"lastName":  profile.FamilyName,
		"email":     profile.Email,
		"picture":   profile.Picture,
	}
	payload, _ := json.Marshal(user)
	encoded := base64.URLEncoding.EncodeToString(payload)
	http.Redirect(w, r, s.cfg.Server.FrontendURL+"?linkedin_user="+encoded, http.StatusFound)
}

func (s *Server) exchangeCode(r *http.Request, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.cfg.OAuth.RedirectURI)
	form.Set("client_id", s.cfg.OAuth.ClientID)
	form.Set("client_secret", s.cfg.OAuth.ClientSecret)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.cfg.OAuth.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}
	return tokenResp.AccessToken, nil
}

func (s *Server) fetchProfile(r *http.Request, token string) (*linkedinProfile, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, s.cfg.OAuth.UserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo returned status %d: %s", resp.StatusCode, body)
	}

	var profile linkedinProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Server) redirectAuthError(w http.ResponseWriter, r *http.Request, tag string) {
	http.Redirect(w, r, s.cfg.Server.FrontendURL+"?auth_error="+url.QueryEscape(tag), http.StatusFound)
}
