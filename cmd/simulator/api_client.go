package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient is a thin client over the backend REST API for seeding
// development data.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type SimUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type registerResponse struct {
	User        SimUser `json:"user"`
	AccessToken string  `json:"accessToken"`
}

func (c *APIClient) RegisterUser(email, displayName, location string) (*SimUser, string, error) {
	body := map[string]string{
		"email":       email,
		"password":    "simulator-pass-123",
		"displayName": displayName,
		"location":    location,
	}

	var resp registerResponse
	if err := c.post("/auth/register", "", body, &resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.AccessToken, nil
}

type claimResponse struct {
	Claimed  bool   `json:"claimed"`
	Released bool   `json:"released"`
	Notice   string `json:"notice"`
}

func (c *APIClient) ClaimSlot(token string, hourIdx int) (*claimResponse, error) {
	var resp claimResponse
	err := c.post(fmt.Sprintf("/watches/%d/claim", hourIdx), token, nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type simPrayer struct {
	ID string `json:"id"`
}

func (c *APIClient) PostPrayer(token, content string) (string, error) {
	var resp simPrayer
	err := c.post("/prayers", token, map[string]string{"content": content}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *APIClient) ListPrayers() ([]string, error) {
	var resp struct {
		Prayers []simPrayer `json:"prayers"`
	}
	if err := c.get("/prayers", &resp); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.Prayers))
	for _, p := range resp.Prayers {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (c *APIClient) Amen(token, prayerID string) error {
	return c.post("/prayers/"+prayerID+"/amen", token, nil, nil)
}

func (c *APIClient) Heartbeat(token string) error {
	return c.post("/presence/heartbeat", token, nil, nil)
}

type coverageResponse struct {
	Occupied int `json:"occupied"`
	Total    int `json:"total"`
}

func (c *APIClient) Coverage() (*coverageResponse, error) {
	var resp coverageResponse
	if err := c.get("/watches/coverage", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) post(path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d: %s", path, resp.StatusCode, string(data))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *APIClient) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d: %s", path, resp.StatusCode, string(data))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
