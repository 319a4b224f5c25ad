package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"addrgen/internal/config"
	"addrgen/models"
)

// ErrNoResults is returned when the people generator answers with an empty
// results array.
var ErrNoResults = errors.New("randomuser: no results")

// Person is the subset of a generated profile we use.
type Person struct {
	First  string
	Last   string
	Gender string
}

// PeopleClient talks to a randomuser.me compatible API.
type PeopleClient struct {
	baseURL string
	http    *http.Client
}

// NewPeopleClient creates a client from cfg.
func NewPeopleClient(cfg config.PeopleConfig) *PeopleClient {
	return &PeopleClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// RandomPerson requests one profile of the given nationality and gender.
// Empty nat leaves the nationality unconstrained.
func (c *PeopleClient) RandomPerson(ctx context.Context, nat string, gender models.Gender) (*Person, error) {
	q := url.Values{}
	if nat != "" {
		q.Set("nat", nat)
	}
	if gender == models.GenderMale || gender == models.GenderFemale {
		q.Set("gender", gender.Lower())
	}

	u := c.baseURL + "/api/"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("random person: create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("random person: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("random person: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var out peopleResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("random person: unmarshal: %w", err)
	}
	if out.Error != "" {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if len(out.Results) == 0 {
		return nil, ErrNoResults
	}

	r := out.Results[0]
	return &Person{First: r.Name.First, Last: r.Name.Last, Gender: r.Gender}, nil
}

// HTTPError is a failed people generator response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("randomuser: %s (status %d)", e.Message, e.StatusCode)
}

// json wire types

type peopleResponse struct {
	Error   string `json:"error"`
	Results []struct {
		Gender string `json:"gender"`
		Name   struct {
			Title string `json:"title"`
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Nat string `json:"nat"`
	} `json:"results"`
}
