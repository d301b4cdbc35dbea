package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/repository"
)

// StatusError reports a non-2xx response from the remote API, carrying the
// numeric status code for callers that branch on it.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote API returned status %d for %s", e.StatusCode, e.URL)
}

// TokenSource supplies the bearer token attached to every request. An empty
// return value leaves the Authorization header unset.
type TokenSource func() string

// Client performs network calls against the real training-log backend,
// translating between the snake_case wire format and the internal model.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// NewClient builds a remote accessor for the given base URL.
func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		token:      token,
	}
}

// Trainings returns the TrainingRepository view of the client.
func (c *Client) Trainings() repository.TrainingRepository {
	return &trainingClient{c}
}

// Planned returns the PlannedRepository view of the client.
func (c *Client) Planned() repository.PlannedRepository {
	return &plannedClient{c}
}

// do issues a request with JSON body/response handling. A nil out skips
// decoding. Non-2xx responses become *StatusError, with 404 mapped to
// repository.ErrNotFound so callers get one NotFound currency everywhere.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return repository.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

func listQuery(limit, offset int) url.Values {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	return query
}

// ---- trainings ----

type trainingClient struct{ *Client }

func (c *trainingClient) List(ctx context.Context, limit, offset int) ([]domain.TrainingRecord, error) {
	var wires []trainingWire
	if err := c.do(ctx, http.MethodGet, "/trainings", listQuery(limit, offset), nil, &wires); err != nil {
		return nil, err
	}
	records := make([]domain.TrainingRecord, 0, len(wires))
	for _, w := range wires {
		record, err := trainingFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("invalid training %q in response: %w", w.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *trainingClient) GetByID(ctx context.Context, id string) (*domain.TrainingRecord, error) {
	var w trainingWire
	if err := c.do(ctx, http.MethodGet, "/trainings/"+url.PathEscape(id), nil, nil, &w); err != nil {
		return nil, err
	}
	record, err := trainingFromWire(w)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *trainingClient) Create(ctx context.Context, record *domain.TrainingRecord) (*domain.TrainingRecord, error) {
	var w trainingWire
	if err := c.do(ctx, http.MethodPost, "/trainings", nil, trainingToWire(*record), &w); err != nil {
		return nil, err
	}
	created, err := trainingFromWire(w)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *trainingClient) Update(ctx context.Context, id string, patch domain.TrainingPatch) (*domain.TrainingRecord, error) {
	var w trainingWire
	if err := c.do(ctx, http.MethodPut, "/trainings/"+url.PathEscape(id), nil, trainingPatchToWire(patch), &w); err != nil {
		return nil, err
	}
	updated, err := trainingFromWire(w)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *trainingClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/trainings/"+url.PathEscape(id), nil, nil, nil)
}

// ---- planned trainings ----

type plannedClient struct{ *Client }

func (c *plannedClient) List(ctx context.Context, limit, offset int) ([]domain.PlannedTraining, error) {
	var wires []plannedWire
	if err := c.do(ctx, http.MethodGet, "/planned-trainings", listQuery(limit, offset), nil, &wires); err != nil {
		return nil, err
	}
	plans := make([]domain.PlannedTraining, 0, len(wires))
	for _, w := range wires {
		plan, err := plannedFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("invalid planned training %q in response: %w", w.ID, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (c *plannedClient) GetByID(ctx context.Context, id string) (*domain.PlannedTraining, error) {
	var w plannedWire
	if err := c.do(ctx, http.MethodGet, "/planned-trainings/"+url.PathEscape(id), nil, nil, &w); err != nil {
		return nil, err
	}
	plan, err := plannedFromWire(w)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *plannedClient) Create(ctx context.Context, plan *domain.PlannedTraining) (*domain.PlannedTraining, error) {
	var w plannedWire
	if err := c.do(ctx, http.MethodPost, "/planned-trainings", nil, plannedToWire(*plan), &w); err != nil {
		return nil, err
	}
	created, err := plannedFromWire(w)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *plannedClient) Update(ctx context.Context, id string, patch domain.PlannedPatch) (*domain.PlannedTraining, error) {
	var w plannedWire
	if err := c.do(ctx, http.MethodPut, "/planned-trainings/"+url.PathEscape(id), nil, plannedPatchToWire(patch), &w); err != nil {
		return nil, err
	}
	updated, err := plannedFromWire(w)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *plannedClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/planned-trainings/"+url.PathEscape(id), nil, nil, nil)
}

// ---- auth ----

// Credentials is the login payload for the remote auth endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the remote auth response: a bearer token plus the user it
// belongs to.
type Session struct {
	Token string
	User  domain.User
}

type sessionWire struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

// Registration is the sign-up payload for the remote auth endpoint.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account via POST /auth/register. New athlete accounts
// come back pending until a coach approves them.
func (c *Client) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	var w userWire
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &w); err != nil {
		return nil, err
	}
	user := userFromWire(w)
	return &user, nil
}

// Login authenticates against POST /auth/login.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var w sessionWire
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &w); err != nil {
		return nil, err
	}
	return &Session{Token: w.Token, User: userFromWire(w.User)}, nil
}

// Logout invalidates the current session via POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me fetches the current user via GET /auth/me.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var w userWire
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &w); err != nil {
		return nil, err
	}
	user := userFromWire(w)
	return &user, nil
}

// UpdateProfile sends a partial profile update via PUT /auth/profile.
func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) error {
	body := map[string]any{}
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Email != nil {
		body["email"] = *patch.Email
	}
	return c.do(ctx, http.MethodPut, "/auth/profile", nil, body, nil)
}
