package evohome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// Vendor endpoint defaults. Overridable for tests.
const (
	defaultBaseURL  = "https://tccna.honeywell.com/WebAPI/emea/api/v1"
	defaultTokenURL = "https://tccna.honeywell.com/Auth/OAuth/Token"

	// defaultClientID is the public application identifier the vendor
	// issues for third-party API access.
	defaultClientID = "b013aa26-9724-4dbd-8897-048b9aada249"
)

// Config holds the settings needed to open a vendor API session.
type Config struct {
	// Username and Password are the vendor account credentials.
	// The client does not retain them after Connect returns.
	Username string
	Password string

	// BaseURL and TokenURL override the vendor endpoints (tests only).
	BaseURL  string
	TokenURL string
}

// Client is an authenticated session against the vendor cloud API.
//
// It exposes the explicit topology traversal the bridge needs (account →
// installations → controller → status) against the vendor's documented
// REST endpoints; no undocumented internals are touched.
//
// The location identifier required for status polls is held privately so
// that the redacted Topology handed to the rest of the bridge never
// carries it.
type Client struct {
	http    *http.Client
	baseURL string

	userID     string
	locationID string
	systemID   string
}

// Connect authenticates once against the vendor API and returns a session.
//
// The OAuth2 password grant is exchanged immediately; token refresh is
// handled transparently by the returned client for the life of the
// process.
//
// Returns a distinguishable error for each startup failure class:
// ErrBadCredentials, ErrServiceUnavailable, or ErrRateLimited. Any other
// HTTP failure is wrapped and propagated unchanged.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	conf := &oauth2.Config{
		ClientID: defaultClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	token, err := conf.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("evohome: authenticating: %w", mapOAuthError(err))
	}

	// The token source lives beyond the startup context.
	httpClient := conf.Client(context.Background(), token)

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
	}, nil
}

// Bootstrap fetches the installation topology for the account, selects the
// configured location, and returns a redacted, immutable view of it.
//
// The topology is fetched exactly once; children are not added or removed
// without a restart. An index beyond the returned installations fails
// cleanly with ErrLocationIndex. A location whose gateway does not carry
// exactly one temperature control system fails with ErrBadTopology.
func (c *Client) Bootstrap(ctx context.Context, locationIdx int) (*Topology, error) {
	account := struct {
		UserID string `json:"userId"`
	}{}
	if err := c.get(ctx, "/userAccount", &account); err != nil {
		return nil, fmt.Errorf("evohome: fetching account: %w", err)
	}
	c.userID = account.UserID

	var installations []Installation
	path := "/location/installationInfo?userId=" + url.QueryEscape(account.UserID) +
		"&includeTemperatureControlSystems=True"
	if err := c.get(ctx, path, &installations); err != nil {
		return nil, fmt.Errorf("evohome: fetching installations: %w", err)
	}

	if locationIdx < 0 || locationIdx >= len(installations) {
		return nil, fmt.Errorf("%w: index %d, have %d installation(s)",
			ErrLocationIndex, locationIdx, len(installations))
	}

	inst := installations[locationIdx]
	if len(inst.Gateways) != 1 || len(inst.Gateways[0].TemperatureControlSystems) != 1 {
		return nil, fmt.Errorf("%w: want 1 gateway with 1 controller, have %d gateway(s)",
			ErrBadTopology, len(inst.Gateways))
	}
	tcs := inst.Gateways[0].TemperatureControlSystems[0]

	// Keep the identifiers needed for status polls, then redact.
	c.locationID = inst.LocationInfo.LocationID
	c.systemID = tcs.SystemID
	inst.Redact()

	topo := &Topology{
		LocationName: inst.LocationInfo.Name,
		SystemID:     tcs.SystemID,
		ModelType:    tcs.ModelType,
		Zones:        make([]ZoneInfo, 0, len(tcs.Zones)),
	}
	for _, z := range tcs.Zones {
		topo.Zones = append(topo.Zones, ZoneInfo{ID: z.ZoneID, Name: z.Name, Type: z.ZoneType})
	}
	if tcs.DHW != nil {
		topo.DHW = &DHWInfo{ID: tcs.DHW.DHWID}
	}

	return topo, nil
}

// SystemStatus polls the live status of the bridged controller and all of
// its children. The caller replaces its status snapshot wholesale with the
// result.
//
// Rate-limit responses surface as ErrRateLimited so the poller can back
// off; every other failure is fatal to this poll and propagates.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	if c.locationID == "" {
		return nil, fmt.Errorf("evohome: status poll before bootstrap")
	}

	var status LocationStatus
	path := "/location/" + url.PathEscape(c.locationID) + "/status?includeTemperatureControlSystems=True"
	if err := c.get(ctx, path, &status); err != nil {
		return nil, fmt.Errorf("evohome: fetching status: %w", err)
	}

	if len(status.Gateways) != 1 || len(status.Gateways[0].TemperatureControlSystems) != 1 {
		return nil, fmt.Errorf("%w: status tree shape changed", ErrBadTopology)
	}

	tcs := status.Gateways[0].TemperatureControlSystems[0]
	return &tcs, nil
}

// SetSystemMode would command a new controller operating mode.
//
// Writing to the vendor API is not wired up yet; callers receive
// ErrNotSupported and must surface it rather than no-op silently.
func (c *Client) SetSystemMode(_ context.Context, mode string) error {
	return fmt.Errorf("%w: set system mode %q", ErrNotSupported, mode)
}

// SetZoneMode would command a new zone override mode.
//
// Not wired to the vendor API yet; always returns ErrNotSupported.
func (c *Client) SetZoneMode(_ context.Context, zoneID string, mode string) error {
	return fmt.Errorf("%w: set zone %s mode %q", ErrNotSupported, zoneID, mode)
}

// SetZoneTemperature would command a new zone setpoint.
//
// Not wired to the vendor API yet; always returns ErrNotSupported.
func (c *Client) SetZoneTemperature(_ context.Context, zoneID string, target float64) error {
	return fmt.Errorf("%w: set zone %s target %.1f", ErrNotSupported, zoneID, target)
}

// get performs an authenticated GET against the vendor API and decodes the
// JSON response body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Token refresh failures surface here as oauth2 errors.
		return mapOAuthError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// statusError maps an HTTP status code onto the vendor error taxonomy.
// Codes outside the taxonomy become an *APIError (fatal, not retried).
func statusError(code int) error {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return ErrBadCredentials
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return &APIError{StatusCode: code}
	}
}

// mapOAuthError unwraps an oauth2 token retrieval failure and maps its
// HTTP status onto the vendor error taxonomy.
func mapOAuthError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return statusError(rerr.Response.StatusCode)
	}
	return err
}
