package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/plutoniumm/quantum-gates/internal/circuit"
)

// DefaultBaseURL is the provider API endpoint.
const DefaultBaseURL = "https://api.quantum-computing.ibm.com/runtime"

// Provider gives access to the devices of one account instance.
type Provider struct {
	baseURL  string
	instance string
	token    string
	client   *http.Client
}

// Instance identifies the hub/group/project a device is accessed under.
type Instance struct {
	Hub     string
	Group   string
	Project string
}

// String renders the instance in the "hub/group/project" wire form.
func (i Instance) String() string {
	return fmt.Sprintf("%s/%s/%s", i.Hub, i.Group, i.Project)
}

// ParseInstance parses "hub/group/project".
func ParseInstance(s string) (Instance, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Instance{}, fmt.Errorf("backend: invalid instance %q, want hub/group/project", s)
	}
	return Instance{Hub: parts[0], Group: parts[1], Project: parts[2]}, nil
}

// ProviderOption customizes a Provider.
type ProviderOption func(*Provider)

// WithBaseURL points the provider at a different API endpoint (tests).
func WithBaseURL(u string) ProviderOption {
	return func(p *Provider) { p.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) { p.client = c }
}

// NewProvider builds a provider for the stored account and instance.
func NewProvider(store *CredentialStore, inst Instance, opts ...ProviderOption) (*Provider, error) {
	acct, err := store.LoadAccount()
	if err != nil {
		return nil, err
	}
	p := &Provider{
		baseURL:  DefaultBaseURL,
		instance: inst.String(),
		token:    acct.Token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// deviceConfig is the wire form of a device description.
type deviceConfig struct {
	Name       string             `json:"backend_name"`
	NQubits    int                `json:"n_qubits"`
	BasisGates []string           `json:"basis_gates"`
	Coupling   [][2]int           `json:"coupling_map"`
	Simulator  bool               `json:"simulator"`
	Durations  map[string]float64 `json:"gate_durations_ns"`
}

type deviceList struct {
	Devices []string `json:"devices"`
}

// Backend fetches the named device configuration.
func (p *Provider) Backend(ctx context.Context, name string) (*Device, error) {
	var cfg deviceConfig
	if err := p.get(ctx, "/backends/"+url.PathEscape(name), &cfg); err != nil {
		return nil, err
	}
	if cfg.NQubits < 1 {
		return nil, fmt.Errorf("backend: device %s reports %d qubits", name, cfg.NQubits)
	}

	var cm *circuit.CouplingMap
	if len(cfg.Coupling) > 0 {
		var err error
		cm, err = circuit.NewCouplingMap(cfg.NQubits, cfg.Coupling)
		if err != nil {
			return nil, fmt.Errorf("backend: device %s: %w", name, err)
		}
	}

	durs := make(map[string]time.Duration, len(cfg.Durations))
	for gate, ns := range cfg.Durations {
		durs[gate] = time.Duration(ns * float64(time.Nanosecond))
	}

	return &Device{
		DeviceName: cfg.Name,
		Qubits:     cfg.NQubits,
		Basis:      cfg.BasisGates,
		Coupling:   cm,
		Durations:  durs,
		Simulator:  cfg.Simulator,
	}, nil
}

// Backends lists the device names visible to this instance.
func (p *Provider) Backends(ctx context.Context) ([]string, error) {
	var list deviceList
	if err := p.get(ctx, "/backends", &list); err != nil {
		return nil, err
	}
	return list.Devices, nil
}

func (p *Provider) get(ctx context.Context, path string, out interface{}) error {
	u := p.baseURL + path + "?instance=" + url.QueryEscape(p.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("backend: %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s: %w", path, err)
	}
	return nil
}
