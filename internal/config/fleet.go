package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/flight-checkin/internal/seating"
)

// Agent roles accepted by the API.
const (
	RoleAgent      = "AGENT"
	RoleSupervisor = "SUPERVISOR"
)

// Fleet is the root of the fleet file.
type Fleet struct {
	Flights []FlightConfig  `yaml:"flights"`
	Weights seating.Weights `yaml:"weights"`
	Agents  []AgentConfig   `yaml:"agents"`
}

// FlightConfig names one flight and the seat map it is built from.
type FlightConfig struct {
	Number  string `yaml:"number"`
	SeatMap string `yaml:"seatmap"` // relative paths are resolved against the fleet file
}

// AgentConfig is a check-in agent allowed to log into the API.
type AgentConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
	Role         string `yaml:"role"`
}

// LoadFleet reads and validates the fleet file at path.  Penalty weights
// left out of the file keep their default values.
func LoadFleet(path string) (*Fleet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet file: %w", err)
	}

	f := Fleet{Weights: seating.DefaultWeights()}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fleet file: %w", err)
	}

	dir := filepath.Dir(path)
	for i := range f.Flights {
		if p := f.Flights[i].SeatMap; p != "" && !filepath.IsAbs(p) {
			f.Flights[i].SeatMap = filepath.Join(dir, p)
		}
	}
	for i := range f.Agents {
		f.Agents[i].Role = strings.ToUpper(strings.TrimSpace(f.Agents[i].Role))
		if f.Agents[i].Role == "" {
			f.Agents[i].Role = RoleAgent
		}
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fleet file: %w", err)
	}
	return &f, nil
}

// Validate checks the fleet for missing fields and duplicates.
func (f *Fleet) Validate() error {
	var errs []error
	if len(f.Flights) == 0 {
		errs = append(errs, errors.New("no flights configured"))
	}
	seen := map[string]bool{}
	for i, fl := range f.Flights {
		switch {
		case fl.Number == "":
			errs = append(errs, fmt.Errorf("flights[%d]: number is required", i))
		case seen[fl.Number]:
			errs = append(errs, fmt.Errorf("flights[%d]: duplicate flight %s", i, fl.Number))
		}
		seen[fl.Number] = true
		if fl.SeatMap == "" {
			errs = append(errs, fmt.Errorf("flights[%d]: seatmap is required", i))
		}
	}
	if err := f.Weights.Validate(); err != nil {
		errs = append(errs, err)
	}
	users := map[string]bool{}
	for i, a := range f.Agents {
		if a.Username == "" || a.PasswordHash == "" {
			errs = append(errs, fmt.Errorf("agents[%d]: username and password_hash are required", i))
		}
		if users[a.Username] {
			errs = append(errs, fmt.Errorf("agents[%d]: duplicate username %s", i, a.Username))
		}
		users[a.Username] = true
		if a.Role != RoleAgent && a.Role != RoleSupervisor {
			errs = append(errs, fmt.Errorf("agents[%d]: unknown role %q", i, a.Role))
		}
	}
	return errors.Join(errs...)
}

// Agent looks up an agent by username.
func (f *Fleet) Agent(username string) (AgentConfig, bool) {
	for _, a := range f.Agents {
		if a.Username == username {
			return a, true
		}
	}
	return AgentConfig{}, false
}
