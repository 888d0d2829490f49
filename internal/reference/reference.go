// Package reference provides the static data the planner converts against:
// the country/city timezone table, the base timezones a session may be
// entered in, and course name suggestions.
package reference

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/pkordes/tzplanner/internal/domain"
)

//go:embed reference.json
var embedded []byte

// Data is the decoded reference table. Countries keeps file order, which is
// the order conversion rows are emitted in for every session.
type Data struct {
	DefaultTimezone string                  `json:"default_timezone"`
	BaseTimezones   []string                `json:"base_timezones"`
	Courses         []string                `json:"courses"`
	Countries       []domain.ReferenceEntry `json:"countries"`
}

// Load returns the reference data compiled into the binary.
func Load() (Data, error) {
	return Parse(embedded)
}

// LoadFile reads reference data from path, in the same JSON shape as the
// embedded file. An empty path falls back to Load.
func LoadFile(path string) (Data, error) {
	if path == "" {
		return Load()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("reference.LoadFile: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates reference data.
// Every timezone must resolve in the tz database and the default timezone
// must be one of the base timezones.
func Parse(b []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("reference.Parse: %w", err)
	}
	if err := d.validate(); err != nil {
		return Data{}, fmt.Errorf("reference.Parse: %w", err)
	}
	return d, nil
}

// IsBaseTimezone reports whether name is one of the selectable base timezones.
func (d Data) IsBaseTimezone(name string) bool {
	return slices.Contains(d.BaseTimezones, name)
}

func (d Data) validate() error {
	var problems []string

	if len(d.BaseTimezones) == 0 {
		problems = append(problems, "base_timezones is empty")
	}
	for _, tz := range d.BaseTimezones {
		if err := checkTimezone(tz); err != nil {
			problems = append(problems, fmt.Sprintf("base timezone %q: %v", tz, err))
		}
	}
	if !d.IsBaseTimezone(d.DefaultTimezone) {
		problems = append(problems, fmt.Sprintf("default timezone %q is not a base timezone", d.DefaultTimezone))
	}
	for i, c := range d.Countries {
		if c.Country == "" || c.Timezone == "" {
			problems = append(problems, fmt.Sprintf("countries[%d]: country and timezone are required", i))
			continue
		}
		if err := checkTimezone(c.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("countries[%d] %s: %v", i, c.Country, err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid reference data: %s", strings.Join(problems, "; "))
	}
	return nil
}

// checkTimezone accepts IANA names only. time.LoadLocation also resolves
// "Local" to the host zone, which would make conversions host-dependent.
func checkTimezone(name string) error {
	if name == "Local" {
		return fmt.Errorf("unknown time zone %q", name)
	}
	_, err := time.LoadLocation(name)
	return err
}
