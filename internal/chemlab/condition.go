package chemlab

import (
	"fmt"
	"strings"
)

// Temperature is the environmental temperature state of the vessel.
type Temperature string

const (
	TemperatureRoom Temperature = "room"
	TemperatureHot  Temperature = "hot"
	TemperatureCold Temperature = "cold"
)

// Concentration is the solution concentration state of the vessel.
type Concentration string

const (
	ConcentrationDilute       Concentration = "dilute"
	ConcentrationConcentrated Concentration = "concentrated"
)

// ParseTemperature validates a temperature string at the API boundary.
// The matcher assumes its inputs already passed this check.
func ParseTemperature(s string) (Temperature, error) {
	switch Temperature(strings.ToLower(strings.TrimSpace(s))) {
	case TemperatureRoom:
		return TemperatureRoom, nil
	case TemperatureHot:
		return TemperatureHot, nil
	case TemperatureCold:
		return TemperatureCold, nil
	case "":
		return TemperatureRoom, nil
	default:
		return "", fmt.Errorf("invalid temperature %q: must be one of room, hot, cold", s)
	}
}

// ParseConcentration validates a concentration string at the API boundary.
func ParseConcentration(s string) (Concentration, error) {
	switch Concentration(strings.ToLower(strings.TrimSpace(s))) {
	case ConcentrationDilute:
		return ConcentrationDilute, nil
	case ConcentrationConcentrated:
		return ConcentrationConcentrated, nil
	case "":
		return ConcentrationDilute, nil
	default:
		return "", fmt.Errorf("invalid concentration %q: must be one of dilute, concentrated", s)
	}
}

// Condition is a rule's environmental predicate. An empty field matches
// any value, so the zero Condition matches every environment.
type Condition struct {
	Temperature   Temperature
	Concentration Concentration
}

// Matches reports whether the predicate accepts the given environment.
func (c Condition) Matches(temp Temperature, conc Concentration) bool {
	if c.Temperature != "" && c.Temperature != temp {
		return false
	}
	if c.Concentration != "" && c.Concentration != conc {
		return false
	}
	return true
}

// Any reports whether the predicate accepts every environment.
func (c Condition) Any() bool {
	return c.Temperature == "" && c.Concentration == ""
}
