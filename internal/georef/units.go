package georef

import (
	"fmt"
	"strings"
)

// Unit is a distance display unit.
type Unit struct {
	Name      string
	MetresPer float64
	Precision int
}

var (
	UnitMetre     = Unit{Name: "m", MetresPer: 1, Precision: 0}
	UnitKilometre = Unit{Name: "km", MetresPer: 1000, Precision: 2}
)

// ParseUnit accepts "m", "km" or "name=metres" for a user unit,
// e.g. "verst=1066.8".
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "m", "metre", "meter":
		return UnitMetre, nil
	case "km", "kilometre", "kilometer":
		return UnitKilometre, nil
	}
	name, val, ok := strings.Cut(s, "=")
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit %q", s)
	}
	var per float64
	if _, err := fmt.Sscanf(val, "%g", &per); err != nil || per <= 0 {
		return Unit{}, fmt.Errorf("unit %q: invalid metres factor %q", name, val)
	}
	return Unit{Name: strings.TrimSpace(name), MetresPer: per, Precision: 2}, nil
}

func (u Unit) Format(metres float64) string {
	per := u.MetresPer
	if per <= 0 {
		per = 1
	}
	return fmt.Sprintf("%.*f %s", u.Precision, metres/per, u.Name)
}

// Spec is the string ParseUnit reads back into u.
func (u Unit) Spec() string {
	if u == UnitMetre || u == UnitKilometre {
		return u.Name
	}
	return fmt.Sprintf("%s=%g", u.Name, u.MetresPer)
}
