package irf

import "fmt"

// Kind selects the unit convention of a table.
type Kind int

const (
	EfficiencyUnits Kind = iota
	PerCapita
	Levels
)

var kindNames = [...]string{
	EfficiencyUnits: "efficiency_units",
	PerCapita:       "per_capita",
	Levels:          "levels",
}

func Kinds() []Kind {
	return []Kind{EfficiencyUnits, PerCapita, Levels}
}

func (k Kind) Valid() bool {
	return k >= EfficiencyUnits && k <= Levels
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, &ConfigurationError{
		Field:  "kind",
		Reason: fmt.Sprintf("%q must be one of %v", name, kindNames),
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &ConfigurationError{Field: "kind", Reason: k.String()}
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
