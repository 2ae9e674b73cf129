package domain

import "fmt"

// ScenarioKind identifies one of the three exit structures.
type ScenarioKind int

const (
	EarnOut ScenarioKind = iota
	SellerFinancing
	AllCash
)

// ScenarioKinds lists every kind in display order.
var ScenarioKinds = []ScenarioKind{EarnOut, SellerFinancing, AllCash}

func (k ScenarioKind) String() string {
	switch k {
	case EarnOut:
		return "earnOut"
	case SellerFinancing:
		return "sellerFinancing"
	case AllCash:
		return "allCash"
	}
	return fmt.Sprintf("ScenarioKind(%d)", int(k))
}

func (k ScenarioKind) MarshalText() ([]byte, error) {
	switch k {
	case EarnOut, SellerFinancing, AllCash:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown scenario kind %d", int(k))
}

func (k *ScenarioKind) UnmarshalText(text []byte) error {
	kind, err := ParseScenarioKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseScenarioKind maps the wire name of a scenario to its kind.
func ParseScenarioKind(name string) (ScenarioKind, error) {
	for _, k := range ScenarioKinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown scenario %q", name)
}
