package shape

import "strings"

// Kind selects a crop shape.
type Kind int

const (
	None Kind = iota
	Circle
	Ellipse
	OvalHorizontal
	OvalVertical
	Square
	Triangle
	Pentagon
	Hexagon
	Star4Rounded
	Star4Sharp
	Star5Rounded
	Star5Sharp
	CloudBounded
	Cloud
	Custom
)

var kindNames = [...]string{
	None:           "none",
	Circle:         "circle",
	Ellipse:        "ellipse",
	OvalHorizontal: "oval_horizontal",
	OvalVertical:   "oval_vertical",
	Square:         "square",
	Triangle:       "triangle",
	Pentagon:       "pentagon",
	Hexagon:        "hexagon",
	Star4Rounded:   "star4_rounded",
	Star4Sharp:     "star4_sharp",
	Star5Rounded:   "star5_rounded",
	Star5Sharp:     "star5_sharp",
	CloudBounded:   "cloud_bounded",
	Cloud:          "cloud",
	Custom:         "custom",
}

// Kinds lists every shape name accepted by ParseKind, in declaration order.
func Kinds() []string {
	out := make([]string, len(kindNames))
	copy(out, kindNames[:])
	return out
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[None]
	}
	return kindNames[k]
}

// ParseKind maps a shape name to its Kind. Matching ignores case and treats
// '-' and ' ' like '_'. Unknown names report ok=false and None.
func ParseKind(s string) (k Kind, ok bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if norm == "" {
		return None, true
	}
	for i, name := range kindNames {
		if name == norm {
			return Kind(i), true
		}
	}
	return None, false
}

// MarshalText implements the encoding.TextMarshaler interface for Kind
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface for Kind.
// Unknown names decode to None rather than failing.
func (k *Kind) UnmarshalText(text []byte) error {
	*k, _ = ParseKind(string(text))
	return nil
}
