package params

import (
	"fmt"
	"strings"
)

// Family identifies the permutation design.
type Family int

const (
	Poseidon Family = iota
	Rescue
	RescuePrime
	Poseidon2
)

func (f Family) String() string {
	switch f {
	case Poseidon:
		return "poseidon"
	case Rescue:
		return "rescue"
	case RescuePrime:
		return "rescue-prime"
	case Poseidon2:
		return "poseidon2"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily accepts the names returned by Family.String.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "poseidon":
		return Poseidon, nil
	case "rescue":
		return Rescue, nil
	case "rescue-prime", "rescueprime", "rescue_prime":
		return RescuePrime, nil
	case "poseidon2":
		return Poseidon2, nil
	}
	return 0, fmt.Errorf("zkhash: unknown hash family %q", s)
}

func (f Family) valid() bool {
	return f >= Poseidon && f <= Poseidon2
}

// HasPartialRounds reports whether the round schedule has a partial middle
// section.
func (f Family) HasPartialRounds() bool {
	return f == Poseidon || f == Poseidon2
}

// NeedsInverse reports whether the round function uses x^(1/alpha).
func (f Family) NeedsInverse() bool {
	return f == Rescue || f == RescuePrime
}

// seedTag prefixes the round constant seed.
func (f Family) seedTag() string {
	switch f {
	case Rescue:
		return "Rescue"
	case RescuePrime:
		return "Rescue-XLIX"
	case Poseidon2:
		return "Poseidon2"
	default:
		return "Poseidon"
	}
}
