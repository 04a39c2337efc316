package clockstate

import "fmt"

// Option is one of the four daily attendance checkpoints.
type Option int

const (
	MorningIn Option = iota
	MorningOut
	AfternoonIn
	AfternoonOut
)

// Options lists every option in cycle order.
var Options = []Option{MorningIn, MorningOut, AfternoonIn, AfternoonOut}

var optionKeys = map[Option]string{
	MorningIn:    "MORNING_IN",
	MorningOut:   "MORNING_OUT",
	AfternoonIn:  "AFTERNOON_IN",
	AfternoonOut: "AFTERNOON_OUT",
}

var optionLabels = map[Option]string{
	MorningIn:    "Morning clock in",
	MorningOut:   "Morning clock out",
	AfternoonIn:  "Afternoon clock in",
	AfternoonOut: "Afternoon clock out",
}

// Key returns the stable storage key for the option.
func (o Option) Key() string {
	if k, ok := optionKeys[o]; ok {
		return k
	}
	return fmt.Sprintf("OPTION_%d", int(o))
}

// String returns the storage key.
func (o Option) String() string { return o.Key() }

// Label returns the human-readable name of the option.
func (o Option) Label() string {
	if l, ok := optionLabels[o]; ok {
		return l
	}
	return o.Key()
}

// Next returns the following option, wrapping to MorningIn after AfternoonOut.
func (o Option) Next() Option {
	return Options[(o.index()+1)%len(Options)]
}

// IsIn reports whether the option starts a shift.
func (o Option) IsIn() bool {
	return o == MorningIn || o == AfternoonIn
}

// Valid reports whether o is one of the four known options.
func (o Option) Valid() bool {
	_, ok := optionKeys[o]
	return ok
}

func (o Option) index() int {
	for i, opt := range Options {
		if opt == o {
			return i
		}
	}
	return 0
}

// ParseOption resolves a storage key such as "AFTERNOON_IN" to an Option.
func ParseOption(key string) (Option, error) {
	for o, k := range optionKeys {
		if k == key {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown clock option %q", key)
}
