// Package dscp converts Differentiated Services Code Point names and
// literals to their 6-bit numeric values.
package dscp

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const MaxValue = 63

var (
	ErrInvalidValue    = errors.New("invalid DSCP value")
	ErrDescendingRange = errors.New("DSCP range end is lower than start")

	errLeadingZero = errors.New("leading zeros in decimal literal")
)

// Value is a DSCP code point in [0,63].
type Value uint8

var dsfield = map[string]Value{
	"default": 0,
	"cs0":     0,
	"cs1":     8,
	"cs2":     16,
	"cs3":     24,
	"cs4":     32,
	"cs5":     40,
	"cs6":     48,
	"cs7":     56,
	"af11":    10,
	"af12":    12,
	"af13":    14,
	"af21":    18,
	"af22":    20,
	"af23":    22,
	"af31":    26,
	"af32":    28,
	"af33":    30,
	"af41":    34,
	"af42":    36,
	"af43":    38,
	"ef":      46,
	"va":      44,
}

// canonical names by value; 0 renders as "default" rather than "cs0".
var names = func() map[Value]string {
	m := make(map[Value]string, len(dsfield))
	for name, v := range dsfield {
		if name == "cs0" {
			continue
		}
		m[v] = name
	}
	return m
}()

// InvalidValueError reports a literal that is neither a known name nor an
// integer in [0,63].
type InvalidValueError struct {
	Input string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("can't convert %q to a valid DSCP", e.Input)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// Lookup resolves a symbolic name only. It never parses numbers.
func Lookup(name string) (Value, bool) {
	v, ok := dsfield[strings.ToLower(name)]
	return v, ok
}

// Parse accepts a symbolic name (case-insensitive), a decimal literal or a
// 0x-prefixed hexadecimal literal.
func Parse(s string) (Value, error) {
	if v, ok := Lookup(s); ok {
		return v, nil
	}

	num, err := parseInt(s)
	if err != nil {
		return 0, &InvalidValueError{Input: s, Err: err}
	}

	if num < 0 || num > MaxValue {
		return 0, &InvalidValueError{Input: s}
	}

	return Value(num), nil
}

// parseInt honours 0x, 0o and 0b prefixes and underscores, but a "0" prefix
// alone is not octal: "010" is rejected while "00" is zero.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)

	digits := s
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) > 1 && digits[0] == '0' && !strings.ContainsAny(digits[1:2], "xXoObB") {
		if strings.Trim(digits, "0_") != "" {
			return 0, errLeadingZero
		}
	}

	return strconv.ParseInt(s, 0, 64)
}

func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ExpandRanges expands a comma separated list of values and low-high ranges.
// Order is preserved and duplicates are kept.
func ExpandRanges(spec string) ([]Value, error) {
	var values []Value

	for _, item := range strings.Split(spec, ",") {
		if strings.Index(item, "-") <= 0 {
			v, err := Parse(item)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			continue
		}

		parts := strings.Split(item, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid DSCP range format %q: %w", item, ErrInvalidValue)
		}

		start, err := Parse(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start DSCP: %w", err)
		}

		end, err := Parse(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end DSCP: %w", err)
		}

		if end < start {
			return nil, fmt.Errorf("range %q: start (%d) > end (%d): %w", item, start, end, ErrDescendingRange)
		}

		for v := int(start); v <= int(end); v++ {
			values = append(values, Value(v))
		}
	}

	return values, nil
}

// Names returns every valid symbolic name, sorted.
func Names() []string {
	result := make([]string, 0, len(dsfield))
	for name := range dsfield {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (v Value) String() string {
	return strconv.Itoa(int(v))
}

// Name returns the symbolic name for v, or "" when it has none.
func (v Value) Name() string {
	return names[v]
}

func (v Value) Valid() bool {
	return v <= MaxValue
}
