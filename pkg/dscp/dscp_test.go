package dscp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"af33", 30},
		{"AF33", 30},
		{"0x20", 32},
		{"48", 48},
		{"0", 0},
		{"63", 63},
		{"default", 0},
		{"cs0", 0},
		{"EF", 46},
		{"va", 44},
		{"00", 0},
		{"0o17", 15},
		{"0b101", 5},
		{" 12 ", 12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	for name, want := range dsfield {
		lower, err := Parse(name)
		require.NoError(t, err)
		upper, err := Parse(strings.ToUpper(name))
		require.NoError(t, err)

		assert.Equal(t, want, lower, name)
		assert.Equal(t, lower, upper, name)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"foobar", "128", "64", "-1", "", "0x40", "af5", "010", "007", "0_1", "-0x1"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidValue))

			var invalid *InvalidValueError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, input, invalid.Input)
			assert.Contains(t, err.Error(), input)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Equal(t, Value(10), MustParse("af11"))
	assert.Panics(t, func() { MustParse("foobar") })
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("cs7")
	assert.True(t, ok)
	assert.Equal(t, Value(56), v)

	_, ok = Lookup("foobar")
	assert.False(t, ok)

	_, ok = Lookup("12")
	assert.False(t, ok, "lookup must not parse numbers")
}

func TestExpandRanges(t *testing.T) {
	tests := []struct {
		spec     string
		expected []Value
	}{
		{"1,af11", []Value{1, 10}},
		{"5-7", []Value{5, 6, 7}},
		{"1,af22-af23", []Value{1, 20, 21, 22}},
		{"7", []Value{7}},
		{"4-4", []Value{4}},
		{"3,1-2,3", []Value{3, 1, 2, 3}},
		{"0x3e-63", []Value{62, 63}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			values, err := ExpandRanges(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}
}

func TestExpandRangesDescending(t *testing.T) {
	values, err := ExpandRanges("7-5")
	require.Error(t, err)
	assert.Nil(t, values)
	assert.True(t, errors.Is(err, ErrDescendingRange))

	_, err = ExpandRanges("1,af23-af22")
	assert.True(t, errors.Is(err, ErrDescendingRange))
}

func TestExpandRangesInvalid(t *testing.T) {
	for _, spec := range []string{"1,foobar", "1-2-3", "5-99", "", "1,,2", "x-5"} {
		t.Run(spec, func(t *testing.T) {
			values, err := ExpandRanges(spec)
			require.Error(t, err)
			assert.Nil(t, values)
			assert.True(t, errors.Is(err, ErrInvalidValue))
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 23)
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "cs0")
	assert.Contains(t, names, "ef")
	assert.IsIncreasing(t, names)

	for _, name := range names {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestValueName(t *testing.T) {
	assert.Equal(t, "default", Value(0).Name())
	assert.Equal(t, "af41", Value(34).Name())
	assert.Equal(t, "cs7", Value(56).Name())
	assert.Equal(t, "", Value(1).Name())
	assert.Equal(t, "34", Value(34).String())
}

func TestUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Mark   Value     `yaml:"mark"`
		Number Value     `yaml:"number"`
		Match  ValueList `yaml:"match"`
		Seq    ValueList `yaml:"seq"`
	}

	data := `
mark: AF41
number: 0x2e
match: "af11-af13,46"
seq: [1, "cs1-9"]
`
	require.NoError(t, yaml.Unmarshal([]byte(data), &cfg))
	assert.Equal(t, Value(34), cfg.Mark)
	assert.Equal(t, Value(46), cfg.Number)
	assert.Equal(t, ValueList{10, 11, 12, 13, 14, 46}, cfg.Match)
	assert.Equal(t, ValueList{1, 8, 9}, cfg.Seq)
	assert.Equal(t, "1,8,9", cfg.Seq.String())
}

func TestUnmarshalYAMLInvalid(t *testing.T) {
	var cfg struct {
		Mark Value `yaml:"mark"`
	}
	err := yaml.Unmarshal([]byte("mark: 99\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99")

	err = yaml.Unmarshal([]byte("mark: 010\n"), &cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))

	var list struct {
		Match ValueList `yaml:"match"`
	}
	err = yaml.Unmarshal([]byte("match: \"1,010\"\n"), &list)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
}

func TestTextRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, v.UnmarshalText([]byte("cs3")))
	out, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "24", string(out))
	assert.Error(t, v.UnmarshalText([]byte("nope")))
}
