package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	DigitChars     = "0123456789"
	SymbolChars    = "#$%&()*+,-./:;<=>?@[]^_{|}~"

	DefaultLength = 16
)

var (
	ErrInvalidLength          = errors.New("password length must be greater than 0")
	ErrNoCharacterSetSelected = errors.New("no character set selected")
	ErrUnknownCharset         = errors.New("unknown character set")
)

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultOptions returns sensible defaults: 16 characters with all types enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// charsets returns the pool of every enabled class, always in the order
// uppercase, lowercase, digits, symbols.
func (o GeneratorOptions) charsets() []string {
	var sets []string
	if o.Uppercase {
		sets = append(sets, UppercaseChars)
	}
	if o.Lowercase {
		sets = append(sets, LowercaseChars)
	}
	if o.Numbers {
		sets = append(sets, DigitChars)
	}
	if o.Symbols {
		sets = append(sets, SymbolChars)
	}
	return sets
}

// RequiredCount is the number of enabled character classes.
func (o GeneratorOptions) RequiredCount() int {
	return len(o.charsets())
}

// Degenerate reports whether Length is too short to hold one character of
// every enabled class.
func (o GeneratorOptions) Degenerate() bool {
	return o.Length < o.RequiredCount()
}

// Validate checks the options without consuming any randomness. An empty
// pool is reported before a bad length.
func (o GeneratorOptions) Validate() error {
	if o.RequiredCount() == 0 {
		return ErrNoCharacterSetSelected
	}
	if o.Length <= 0 {
		return ErrInvalidLength
	}
	return nil
}

// Generate creates a random password based on the given options.
//
// Draws come from crypto/rand, so the output is suitable for real secrets.
// When Length allows it, the password holds at least one character of every
// enabled class; otherwise every character is drawn from the combined pool.
func Generate(opts GeneratorOptions) (string, error) {
	return generate(rand.Reader, opts)
}

func generate(r io.Reader, opts GeneratorOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	requiredSets := opts.charsets()
	pool := strings.Join(requiredSets, "")
	result := make([]byte, opts.Length)

	if opts.Degenerate() {
		for i := range result {
			ch, err := randChar(r, pool)
			if err != nil {
				return "", err
			}
			result[i] = ch
		}
		return string(result), nil
	}

	// Guarantee at least one character from each selected type.
	for i, charset := range requiredSets {
		ch, err := randChar(r, charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fill the remaining positions from the full pool.
	for i := len(requiredSets); i < opts.Length; i++ {
		ch, err := randChar(r, pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := shuffle(r, result); err != nil {
		return "", err
	}

	return string(result), nil
}

// ParseCharsets turns a comma separated list such as "upper,digits" into
// options with those classes enabled. Length is left at zero.
func ParseCharsets(list string) (GeneratorOptions, error) {
	var opts GeneratorOptions
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "upper", "uppercase":
			opts.Uppercase = true
		case "lower", "lowercase":
			opts.Lowercase = true
		case "digits", "numbers":
			opts.Numbers = true
		case "symbols":
			opts.Symbols = true
		case "all":
			opts.Uppercase, opts.Lowercase, opts.Numbers, opts.Symbols = true, true, true, true
		default:
			return GeneratorOptions{}, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
		}
	}
	return opts, nil
}

// randChar picks a uniformly random character from charset.
func randChar(r io.Reader, charset string) (byte, error) {
	n, err := rand.Int(r, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return charset[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle.
func shuffle(r io.Reader, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(r, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("reading random source: %w", err)
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
