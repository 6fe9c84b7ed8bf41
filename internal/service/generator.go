package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

var (
	ErrMissingField  = errors.New("field required")
	ErrLengthTooLong = errors.New("password length exceeds the configured maximum")
)

// FieldError reports a required request field that was not supplied.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *FieldError) Unwrap() error { return ErrMissingField }

// LengthLimitError reports a length above the configured maximum.
type LengthLimitError struct {
	Max int
}

func (e *LengthLimitError) Error() string {
	return fmt.Sprintf("%s (%d)", ErrLengthTooLong, e.Max)
}

func (e *LengthLimitError) Unwrap() error { return ErrLengthTooLong }

// Outcome labels used when recording a generation.
const (
	OutcomeOK            = "ok"
	OutcomeInvalidLength = "invalid_length"
	OutcomeNoCharset     = "no_charset"
	OutcomeTooLong       = "too_long"
	OutcomeError         = "error"

	ModeGuaranteed = "guaranteed"
	ModePoolOnly   = "pool_only"
)

// Recorder observes every generation attempt.
type Recorder interface {
	ObserveGeneration(outcome, mode string, length int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, string, int) {}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	maxLength int
	recorder  Recorder
}

// NewGeneratorService creates a new GeneratorService. A maxLength of zero
// disables the upper bound; a nil recorder discards observations.
func NewGeneratorService(maxLength int, recorder Recorder) *GeneratorService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &GeneratorService{
		maxLength: maxLength,
		recorder:  recorder,
	}
}

// MaxLength returns the configured upper bound, zero when unbounded.
func (s *GeneratorService) MaxLength() int {
	return s.maxLength
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts, err := toOptions(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	mode := ModeGuaranteed
	if opts.Degenerate() {
		mode = ModePoolOnly
	}

	if err := opts.Validate(); err != nil {
		s.recorder.ObserveGeneration(outcomeFor(err), mode, opts.Length)
		return model.GenerateResponse{}, err
	}

	if s.maxLength > 0 && opts.Length > s.maxLength {
		s.recorder.ObserveGeneration(OutcomeTooLong, mode, opts.Length)
		return model.GenerateResponse{}, &LengthLimitError{Max: s.maxLength}
	}

	password, err := crypto.Generate(opts)
	if err != nil {
		s.recorder.ObserveGeneration(outcomeFor(err), mode, opts.Length)
		return model.GenerateResponse{}, err
	}

	s.recorder.ObserveGeneration(OutcomeOK, mode, opts.Length)
	return model.GenerateResponse{Password: password}, nil
}

func toOptions(req model.GenerateRequest) (crypto.GeneratorOptions, error) {
	switch {
	case req.Length == nil:
		return crypto.GeneratorOptions{}, &FieldError{Field: "length"}
	case req.UseUppercase == nil:
		return crypto.GeneratorOptions{}, &FieldError{Field: "use_uppercase"}
	case req.UseLowercase == nil:
		return crypto.GeneratorOptions{}, &FieldError{Field: "use_lowercase"}
	case req.UseNumbers == nil:
		return crypto.GeneratorOptions{}, &FieldError{Field: "use_numbers"}
	case req.UseSymbols == nil:
		return crypto.GeneratorOptions{}, &FieldError{Field: "use_symbols"}
	}

	return crypto.GeneratorOptions{
		Length:    *req.Length,
		Uppercase: *req.UseUppercase,
		Lowercase: *req.UseLowercase,
		Numbers:   *req.UseNumbers,
		Symbols:   *req.UseSymbols,
	}, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, crypto.ErrInvalidLength):
		return OutcomeInvalidLength
	case errors.Is(err, crypto.ErrNoCharacterSetSelected):
		return OutcomeNoCharset
	default:
		return OutcomeError
	}
}
