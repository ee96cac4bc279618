package fixture

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/sourcegraph/conc/iter"
)

const (
	MessageNoFixtures = "no fixtures found"
	MessageNotArray   = "invalid input: expected an array of fixtures"
)

var envelopeKeys = []string{"fixtures", "data", "matches"}

// RecordError is a per-record failure. Index is zero-based.
type RecordError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	err    error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("fixture %d: %s", e.Index, e.Reason)
}

func (e RecordError) Unwrap() error {
	return e.err
}

// ValidationReport summarizes a batch. Added and Updated stay zero until
// the batch is persisted.
type ValidationReport struct {
	Valid         bool          `json:"valid"`
	Message       string        `json:"message"`
	Added         int           `json:"added"`
	Updated       int           `json:"updated"`
	ValidFixtures []Fixture     `json:"validFixtures"`
	Errors        []RecordError `json:"errors"`
}

// ApplyUpsert records persistence counts and rewrites the message.
func (r *ValidationReport) ApplyUpsert(res UpsertResult) {
	r.Added = res.Added
	r.Updated = res.Updated
	r.Message = fmt.Sprintf("Imported %s (%d added, %d updated)", pluralize(len(r.ValidFixtures), "fixture"), res.Added, res.Updated) +
		errorSuffix(r.Errors)
}

type Validator struct {
	reconciler *Reconciler
}

func NewValidator(reconciler *Reconciler) *Validator {
	if reconciler == nil {
		reconciler = NewReconciler(DefaultClubProfile())
	}
	return &Validator{reconciler: reconciler}
}

type recordResult struct {
	fixture Fixture
	err     error
}

// Validate screens every record of input independently. Records are
// processed in parallel; output order follows input order.
func (v *Validator) Validate(input any) ValidationReport {
	records, ok := asRecords(input)
	if !ok {
		return invalidReport(MessageNotArray)
	}
	if len(records) == 0 {
		return invalidReport(MessageNoFixtures)
	}

	results := iter.Map(records, func(rec *any) recordResult {
		f, err := v.reconciler.Reconcile(*rec)
		if err != nil {
			return recordResult{err: err}
		}
		if err := CheckComplete(f); err != nil {
			return recordResult{err: err}
		}
		return recordResult{fixture: f}
	})

	report := ValidationReport{
		ValidFixtures: make([]Fixture, 0, len(results)),
		Errors:        []RecordError{},
	}
	for idx, res := range results {
		if res.err != nil {
			report.Errors = append(report.Errors, RecordError{Index: idx, Reason: res.err.Error(), err: res.err})
			continue
		}
		report.ValidFixtures = append(report.ValidFixtures, res.fixture)
	}

	report.Valid = len(report.ValidFixtures) > 0
	report.Message = "Found " + pluralize(len(report.ValidFixtures), "valid fixture") + errorSuffix(report.Errors)
	return report
}

// ValidateJSON decodes data and validates the result. Decoding failures
// come back as an invalid report.
func (v *Validator) ValidateJSON(data []byte) ValidationReport {
	decoded, err := DecodeRecords(data)
	if err != nil {
		return invalidReport("invalid JSON: " + err.Error())
	}
	return v.Validate(decoded)
}

// DecodeRecords parses JSON and unwraps {"fixtures": [...]} style envelopes.
func DecodeRecords(data []byte) (any, error) {
	var decoded any
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	return UnwrapEnvelope(decoded), nil
}

// UnwrapEnvelope returns the record array nested under a known envelope
// key, or value unchanged.
func UnwrapEnvelope(value any) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}
	for _, key := range envelopeKeys {
		if list, ok := obj[key].([]any); ok {
			return list
		}
	}
	return value
}

func asRecords(input any) ([]any, bool) {
	switch v := input.(type) {
	case []any:
		return v, v != nil
	case []map[string]any:
		if v == nil {
			return nil, false
		}
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func invalidReport(message string) ValidationReport {
	return ValidationReport{
		Valid:         false,
		Message:       message,
		ValidFixtures: []Fixture{},
		Errors:        []RecordError{},
	}
}

func errorSuffix(errs []RecordError) string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return fmt.Sprintf(", %s: %s", pluralize(len(errs), "error"), strings.Join(parts, "; "))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
