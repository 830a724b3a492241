// Package extract locates, parses and validates the website payload embedded in
// a model's free-form completion text.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"sitegen/internal/types"

	"github.com/google/uuid"
)

// Policy selects how much surrounding text the extractor tolerates.
type Policy int

const (
	// Tolerant scans for the outermost JSON brackets and ignores surrounding prose.
	Tolerant Policy = iota
	// Strict requires the (fence-stripped) response to be exactly one JSON value.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	default:
		return "tolerant"
	}
}

// ParsePolicy maps a configuration value onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tolerant":
		return Tolerant, nil
	case "strict":
		return Strict, nil
	default:
		return Tolerant, fmt.Errorf("unknown extraction policy %q (want tolerant or strict)", s)
	}
}

// TimestampLayout is the format of GenerationResult.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const fence = "```"

// Extractor turns raw completion text into a GenerationResult.
type Extractor struct {
	Policy Policy
	NewID  func() string
	Now    func() time.Time
}

// NewExtractor returns an Extractor using random UUIDs and the wall clock.
func NewExtractor(policy Policy) *Extractor {
	return &Extractor{
		Policy: policy,
		NewID:  uuid.NewString,
		Now:    time.Now,
	}
}

// modelPayload mirrors the JSON object the preamble asks the model for.
type modelPayload struct {
	HTMLContent      string            `json:"htmlContent"`
	CSSContent       string            `json:"cssContent"`
	JSContent        string            `json:"jsContent"`
	ReactComponents  []types.FileEntry `json:"reactComponents"`
	ReduxFiles       []types.FileEntry `json:"reduxFiles"`
	ProjectStructure string            `json:"projectStructure"`
}

// Extract parses raw and returns either a GenerationResult or a *types.GenerationError.
func (e *Extractor) Extract(raw string) (types.GenerationResult, error) {
	text := StripFence(strings.TrimSpace(raw))

	candidate, err := e.locate(text)
	if err != nil {
		return types.GenerationResult{}, err.WithRaw(raw)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return types.GenerationResult{}, types.NewError(types.KindIncompleteResult,
				"response JSON is not an object", err).WithRaw(raw)
		}
		return types.GenerationResult{}, types.NewError(types.KindMalformedJSON, err.Error(), err).WithRaw(raw)
	}

	if msg, ok := upstreamError(fields["error"]); ok {
		return types.GenerationResult{}, types.NewError(types.KindUpstreamReported, msg, nil).WithRaw(raw)
	}

	var payload modelPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return types.GenerationResult{}, types.NewError(types.KindIncompleteResult,
			"response fields have unexpected types: "+err.Error(), err).WithRaw(raw)
	}
	if payload.HTMLContent == "" {
		return types.GenerationResult{}, types.NewError(types.KindIncompleteResult,
			"response is missing htmlContent", nil).WithRaw(raw)
	}

	result := types.GenerationResult{
		HTMLContent:      payload.HTMLContent,
		CSSContent:       payload.CSSContent,
		JSContent:        payload.JSContent,
		ReactComponents:  payload.ReactComponents,
		ReduxFiles:       payload.ReduxFiles,
		ProjectStructure: payload.ProjectStructure,
		ProjectID:        e.NewID(),
		Timestamp:        e.Now().UTC().Format(TimestampLayout),
	}
	if result.ReactComponents == nil {
		result.ReactComponents = []types.FileEntry{}
	}
	if result.ReduxFiles == nil {
		result.ReduxFiles = []types.FileEntry{}
	}
	return result, nil
}

// locate returns the slice of text that should hold the JSON value.
func (e *Extractor) locate(text string) (string, *types.GenerationError) {
	if e.Policy == Strict {
		if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
			return "", types.NewError(types.KindNoJSONFound, "response is not bare JSON", nil)
		}
		return text, nil
	}

	start := firstIndex(strings.IndexByte(text, '{'), strings.IndexByte(text, '['))
	if start < 0 {
		return "", types.NewError(types.KindNoJSONFound, "No valid JSON found in response", nil)
	}
	end := max(strings.LastIndexByte(text, '}'), strings.LastIndexByte(text, ']')) + 1
	if end <= start {
		return "", nil
	}
	return text[start:end], nil
}

// StripFence removes a leading markdown code fence (with its language tag) and a
// trailing fence. Either may be absent.
func StripFence(text string) string {
	if rest, ok := strings.CutPrefix(text, fence); ok {
		rest = strings.TrimLeftFunc(rest, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		})
		text = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(text, fence); ok {
		text = strings.TrimSpace(rest)
	}
	return text
}

// firstIndex returns the smaller non-negative index, or -1 when both are negative.
func firstIndex(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	default:
		return min(a, b)
	}
}

// upstreamError reports a truthy "error" member and its message.
func upstreamError(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch string(raw) {
	case "null", "false", `""`, "0":
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg, true
	}
	return string(raw), true
}
