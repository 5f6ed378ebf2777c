package model

import (
	"bytes"
	"encoding/json"
)

// GallPresence values used by the diagnostic variants.
const (
	GallPresent = "present"
	GallAbsent  = "absent"
	GallUnknown = "unknown"
)

// BoilingTiming values used by the critical variants.
const (
	BoilAfterWriting  = "after_writing"
	BoilBeforeWriting = "before_writing"
)

// SoakDays is the soaking_duration value that marks the long-soak tradition.
const SoakDays = "days"

// Witness is one attested historical recipe instance. The dataset ships in
// two representations: the merged analysis format (fields nested under
// metadata / ingredients / process_steps) and a simplified flat format used
// by the legacy web interface. Witness accepts both; the accessor methods
// resolve whichever representation is populated.
type Witness struct {
	WitnessID  string `json:"witness_id,omitempty"`
	Date       int    `json:"date,omitempty"`
	Author     string `json:"author,omitempty"`
	Language   string `json:"language,omitempty"`
	Genre      string `json:"genre,omitempty"`
	SourceWork string `json:"source_work,omitempty"`

	Metadata     *Metadata     `json:"metadata,omitempty"`
	Ingredients  *Ingredients  `json:"ingredients,omitempty"`
	ProcessSteps *ProcessSteps `json:"process_steps,omitempty"`
	TextData     *TextData     `json:"text_data,omitempty"`

	// RelationshipAnalysis and LinguisticAnalysis are free-form
	// textual-critical annotations. Display only, never classified on.
	RelationshipAnalysis map[string]any `json:"relationship_analysis,omitempty"`
	LinguisticAnalysis   map[string]any `json:"linguistic_analysis,omitempty"`

	Confidence         *float64            `json:"confidence,omitempty"`
	AnalysisConfidence *AnalysisConfidence `json:"analysis_confidence,omitempty"`

	Attribution    any    `json:"attribution,omitempty"`
	ProcessSummary string `json:"process_summary,omitempty"`

	// doc holds the decoded source JSON when the witness came off the wire.
	// Free-text search walks it so that fields the struct does not model are
	// still searchable.
	doc map[string]any
}

// Metadata holds the bibliographic fields of the merged format.
type Metadata struct {
	WitnessID  string `json:"witness_id,omitempty"`
	Date       int    `json:"date,omitempty"`
	Author     string `json:"author,omitempty"`
	Language   string `json:"language,omitempty"`
	Genre      string `json:"genre,omitempty"`
	SourceWork string `json:"source_work,omitempty"`
}

// Ingredients is either a structured record (merged format) or a flat list
// of substance names (simplified format).
type Ingredients struct {
	PrimaryComponents  []Component         `json:"primary_components,omitempty"`
	DiagnosticVariants *DiagnosticVariants `json:"diagnostic_variants,omitempty"`

	// Simple holds the flat string-array representation.
	Simple []string `json:"-"`
}

type ingredientsRecord struct {
	PrimaryComponents  []Component         `json:"primary_components,omitempty"`
	DiagnosticVariants *DiagnosticVariants `json:"diagnostic_variants,omitempty"`
}

// UnmarshalJSON accepts both the structured object form and the flat
// string-array form.
func (in *Ingredients) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		in.Simple = nil
		for _, it := range items {
			if s, ok := it.(string); ok {
				in.Simple = append(in.Simple, s)
			}
		}
		return nil
	}
	var rec ingredientsRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return err
	}
	in.PrimaryComponents = rec.PrimaryComponents
	in.DiagnosticVariants = rec.DiagnosticVariants
	return nil
}

// MarshalJSON writes back whichever representation is populated.
func (in Ingredients) MarshalJSON() ([]byte, error) {
	if in.Simple != nil && in.PrimaryComponents == nil && in.DiagnosticVariants == nil {
		return json.Marshal(in.Simple)
	}
	return json.Marshal(ingredientsRecord{
		PrimaryComponents:  in.PrimaryComponents,
		DiagnosticVariants: in.DiagnosticVariants,
	})
}

// Component is one entry of primary_components.
type Component struct {
	Substance         string `json:"substance,omitempty"`
	Quantity          any    `json:"quantity,omitempty"`
	MeasurementSystem string `json:"measurement_system,omitempty"`
	OriginalPhrasing  string `json:"original_phrasing,omitempty"`
}

// DiagnosticVariants holds the ingredient flags used diagnostically.
type DiagnosticVariants struct {
	GallPresence string `json:"gall_presence,omitempty"`
}

// ProcessSteps holds the preparation sequence and its critical variants.
type ProcessSteps struct {
	PreparationSequence []Step            `json:"preparation_sequence,omitempty"`
	CriticalVariants    *CriticalVariants `json:"critical_variants,omitempty"`
	ToolSpecifications  map[string]any    `json:"tool_specifications,omitempty"`
}

// Step is one entry of preparation_sequence.
type Step struct {
	StepNumber       int    `json:"step_number,omitempty"`
	Action           string `json:"action,omitempty"`
	Details          string `json:"details,omitempty"`
	OriginalPhrasing string `json:"original_phrasing,omitempty"`
}

// CriticalVariants are the process attributes used diagnostically.
type CriticalVariants struct {
	BoilingTiming             string   `json:"boiling_timing,omitempty"`
	DryingMethod              string   `json:"drying_method,omitempty"`
	SoakingMedium             string   `json:"soaking_medium,omitempty"`
	SoakingDuration           string   `json:"soaking_duration,omitempty"`
	TemperatureSpecifications []string `json:"temperature_specifications,omitempty"`
}

// TextData carries the transcription of the witness text.
type TextData struct {
	FullText    string `json:"full_text,omitempty"`
	Translation string `json:"translation,omitempty"`
	URL         string `json:"url,omitempty"`
	Note        string `json:"note,omitempty"`
}

// AnalysisConfidence holds the extraction confidence scores. Pointer fields
// distinguish "absent" from an explicit zero.
type AnalysisConfidence struct {
	OverallConfidence      *float64 `json:"overall_confidence,omitempty"`
	TextCompleteness       *float64 `json:"text_completeness,omitempty"`
	ExtractionReliability  *float64 `json:"extraction_reliability,omitempty"`
	RelationshipIndicators *float64 `json:"relationship_indicators,omitempty"`
	LinguisticAnalysis     *float64 `json:"linguistic_analysis,omitempty"`
	UncertaintyFlags       []string `json:"uncertainty_flags,omitempty"`
}

// ID returns the witness identifier, preferring the top-level field and
// falling back to metadata.
func (w *Witness) ID() string {
	if w == nil {
		return ""
	}
	if w.WitnessID != "" {
		return w.WitnessID
	}
	if w.Metadata != nil {
		return w.Metadata.WitnessID
	}
	return ""
}

// DateYear returns the attestation year CE, from whichever representation
// carries it. Zero means unknown.
func (w *Witness) DateYear() int {
	if w == nil {
		return 0
	}
	if w.Date != 0 {
		return w.Date
	}
	if w.Metadata != nil {
		return w.Metadata.Date
	}
	return 0
}

// Century derives the century from the attestation year, e.g. 1652 -> 17.
func (w *Witness) Century() int {
	return w.DateYear()/100 + 1
}

// AuthorName resolves the author across both representations.
func (w *Witness) AuthorName() string {
	if w == nil {
		return ""
	}
	if w.Author != "" {
		return w.Author
	}
	if w.Metadata != nil {
		return w.Metadata.Author
	}
	return ""
}

// LanguageName resolves the language across both representations.
func (w *Witness) LanguageName() string {
	if w == nil {
		return ""
	}
	if w.Language != "" {
		return w.Language
	}
	if w.Metadata != nil {
		return w.Metadata.Language
	}
	return ""
}

// GenreName resolves the genre across both representations.
func (w *Witness) GenreName() string {
	if w == nil {
		return ""
	}
	if w.Genre != "" {
		return w.Genre
	}
	if w.Metadata != nil {
		return w.Metadata.Genre
	}
	return ""
}

// SourceWorkName resolves the source work across both representations.
func (w *Witness) SourceWorkName() string {
	if w == nil {
		return ""
	}
	if w.SourceWork != "" {
		return w.SourceWork
	}
	if w.Metadata != nil {
		return w.Metadata.SourceWork
	}
	return ""
}

// IngredientNames returns the union of the flat ingredient list and the
// structured component substances, in encounter order without duplicates.
func (w *Witness) IngredientNames() []string {
	if w == nil || w.Ingredients == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		names = append(names, s)
	}
	for _, s := range w.Ingredients.Simple {
		add(s)
	}
	for _, c := range w.Ingredients.PrimaryComponents {
		add(c.Substance)
	}
	return names
}

// Variants returns the critical variants, or nil when absent.
func (w *Witness) Variants() *CriticalVariants {
	if w == nil || w.ProcessSteps == nil {
		return nil
	}
	return w.ProcessSteps.CriticalVariants
}

// Document returns the witness as a decoded JSON tree. When the witness was
// decoded from source data the original document is returned, so fields the
// struct does not model remain visible; otherwise the struct is re-encoded.
func (w *Witness) Document() map[string]any {
	if w == nil {
		return nil
	}
	if w.doc != nil {
		return w.doc
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

// SetDocument attaches the decoded source JSON to the witness.
func (w *Witness) SetDocument(doc map[string]any) {
	w.doc = doc
}

// DecodeWitness parses one witness object, retaining the raw document for
// full-structure search.
func DecodeWitness(data []byte) (Witness, error) {
	var w Witness
	if err := json.Unmarshal(data, &w); err != nil {
		return Witness{}, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		w.doc = doc
	}
	return w, nil
}
