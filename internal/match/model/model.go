package model

// DescriptionRecord is one row from the descriptions dataset.
type DescriptionRecord struct {
	RowIndex int    // stable 0-based position in the input, keeps output ordering
	RawText  string // original cell text, carried into results untouched
	Query    string // text submitted to the scorer; empty means score RawText as-is
}

// ScoringText returns the string the scorer should see for this record.
func (r DescriptionRecord) ScoringText() string {
	if r.Query != "" {
		return r.Query
	}
	return r.RawText
}

// Brand is one reference brand name.
type Brand struct {
	Label string // original spreadsheet value, reported in matches
	Norm  string // normalized form used for scoring; empty means score Label as-is
}

// ScoringText returns the string the scorer should see for this brand.
func (b Brand) ScoringText() string {
	if b.Norm != "" {
		return b.Norm
	}
	return b.Label
}

// BrandSet is the reference set. Slice order is first-seen order and is the
// tie-break order for equal scores.
type BrandSet []Brand

// NewBrandSet wraps plain labels without any normalization.
func NewBrandSet(labels []string) BrandSet {
	set := make(BrandSet, len(labels))
	for i, l := range labels {
		set[i] = Brand{Label: l}
	}
	return set
}

// Match is a single qualifying (brand, score) pair.
type Match struct {
	Brand      string  `json:"brand"`
	Score      float64 `json:"score"`
	BrandIndex int     `json:"-"` // first-seen position in the BrandSet
}

// MatchResult is the pipeline output for one description row. Matches is
// sorted descending by score, ties kept in BrandSet order, and never holds
// more than TopN entries, all at or above the threshold.
type MatchResult struct {
	SourceRowIndex int
	SourceText     string
	Matches        []Match
	HasMatch       bool
}

// ScoreFunc scores the similarity of two strings on a [0,100] scale, higher
// meaning more similar. A non-nil error aborts the whole batch.
type ScoreFunc func(a, b string) (float64, error)

// MatchConfig are the tunables of a single pipeline invocation.
type MatchConfig struct {
	Threshold float64 `json:"threshold"` // minimum qualifying score, [0,100]
	TopN      int     `json:"topN"`      // ranked matches kept per row, >= 1
	Workers   int     `json:"workers"`   // >1 scores rows concurrently; output is identical
}

// Options is the full matching surface exposed over HTTP; echoed back in the
// report so callers see what actually applied.
type Options struct {
	MatchConfig
	ByHeuristic bool `json:"byHeuristic"` // prefer the text after " by " as the query
}

// ColumnMapping echoes which uploaded columns fed the run.
type ColumnMapping struct {
	DescText       string `json:"descText"`
	DescID         string `json:"descId,omitempty"`
	BrandText      string `json:"brandText"`
	DescHeaderRow  int    `json:"descHeaderRow"`
	BrandHeaderRow int    `json:"brandHeaderRow"`
}

// SourceRow is one extracted description row handed to the matcher: the text
// to match plus an optional caller-chosen key carried through to the output.
type SourceRow struct {
	Text    string
	DataKey string
}

// ReportRow is the published result for one description row.
type ReportRow struct {
	RowIndex    int      `json:"rowIndex"`
	DataKey     string   `json:"dataKey,omitempty"`
	Description string   `json:"description"`
	Matches     []Match  `json:"matches"`
	BestScore   *float64 `json:"bestScore,omitempty"`
	HasMatch    bool     `json:"hasMatch"`
	QuerySource string   `json:"querySource"` // "full" or "by"
}

// Report is the whole run result: one row per input description row, in
// input order, plus totals and an echo of the applied options.
type Report struct {
	Rows      []ReportRow   `json:"rows"`
	Total     int           `json:"total"`
	Matched   int           `json:"matched"`
	Unmatched int           `json:"unmatched"`
	Opts      Options       `json:"opts"`
	Columns   ColumnMapping `json:"columns"`
}
