package service

import (
	"strings"

	"brandmatch-service/internal/match/model"
)

// Run is the whole matching batch: prepare the brand reference set, derive a
// query per description row, run the pipeline, and fold the results into a
// report. Pure function of its inputs; nothing is cached between calls.
//
// Brand preparation cleans every label and drops rows that clean to nothing.
// Duplicate brands (same cleaned form) keep the first occurrence's label and
// lose the rest, so a duplicated brand cannot occupy two match slots.
//
// With opts.ByHeuristic set, rows containing " by " are first matched with
// the text after it; rows that stay unmatched are retried once with the full
// cleaned text, mirroring how buyers write "<product> by <maker>".
func Run(descs []model.SourceRow, brandLabels []string, opts model.Options) (model.Report, error) {
	cfg := opts.MatchConfig
	if err := cfg.Validate(); err != nil {
		return model.Report{}, err
	}

	brands := prepareBrands(brandLabels)

	recs := make([]model.DescriptionRecord, len(descs))
	sources := make([]string, len(descs))
	for i, d := range descs {
		query, source := DeriveQuery(d.Text, opts.ByHeuristic)
		recs[i] = model.DescriptionRecord{RowIndex: i, RawText: d.Text, Query: query}
		sources[i] = source
	}

	results, err := MatchAll(recs, brands, cfg, TokenSetRatio)
	if err != nil {
		return model.Report{}, err
	}

	// second pass: " by " rows that matched nothing retry with the full text
	var retryAt []int
	var retry []model.DescriptionRecord
	for i, res := range results {
		if sources[i] == QuerySourceBy && !res.HasMatch {
			retryAt = append(retryAt, i)
			retry = append(retry, model.DescriptionRecord{
				RowIndex: recs[i].RowIndex,
				RawText:  recs[i].RawText,
				Query:    CleanText(recs[i].RawText),
			})
		}
	}
	if len(retry) > 0 {
		retried, err := MatchAll(retry, brands, cfg, TokenSetRatio)
		if err != nil {
			return model.Report{}, err
		}
		for j, i := range retryAt {
			results[i] = retried[j]
			sources[i] = QuerySourceFull
		}
	}

	rows := make([]model.ReportRow, len(results))
	matched := 0
	for i, res := range results {
		row := model.ReportRow{
			RowIndex:    res.SourceRowIndex,
			DataKey:     descs[i].DataKey,
			Description: res.SourceText,
			Matches:     res.Matches,
			HasMatch:    res.HasMatch,
			QuerySource: sources[i],
		}
		if res.HasMatch {
			best := res.Matches[0].Score
			row.BestScore = &best
			matched++
		}
		rows[i] = row
	}

	return model.Report{
		Rows:      rows,
		Total:     len(rows),
		Matched:   matched,
		Unmatched: len(rows) - matched,
		Opts:      opts,
	}, nil
}

// prepareBrands cleans the labels and dedupes them on the cleaned form,
// first occurrence wins. Labels that clean to an empty string are dropped.
func prepareBrands(labels []string) model.BrandSet {
	set := make(model.BrandSet, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		norm := CleanText(label)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		set = append(set, model.Brand{Label: label, Norm: norm})
	}
	return set
}
