package service

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"brandmatch-service/internal/match/model"
)

// MatchAll scores every description against every brand and keeps, per row,
// the top-N matches at or above the threshold. Results come back in input
// order, one per description, regardless of scores.
//
// Cost is O(len(descs) x len(brands)) scorer calls; there is no candidate
// index, the reference scorer cannot be searched sub-linearly. The work is
// embarrassingly parallel across rows: with cfg.Workers > 1 rows are scored
// concurrently into per-index slots, so the output is byte-identical to a
// sequential run. Brands are shared read-only.
//
// A scorer failure aborts the whole call with a *model.ScoringError carrying
// the row index; nothing is skipped or retried. An invalid config fails with
// *model.InvalidConfigError before any scoring starts.
func MatchAll(descs []model.DescriptionRecord, brands model.BrandSet, cfg model.MatchConfig, score model.ScoreFunc) ([]model.MatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if score == nil {
		return nil, &model.InvalidConfigError{Field: "score", Reason: "function must not be nil"}
	}

	results := make([]model.MatchResult, len(descs))

	if cfg.Workers > 1 && len(descs) > 1 {
		errs := make([]error, len(descs))
		g := new(errgroup.Group)
		g.SetLimit(cfg.Workers)
		for i := range descs {
			i := i // per-iteration copy; the goroutine below must see its own row index
			g.Go(func() error {
				res, err := matchOne(descs[i], brands, cfg, score)
				if err != nil {
					errs[i] = err
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// report the lowest failing row so errors are deterministic too
			for _, e := range errs {
				if e != nil {
					return nil, e
				}
			}
			return nil, err
		}
		return results, nil
	}

	for i, rec := range descs {
		res, err := matchOne(rec, brands, cfg, score)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// matchOne scores a single description against the full brand set.
func matchOne(rec model.DescriptionRecord, brands model.BrandSet, cfg model.MatchConfig, score model.ScoreFunc) (model.MatchResult, error) {
	query := rec.ScoringText()

	cands := make([]model.Match, 0, len(brands))
	for bi, brand := range brands {
		s, err := score(query, brand.ScoringText())
		if err != nil {
			return model.MatchResult{}, &model.ScoringError{RowIndex: rec.RowIndex, Brand: brand.Label, Err: err}
		}
		if s >= cfg.Threshold {
			cands = append(cands, model.Match{Brand: brand.Label, Score: s, BrandIndex: bi})
		}
	}

	// candidates arrive in BrandSet order; the stable sort keeps that order
	// for equal scores, which is the documented tie-break
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	if len(cands) > cfg.TopN {
		cands = cands[:cfg.TopN]
	}

	return model.MatchResult{
		SourceRowIndex: rec.RowIndex,
		SourceText:     rec.RawText,
		Matches:        cands,
		HasMatch:       len(cands) > 0,
	}, nil
}
