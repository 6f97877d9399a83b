package handler

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"brandmatch-service/internal/config"
	"brandmatch-service/internal/fileio"
	"brandmatch-service/internal/match/export"
	"brandmatch-service/internal/match/model"
	matchSvc "brandmatch-service/internal/match/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// runOutput is one finished matching run plus the parsed inputs, kept for
// the export's sample sheets.
type runOutput struct {
	report model.Report
	descs  *fileio.Table
	brands *fileio.Table
}

// Match returns the POST /match handler: two uploaded tables in, a JSON
// report out. Wire it as r.Post("/match", handler.Match(cfg, logger)).
func Match(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		out, status, err := parseAndRun(r, cfg)
		if err != nil {
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, out.report)

		log.Info().
			Int("rows", out.report.Total).
			Int("brands", out.brands.RowCount()).
			Int("matched", out.report.Matched).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

// Export runs the same matching as Match but answers with a downloadable
// file: an .xlsx workbook (default) or a bare CSV of the matches table.
func Export(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		out, status, err := parseAndRun(r, cfg)
		if err != nil {
			writeError(w, status, err.Error())
			return
		}

		format := strings.ToLower(strings.TrimSpace(r.FormValue("format")))
		if format == "" {
			format = "xlsx"
		}

		switch format {
		case "xlsx":
			name := fmt.Sprintf("brand_match_results_top%d.xlsx", out.report.Opts.TopN)
			w.Header().Set("Content-Type", xlsxContentType)
			w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
			err = export.WriteXLSX(w, out.report, out.descs, out.brands)
		case "csv":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="brand_match_results.csv"`)
			err = export.WriteCSV(w, out.report)
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q (want xlsx or csv)", format))
			return
		}
		if err != nil {
			// headers are out already, all we can do is log and drop the conn
			log.Error().Err(err).Str("format", format).Msg("write export")
			return
		}

		log.Info().
			Str("format", format).
			Int("rows", out.report.Total).
			Int("matched", out.report.Matched).
			Dur("elapsed", time.Since(start)).
			Msg("export done")
	}
}

// parseAndRun is the shared request path of /match and /match/export: parse
// the multipart form, read both tables, resolve columns, and run the batch.
// A non-nil error comes back with the HTTP status to answer with.
func parseAndRun(r *http.Request, cfg config.Config) (*runOutput, int, error) {
	defer r.Body.Close()
	if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("bad multipart form: %w", err)
	}

	descFile, descHdr, err := r.FormFile("descriptions")
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing descriptions file: %w", err)
	}
	defer descFile.Close()

	brandFile, brandHdr, err := r.FormFile("brands")
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing brands file: %w", err)
	}
	defer brandFile.Close()

	descHeaderRow := atoi(r.FormValue("desc_header_row"), 1)
	brandHeaderRow := atoi(r.FormValue("brand_header_row"), 1)

	descTab, err := fileio.ReadTable(descFile, descHdr.Filename, descHeaderRow)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("read descriptions: %w", err)
	}
	brandTab, err := fileio.ReadTable(brandFile, brandHdr.Filename, brandHeaderRow)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("read brands: %w", err)
	}

	descCol, descName, err := resolveColumn(descTab, r.FormValue("desc_column"), descColumnGuesses)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("descriptions: %w", err)
	}
	brandCol, brandName, err := resolveColumn(brandTab, r.FormValue("brand_column"), brandColumnGuesses)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("brands: %w", err)
	}

	idCol, idName := -1, ""
	if want := strings.TrimSpace(r.FormValue("desc_id_column")); want != "" {
		idCol, idName, err = resolveColumn(descTab, want, "")
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("descriptions: %w", err)
		}
	}

	opts := model.Options{
		MatchConfig: model.MatchConfig{
			Threshold: toFloat(r.FormValue("threshold"), cfg.DefaultThreshold),
			TopN:      atoi(r.FormValue("top_n"), cfg.DefaultTopN),
			Workers:   atoi(r.FormValue("workers"), cfg.MatchWorkers),
		},
		ByHeuristic: toBool(r.FormValue("by_heuristic"), true),
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.TopN > cfg.MaxTopN {
		return nil, http.StatusBadRequest, fmt.Errorf("top_n above limit %d", cfg.MaxTopN)
	}

	rep, err := matchSvc.Run(sourceRows(descTab, descCol, idCol), brandTab.Column(brandCol), opts)
	if err != nil {
		var cfgErr *model.InvalidConfigError
		if errors.As(err, &cfgErr) {
			return nil, http.StatusBadRequest, err
		}
		var scoreErr *model.ScoringError
		if errors.As(err, &scoreErr) {
			return nil, http.StatusUnprocessableEntity, err
		}
		return nil, http.StatusInternalServerError, err
	}
	rep.Columns = model.ColumnMapping{
		DescText:       descName,
		DescID:         idName,
		BrandText:      brandName,
		DescHeaderRow:  descHeaderRow,
		BrandHeaderRow: brandHeaderRow,
	}

	return &runOutput{report: rep, descs: descTab, brands: brandTab}, 0, nil
}
