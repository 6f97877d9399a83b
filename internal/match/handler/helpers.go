package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"brandmatch-service/internal/fileio"
	"brandmatch-service/internal/match/model"
	"brandmatch-service/internal/middleware"
)

// Column names tried in order when the caller does not pick one. The same
// "a|b|c" alternative syntax works in the form fields themselves.
const (
	descColumnGuesses  = "description|descriptions|product_description|text"
	brandColumnGuesses = "brand|brands|name|manufacturer"
)

// resolveColumn returns the column index and header to use. An explicit
// want must resolve or the upload is rejected; with no want the guesses are
// tried and the first column is the final fallback.
func resolveColumn(t *fileio.Table, want, guesses string) (int, string, error) {
	if strings.TrimSpace(want) != "" {
		for _, alt := range strings.Split(want, "|") {
			if i := t.ColumnIndex(strings.TrimSpace(alt)); i >= 0 {
				return i, t.Headers[i], nil
			}
		}
		return -1, "", fmt.Errorf("column %q not found", want)
	}
	for _, alt := range strings.Split(guesses, "|") {
		if i := t.ColumnIndex(alt); i >= 0 {
			return i, t.Headers[i], nil
		}
	}
	if len(t.Headers) == 0 {
		return -1, "", errors.New("table has no columns")
	}
	return 0, t.Headers[0], nil
}

// sourceRows extracts the rows to match. Blank description cells are
// skipped; idCol < 0 means no data key column was chosen.
func sourceRows(t *fileio.Table, textCol, idCol int) []model.SourceRow {
	rows := make([]model.SourceRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		text := strings.TrimSpace(r[textCol])
		if text == "" {
			continue
		}
		row := model.SourceRow{Text: text}
		if idCol >= 0 {
			row.DataKey = strings.TrimSpace(r[idCol])
		}
		rows = append(rows, row)
	}
	return rows
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("rid", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
