package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"brandmatch-service/internal/config"
	"brandmatch-service/internal/fileio"
)

// previewLimit caps the rows echoed back by /inspect.
const previewLimit = 20

type inspectResponse struct {
	Filename        string     `json:"filename"`
	Columns         []string   `json:"columns"`
	RowCount        int        `json:"rowCount"`
	Preview         [][]string `json:"preview"`
	SuggestedColumn string     `json:"suggestedColumn,omitempty"`
}

// Inspect answers POST /inspect: parse one uploaded table and report its
// columns, size, a short preview, and the column the matcher would pick.
// The optional "kind" field (descriptions|brands) selects the guess list.
func Inspect(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer f.Close()

		t, err := fileio.ReadTable(f, hdr.Filename, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "read file: "+err.Error())
			return
		}

		guesses := descColumnGuesses
		if strings.EqualFold(strings.TrimSpace(r.FormValue("kind")), "brands") {
			guesses = brandColumnGuesses
		}
		suggested := ""
		if _, name, err := resolveColumn(t, "", guesses); err == nil {
			suggested = name
		}

		preview := t.Rows
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}

		writeJSON(w, http.StatusOK, inspectResponse{
			Filename:        hdr.Filename,
			Columns:         t.Headers,
			RowCount:        t.RowCount(),
			Preview:         preview,
			SuggestedColumn: suggested,
		})

		log.Info().
			Str("file", hdr.Filename).
			Int("rows", t.RowCount()).
			Int("cols", len(t.Headers)).
			Msg("inspect done")
	}
}
