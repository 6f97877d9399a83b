package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV parses CSV with encoding auto-detection. UTF-8 and Windows-1251
// are handled; anything else is read as UTF-8 and cleaned downstream.
func readCSV(r io.Reader, headerRow int) (*Table, error) {
	br := bufio.NewReader(r)

	// sniff the charset from the first couple of KB
	peek, _ := br.Peek(2048)
	charset := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			charset = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch charset {
	case "windows-1251", "cp1251":
		dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return buildTable(rows, headerRow), nil
}
