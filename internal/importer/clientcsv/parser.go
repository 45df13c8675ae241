package clientcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/frostdesk/frostdesk/internal/client"
	enc "github.com/frostdesk/frostdesk/internal/encoding"
)

// Importer reads client lists exported from spreadsheets. Headers are
// matched in Portuguese and English; only the name column is mandatory.
// Rows sharing a phone number are collapsed into the first occurrence.
type Importer struct{}

func New() *Importer {
	return &Importer{}
}

// Recognized header names, lowercased.
var (
	nameCols     = []string{"nome", "nome completo", "name", "full name", "cliente"}
	phoneCols    = []string{"telefone", "celular", "fone", "phone"}
	addressCols  = []string{"endereço", "endereco", "address"}
	districtCols = []string{"bairro", "district"}
	cityCols     = []string{"cidade", "city"}
	notesCols    = []string{"observações", "observacoes", "obs", "notes"}
)

type colIndex struct {
	name     int
	phone    int
	address  int
	district int
	city     int
	notes    int
}

func (i *Importer) Parse(r io.Reader) ([]client.Params, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = detectSeparator(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected a name column (nome, name)")
	}

	var (
		params     []client.Params
		seenPhones = map[string]bool{}
	)

	for _, row := range rows[headerIdx+1:] {
		name := cellValue(row, cols.name)
		if name == "" {
			continue
		}

		phone := cellValue(row, cols.phone)
		if phone != "" {
			key := phoneKey(phone)
			if seenPhones[key] {
				continue
			}

			seenPhones[key] = true
		}

		params = append(params, client.Params{
			FullName: name,
			Phone:    phone,
			Address:  cellValue(row, cols.address),
			District: cellValue(row, cols.district),
			City:     cellValue(row, cols.city),
			Notes:    cellValue(row, cols.notes),
		})
	}

	return params, nil
}

// detectSeparator picks ';' or ',' by counting occurrences in the first
// line. Spreadsheet exports in pt-BR locales use ';'.
func detectSeparator(br *bufio.Reader) rune {
	head, _ := br.Peek(4096)
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte{';'}) >= bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}

// findHeader scans for the first row containing a recognizable name column.
func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := colIndex{name: -1, phone: -1, address: -1, district: -1, city: -1, notes: -1}

		for i, cell := range row {
			switch name := strings.ToLower(strings.TrimSpace(cell)); {
			case matches(name, nameCols):
				cols.name = i
			case matches(name, phoneCols):
				cols.phone = i
			case matches(name, addressCols):
				cols.address = i
			case matches(name, districtCols):
				cols.district = i
			case matches(name, cityCols):
				cols.city = i
			case matches(name, notesCols):
				cols.notes = i
			}
		}

		if cols.name != -1 {
			return cols, rowIdx, true
		}
	}

	return colIndex{}, 0, false
}

func matches(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}

	return false
}

// phoneKey normalizes a phone number to digits only for duplicate detection.
func phoneKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
