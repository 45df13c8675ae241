package importer

import (
	"io"

	"github.com/frostdesk/frostdesk/internal/client"
)

type Format string

const (
	FormatClientCSV Format = "clients"
)

type Importer interface {
	Parse(r io.Reader) ([]client.Params, error)
}
