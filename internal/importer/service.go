package importer

import (
	"fmt"
	"io"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/importer/clientcsv"
)

type Service struct {
	clientImporter Importer
}

func NewService() *Service {
	return &Service{
		clientImporter: clientcsv.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]client.Params, error) {
	var imp Importer

	switch format {
	case FormatClientCSV:
		imp = s.clientImporter
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return imp.Parse(r)
}
