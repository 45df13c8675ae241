package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frostdesk/frostdesk/internal/inventory"
)

func TestSearch(t *testing.T) {
	catalog := []*inventory.Item{
		{Name: "Gás R410A"},
		{Name: "Filtro secador"},
		{Name: "Compressor 1/4 HP"},
		{Name: "Suporte compressor"},
	}

	tests := []struct {
		name      string
		term      string
		wantNames []string
	}{
		{
			name:      "EmptyTermYieldsNothing",
			term:      "",
			wantNames: nil,
		},
		{
			name:      "CaseInsensitiveSubstring",
			term:      "COMPRES",
			wantNames: []string{"Compressor 1/4 HP", "Suporte compressor"},
		},
		{
			name:      "NoMatch",
			term:      "ventilador",
			wantNames: nil,
		},
		{
			name:      "SingleMatch",
			term:      "filtro",
			wantNames: []string{"Filtro secador"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.Search(catalog, tt.term)

			var names []string
			for _, item := range got {
				names = append(names, item.Name)
			}

			assert.Equal(t, tt.wantNames, names)
		})
	}
}
