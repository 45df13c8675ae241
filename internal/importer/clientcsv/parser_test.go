package clientcsv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/importer/clientcsv"
)

func TestParse_SemicolonSeparated(t *testing.T) {
	input := strings.Join([]string{
		"Nome;Telefone;Endereço;Bairro;Cidade",
		"Ana Silva;11 98888-0000;Rua das Flores 12;Centro;São Paulo",
		"Bruno Costa;11 97777-1111;Av. Paulista 1000;Bela Vista;São Paulo",
	}, "\n")

	got, err := clientcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Ana Silva", got[0].FullName)
	assert.Equal(t, "11 98888-0000", got[0].Phone)
	assert.Equal(t, "Rua das Flores 12", got[0].Address)
	assert.Equal(t, "Centro", got[0].District)
	assert.Equal(t, "São Paulo", got[0].City)
	assert.Equal(t, "Bruno Costa", got[1].FullName)
}

func TestParse_CommaSeparatedEnglishHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Name,Phone,City",
		"Carla Souza,21 96666-2222,Rio de Janeiro",
	}, "\n")

	got, err := clientcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Carla Souza", got[0].FullName)
	assert.Equal(t, "Rio de Janeiro", got[0].City)
}

func TestParse_PreambleBeforeHeader(t *testing.T) {
	// Exports often carry title rows before the real header.
	input := strings.Join([]string{
		"Lista de clientes;;",
		"Exportado em 2024-03-01;;",
		"Nome;Telefone;Cidade",
		"Ana Silva;11 98888-0000;São Paulo",
	}, "\n")

	got, err := clientcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana Silva", got[0].FullName)
}

func TestParse_CollapsesDuplicatePhones(t *testing.T) {
	input := strings.Join([]string{
		"Nome;Telefone",
		"Ana Silva;11 98888-0000",
		"Ana S.;(11) 98888-0000",
		"Bruno Costa;",
		"Carla Souza;",
	}, "\n")

	got, err := clientcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	// Same digits with different formatting collapse; blank phones never do.
	require.Len(t, got, 3)
	assert.Equal(t, "Ana Silva", got[0].FullName)
	assert.Equal(t, "Bruno Costa", got[1].FullName)
	assert.Equal(t, "Carla Souza", got[2].FullName)
}

func TestParse_SkipsBlankNames(t *testing.T) {
	input := strings.Join([]string{
		"Nome;Telefone",
		"Ana Silva;11 98888-0000",
		";11 90000-9999",
		"  ;",
	}, "\n")

	got, err := clientcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestParse_NoHeader(t *testing.T) {
	input := "foo;bar\n1;2\n"

	_, err := clientcsv.New().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParse_Windows1252Input(t *testing.T) {
	// "Nome;Endereço\nJoão;Rua A\n" with ç=0xE7, ã=0xE3.
	input := []byte("Nome;Endere")
	input = append(input, 0xE7, 'o', '\n')
	input = append(input, 'J', 'o', 0xE3, 'o', ';', 'R', 'u', 'a', ' ', 'A', '\n')

	got, err := clientcsv.New().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "João", got[0].FullName)
	assert.Equal(t, "Rua A", got[0].Address)
}
