package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/encoding"
)

func TestNewUTF8Reader_Passthrough(t *testing.T) {
	input := "nome;telefone;endereço\nJoão Pereira;11 98888-0000;Rua das Flores 12\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "João;ação\n" in Windows-1252: ã = 0xE3, ç = 0xE7.
	input := []byte{'J', 'o', 0xE3, 'o', ';', 'a', 0xE7, 0xE3, 'o', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "João;ação\n", string(got))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	content := "nome;telefone\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "ab\n" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00, '\n', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ab\n", string(got))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
