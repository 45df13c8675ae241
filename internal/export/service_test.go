package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/financial"
)

type mockRepo struct {
	listEntriesFunc func(ctx context.Context, companyID uuid.UUID, filter financial.ListFilter) ([]*financial.Entry, error)
}

func (m *mockRepo) CreateEntry(ctx context.Context, e *financial.Entry) error { return nil }

func (m *mockRepo) GetEntry(ctx context.Context, companyID, id uuid.UUID) (*financial.Entry, error) {
	return nil, nil
}

func (m *mockRepo) ListEntries(ctx context.Context, companyID uuid.UUID, filter financial.ListFilter) ([]*financial.Entry, error) {
	if m.listEntriesFunc != nil {
		return m.listEntriesFunc(ctx, companyID, filter)
	}

	return nil, nil
}

func (m *mockRepo) UpdateEntry(ctx context.Context, e *financial.Entry) error { return nil }

func (m *mockRepo) DeleteEntry(ctx context.Context, companyID, id uuid.UUID) error { return nil }

type mockDirectory struct {
	clients map[uuid.UUID]*client.Client
	calls   int
}

func (m *mockDirectory) Get(ctx context.Context, companyID, id uuid.UUID) (*client.Client, error) {
	m.calls++

	c, ok := m.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}

	return c, nil
}

func TestService_WriteCSV(t *testing.T) {
	companyID := uuid.New()
	clientID := uuid.New()
	serviceID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []*financial.Entry{
		{
			EntryDate: date,
			Value:     25500,
			ClientID:  &clientID,
			ServiceID: &serviceID,
			Service:   &financial.ServiceRef{ID: serviceID, ServiceType: "maintenance"},
			Notes:     "maintenance - Ana Silva",
		},
		{
			EntryDate: date.AddDate(0, 0, 5),
			Value:     1050,
			ClientID:  &clientID,
			Notes:     "spare part sale",
		},
		{
			EntryDate: date.AddDate(0, 1, 0),
			Value:     -700,
			Notes:     "refund",
		},
	}

	repo := &mockRepo{
		listEntriesFunc: func(ctx context.Context, gotCompany uuid.UUID, filter financial.ListFilter) ([]*financial.Entry, error) {
			assert.Equal(t, companyID, gotCompany)
			return entries, nil
		},
	}
	dir := &mockDirectory{clients: map[uuid.UUID]*client.Client{
		clientID: {ID: clientID, FullName: "Ana Silva"},
	}}

	svc := NewService(financial.NewService(repo), dir)

	var buf bytes.Buffer

	err := svc.WriteCSV(context.Background(), companyID, financial.ListFilter{}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "entry_date,value,client,service_type,notes", lines[0])
	assert.Equal(t, "2024-03-10,255.00,Ana Silva,maintenance,maintenance - Ana Silva", lines[1])
	assert.Equal(t, "2024-03-15,10.50,Ana Silva,,spare part sale", lines[2])
	assert.Equal(t, "2024-04-10,-7.00,,,refund", lines[3])

	// Two rows share a client but the directory is hit once.
	assert.Equal(t, 1, dir.calls)
}

func TestService_WriteCSV_Empty(t *testing.T) {
	svc := NewService(financial.NewService(&mockRepo{}), &mockDirectory{})

	var buf bytes.Buffer

	err := svc.WriteCSV(context.Background(), uuid.New(), financial.ListFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "entry_date,value,client,service_type,notes\n", buf.String())
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", formatCents(0))
	assert.Equal(t, "0.05", formatCents(5))
	assert.Equal(t, "12.50", formatCents(1250))
	assert.Equal(t, "-3.07", formatCents(-307))
}
