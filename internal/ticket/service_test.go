package ticket_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/financial"
	"github.com/frostdesk/frostdesk/internal/ticket"
)

func TestService_Submit_CreateWithClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	stx := ticket.NewMockSubmitTx(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()
	clientID := uuid.New()
	ticketID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	lines := ticket.NewLineList()
	lines.Add(uuid.New(), "Gás R410A", 2000)
	lines.Add(uuid.New(), "Filtro secador", 500)

	clients.EXPECT().
		Get(gomock.Any(), companyID, clientID).
		Return(&client.Client{ID: clientID, FullName: "Ana Silva"}, nil)

	repo.EXPECT().BeginSubmit(gomock.Any()).Return(stx, nil)
	stx.EXPECT().
		CreateTicket(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tk *ticket.Ticket) error {
			assert.Equal(t, companyID, tk.CompanyID)
			assert.Equal(t, int64(2500), tk.TotalValue)
			tk.ID = ticketID
			tk.CreatedAt = time.Now()
			return nil
		})
	stx.EXPECT().
		CreateLines(gomock.Any(), ticketID, gomock.Len(2)).
		Return(nil)
	stx.EXPECT().
		UpsertEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *financial.Entry) error {
			assert.Equal(t, int64(2500), e.Value)
			assert.Equal(t, date, e.EntryDate)
			require.NotNil(t, e.ServiceID)
			assert.Equal(t, ticketID, *e.ServiceID)
			require.NotNil(t, e.ClientID)
			assert.Equal(t, clientID, *e.ClientID)
			assert.Equal(t, "maintenance - Ana Silva", e.Notes)
			return nil
		})
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	got, err := svc.Submit(context.Background(), companyID, ticket.SubmitParams{
		ServiceDate: date,
		ServiceType: "maintenance",
		ClientID:    &clientID,
	}, lines, nil)
	require.NoError(t, err)
	assert.Equal(t, ticketID, got.ID)
	assert.Equal(t, int64(2500), got.TotalValue)
	assert.Len(t, got.Lines, 2)
}

func TestService_Submit_CreateWithoutClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	stx := ticket.NewMockSubmitTx(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()
	lines := ticket.NewLineList()
	lines.Add(uuid.New(), "Gás R410A", 9000)

	// No client: no directory lookup and no financial entry.
	repo.EXPECT().BeginSubmit(gomock.Any()).Return(stx, nil)
	stx.EXPECT().
		CreateTicket(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tk *ticket.Ticket) error {
			tk.ID = uuid.New()
			return nil
		})
	stx.EXPECT().CreateLines(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	got, err := svc.Submit(context.Background(), companyID, ticket.SubmitParams{
		ServiceDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		ServiceType: "installation",
	}, lines, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), got.TotalValue)
}

func TestService_Submit_Edit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	stx := ticket.NewMockSubmitTx(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()
	clientID := uuid.New()
	existingID := uuid.New()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	lines := ticket.NewLineList(
		ticket.Line{InventoryItemID: uuid.New(), Name: "Compressor 1/4 HP", Quantity: 1, Price: 45000},
	)

	clients.EXPECT().
		Get(gomock.Any(), companyID, clientID).
		Return(&client.Client{ID: clientID, FullName: "Bruno Costa"}, nil)

	repo.EXPECT().BeginSubmit(gomock.Any()).Return(stx, nil)
	stx.EXPECT().
		UpdateTicket(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tk *ticket.Ticket) error {
			assert.Equal(t, existingID, tk.ID)
			assert.Equal(t, int64(45000), tk.TotalValue)
			return nil
		})
	stx.EXPECT().DeleteLines(gomock.Any(), existingID).Return(nil)
	stx.EXPECT().CreateLines(gomock.Any(), existingID, gomock.Len(1)).Return(nil)
	stx.EXPECT().
		UpsertEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *financial.Entry) error {
			assert.Equal(t, "repair - Bruno Costa", e.Notes)
			assert.Equal(t, int64(45000), e.Value)
			return nil
		})
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	got, err := svc.Submit(context.Background(), companyID, ticket.SubmitParams{
		ServiceDate: date,
		ServiceType: "repair",
		ClientID:    &clientID,
	}, lines, &existingID)
	require.NoError(t, err)
	assert.Equal(t, existingID, got.ID)
}

func TestService_Submit_NoLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	stx := ticket.NewMockSubmitTx(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()

	// Zero lines is a valid ticket with total 0; CreateLines is skipped.
	repo.EXPECT().BeginSubmit(gomock.Any()).Return(stx, nil)
	stx.EXPECT().
		CreateTicket(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tk *ticket.Ticket) error {
			assert.Equal(t, int64(0), tk.TotalValue)
			tk.ID = uuid.New()
			return nil
		})
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	got, err := svc.Submit(context.Background(), companyID, ticket.SubmitParams{
		ServiceDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		ServiceType: "inspection",
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.TotalValue)
	assert.Empty(t, got.Lines)
}

func TestService_Submit_Validation(t *testing.T) {
	type testCase struct {
		name    string
		params  ticket.SubmitParams
		wantErr error
	}

	tests := []testCase{
		{
			name:    "MissingDate",
			params:  ticket.SubmitParams{ServiceType: "maintenance"},
			wantErr: ticket.ErrDateRequired,
		},
		{
			name:    "MissingType",
			params:  ticket.SubmitParams{ServiceDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
			wantErr: ticket.ErrTypeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ticket.NewMockRepository(ctrl)
			clients := ticket.NewMockClientDirectory(ctrl)
			svc := ticket.NewService(repo, clients)

			got, err := svc.Submit(context.Background(), uuid.New(), tt.params, nil, nil)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_Submit_RollsBackOnEntryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	stx := ticket.NewMockSubmitTx(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()
	clientID := uuid.New()

	clients.EXPECT().
		Get(gomock.Any(), companyID, clientID).
		Return(&client.Client{ID: clientID, FullName: "Ana Silva"}, nil)

	repo.EXPECT().BeginSubmit(gomock.Any()).Return(stx, nil)
	stx.EXPECT().
		CreateTicket(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tk *ticket.Ticket) error {
			tk.ID = uuid.New()
			return nil
		})
	stx.EXPECT().UpsertEntry(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
	stx.EXPECT().Rollback().Return(nil)

	got, err := svc.Submit(context.Background(), companyID, ticket.SubmitParams{
		ServiceDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		ServiceType: "maintenance",
		ClientID:    &clientID,
	}, nil, nil)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestService_Submit_ClientLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()
	clientID := uuid.New()

	clients.EXPECT().
		Get(gomock.Any(), companyID, clientID).
		Return(nil, client.ErrNotFound)

	got, err := svc.Submit(context.Background(), companyID, ticket.SubmitParams{
		ServiceDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		ServiceType: "maintenance",
		ClientID:    &clientID,
	}, nil, nil)
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ticket.NewMockRepository(ctrl)
	clients := ticket.NewMockClientDirectory(ctrl)
	svc := ticket.NewService(repo, clients)

	companyID := uuid.New()
	id := uuid.New()

	repo.EXPECT().DeleteTicket(gomock.Any(), companyID, id).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), companyID, id))
}
