package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/houseofcoffee/US-Chamber/directory"
	"github.com/houseofcoffee/US-Chamber/models"
	apierrors "github.com/houseofcoffee/US-Chamber/pkg/errors"
)

// MockSheetsClient is a mock implementation of SheetsClient
type MockSheetsClient struct {
	mock.Mock
}

func (m *MockSheetsClient) FetchMembers(ctx context.Context) ([]directory.RawMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.RawMember), args.Error(1)
}

func (m *MockSheetsClient) AddMember(ctx context.Context, form models.MemberFormData) (models.CreateMemberResponse, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(models.CreateMemberResponse), args.Error(1)
}

func validForm() models.MemberFormData {
	return models.MemberFormData{
		Name:         "Jane Doe",
		BusinessName: "Doe Dairy Farm",
		Email:        "jane@example.com",
		Phone:        "(555) 123-4567",
	}
}

func TestLoadDirectoryNormalizesAndSorts(t *testing.T) {
	sheets := new(MockSheetsClient)
	sheets.On("FetchMembers", mock.Anything).Return([]directory.RawMember{
		{ID: "m2", Name: "Bob Zeta", BusinessName: "Zeta Web Systems"},
		{ID: "m1", Name: "Ann Adams", BusinessName: "Adams Dairy Farm"},
	}, nil)

	service := NewMemberService(directory.NewStore(), sheets)
	require.NoError(t, service.LoadDirectory(context.Background()))

	all := service.Store().All()
	require.Len(t, all, 2)
	assert.Equal(t, "Ann Adams", all[0].Name)
	assert.Equal(t, "Bob Zeta", all[1].Name)
	assert.Equal(t, []models.Specialty{models.SpecialtyAgriculture}, all[0].Specialties)
}

func TestLoadDirectoryFailureDegradesToEmptyStore(t *testing.T) {
	sheets := new(MockSheetsClient)
	sheets.On("FetchMembers", mock.Anything).Return(nil, errors.New("connection refused"))

	store := directory.NewStore()
	store.Load([]models.Member{{ID: "stale"}})

	service := NewMemberService(store, sheets)
	err := service.LoadDirectory(context.Background())

	require.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNetwork, apiErr.Type)
	assert.Equal(t, 0, store.Len())
}

func TestCreateMemberValidationGateSkipsEndpoint(t *testing.T) {
	sheets := new(MockSheetsClient)
	service := NewMemberService(directory.NewStore(), sheets)

	form := validForm()
	form.Email = ""

	_, err := service.CreateMember(context.Background(), form)
	require.Error(t, err)

	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Fields, "email")

	sheets.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
	sheets.AssertNotCalled(t, "FetchMembers", mock.Anything)
}

func TestCreateMemberValidationReportsEveryMissingField(t *testing.T) {
	service := NewMemberService(directory.NewStore(), new(MockSheetsClient))

	apiErr := service.ValidateForm(models.MemberFormData{})
	require.NotNil(t, apiErr)
	assert.Contains(t, apiErr.Fields, "name")
	assert.Contains(t, apiErr.Fields, "businessName")
	assert.Contains(t, apiErr.Fields, "email")
}

func TestCreateMemberReloadsAfterCreate(t *testing.T) {
	sheets := new(MockSheetsClient)
	sheets.On("AddMember", mock.Anything, mock.Anything).
		Return(models.CreateMemberResponse{Success: true, ID: "srv-42"}, nil)
	sheets.On("FetchMembers", mock.Anything).Return([]directory.RawMember{
		{ID: "srv-42", Name: "Jane Doe", BusinessName: "Doe Dairy Farm", Email: "jane@example.com"},
		{ID: "m1", Name: "Ann Adams", BusinessName: "Adams Consulting"},
	}, nil)

	service := NewMemberService(directory.NewStore(), sheets)
	member, err := service.CreateMember(context.Background(), validForm())
	require.NoError(t, err)

	// The returned member is the server-confirmed record.
	assert.Equal(t, "srv-42", member.ID)
	assert.Equal(t, "Jane Doe", member.Name)

	// The store holds exactly what a fetch returns, nothing fabricated.
	all := service.Store().All()
	require.Len(t, all, 2)
	for _, m := range all {
		assert.Contains(t, []string{"srv-42", "m1"}, m.ID)
	}
	sheets.AssertCalled(t, "FetchMembers", mock.Anything)
	assert.False(t, service.Saving())
}

func TestCreateMemberTransportFailureLeavesStoreUntouched(t *testing.T) {
	sheets := new(MockSheetsClient)
	sheets.On("AddMember", mock.Anything, mock.Anything).
		Return(models.CreateMemberResponse{}, errors.New("endpoint unreachable"))

	store := directory.NewStore()
	store.Load([]models.Member{{ID: "m1", Name: "Ann Adams"}})

	service := NewMemberService(store, sheets)
	_, err := service.CreateMember(context.Background(), validForm())

	require.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNetwork, apiErr.Type)

	assert.Equal(t, 1, store.Len())
	sheets.AssertNotCalled(t, "FetchMembers", mock.Anything)
	assert.False(t, service.Saving())
}

func TestCreateMemberRejectsSecondInFlightCreate(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	sheets := new(MockSheetsClient)
	sheets.On("AddMember", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(models.CreateMemberResponse{Success: true, ID: "srv-1"}, nil)
	sheets.On("FetchMembers", mock.Anything).Return([]directory.RawMember{}, nil)

	service := NewMemberService(directory.NewStore(), sheets)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = service.CreateMember(context.Background(), validForm())
	}()

	<-entered
	assert.True(t, service.Saving())

	_, err := service.CreateMember(context.Background(), validForm())
	require.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeConflict, apiErr.Type)

	close(release)
	wg.Wait()
	assert.False(t, service.Saving())
}

func TestUpdateAndDeleteAreExplicitlyUnsupported(t *testing.T) {
	store := directory.NewStore()
	store.Load([]models.Member{{ID: "m1", Name: "Ann Adams"}})
	service := NewMemberService(store, new(MockSheetsClient))

	_, err := service.UpdateMember(context.Background(), "m1", validForm())
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeUnsupported, apiErr.Type)

	err = service.DeleteMember(context.Background(), "m1")
	apiErr = apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeUnsupported, apiErr.Type)
}

func TestVerifyPINRoundTrip(t *testing.T) {
	store := directory.NewStore()
	store.Load([]models.Member{{ID: "m1", Name: "Ann Adams", Email: "ann@example.com", PIN: "1234"}})
	service := NewMemberService(store, new(MockSheetsClient))

	member, err := service.VerifyPIN("m1", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Ann Adams", member.Name)
	assert.Equal(t, "ann@example.com", member.Email)

	_, err = service.VerifyPIN("m1", "9999")
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeUnauthorized, apiErr.Type)
	assert.Equal(t, "Incorrect PIN", apiErr.Message)
}

func TestVerifyPINFallsBackToPhoneLastFour(t *testing.T) {
	store := directory.NewStore()
	store.Load([]models.Member{{ID: "m1", Name: "Ann Adams", Phone: "(555) 123-4567"}})
	service := NewMemberService(store, new(MockSheetsClient))

	_, err := service.VerifyPIN("m1", "4567")
	require.NoError(t, err)

	_, err = service.VerifyPIN("m1", "1234")
	require.Error(t, err)
}

func TestVerifyPINRejectsWhenNoPINExists(t *testing.T) {
	store := directory.NewStore()
	store.Load([]models.Member{{ID: "m1", Name: "Ann Adams"}})
	service := NewMemberService(store, new(MockSheetsClient))

	_, err := service.VerifyPIN("m1", "")
	require.Error(t, err)
}

func TestLastFourDigits(t *testing.T) {
	assert.Equal(t, "4567", lastFourDigits("(555) 123-4567"))
	assert.Equal(t, "1234", lastFourDigits("1234"))
	assert.Equal(t, "", lastFourDigits("123"))
	assert.Equal(t, "", lastFourDigits(""))
}
