package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/core/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
)

// --- Mock RoomRepository (full facade) ---
type MockRoomRepository struct {
	mock.Mock
}

// Ensure MockRoomRepository implements portsrepo.RoomRepositoryFacade
var _ portsrepo.RoomRepositoryFacade = (*MockRoomRepository)(nil)

func (m *MockRoomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListRoomsByProperty(ctx context.Context, propertyID string) ([]domain.Room, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FindRoomNamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error) {
	args := m.Called(ctx, roomIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) UpdateRoom(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, updatedByUserID string) error {
	args := m.Called(ctx, roomID, status, updatedByUserID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type RoomServiceTestSuite struct {
	suite.Suite
	mockRoomRepo *MockRoomRepository
	service      portssvc.RoomSvcFacade
	userID       string
	propertyID   string
}

func (suite *RoomServiceTestSuite) SetupTest() {
	suite.mockRoomRepo = new(MockRoomRepository)
	suite.service = services.NewRoomService(suite.mockRoomRepo)

	suite.userID = uuid.NewString()
	suite.propertyID = uuid.NewString()
}

func (suite *RoomServiceTestSuite) room(status domain.RoomStatus) *domain.Room {
	return &domain.Room{
		RoomID:     uuid.NewString(),
		PropertyID: suite.propertyID,
		Name:       "101",
		Status:     status,
	}
}

func (suite *RoomServiceTestSuite) TestCreateRoom_StartsAvailable() {
	ctx := context.Background()

	suite.mockRoomRepo.On("SaveRoom", ctx, mock.MatchedBy(func(r domain.Room) bool {
		return r.PropertyID == suite.propertyID &&
			r.Name == "Garden Suite" &&
			r.Status == domain.RoomAvailable &&
			r.CreatedBy == suite.userID
	})).Return(nil).Once()

	room, err := suite.service.CreateRoom(ctx, suite.propertyID, dto.CreateRoomRequest{Name: "Garden Suite"}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(room)
	suite.NotEmpty(room.RoomID)
	suite.Equal(domain.RoomAvailable, room.Status)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *RoomServiceTestSuite) TestSetRoomStatus_AllowedTransitions() {
	transitions := []struct {
		from domain.RoomStatus
		to   domain.RoomStatus
	}{
		{domain.RoomAvailable, domain.RoomOccupied},
		{domain.RoomAvailable, domain.RoomMaintenance},
		{domain.RoomOccupied, domain.RoomCleaning},
		{domain.RoomCleaning, domain.RoomAvailable},
		{domain.RoomMaintenance, domain.RoomAvailable},
	}

	for _, tc := range transitions {
		suite.Run(string(tc.from)+"_to_"+string(tc.to), func() {
			ctx := context.Background()
			mockRepo := new(MockRoomRepository)
			service := services.NewRoomService(mockRepo)
			room := suite.room(tc.from)

			mockRepo.On("FindRoomByID", ctx, room.RoomID).Return(room, nil).Once()
			mockRepo.On("UpdateRoomStatus", ctx, room.RoomID, tc.to, suite.userID).Return(nil).Once()

			updated, err := service.SetRoomStatus(ctx, suite.propertyID, room.RoomID, tc.to, suite.userID)

			suite.Require().NoError(err)
			suite.Equal(tc.to, updated.Status)
			mockRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *RoomServiceTestSuite) TestSetRoomStatus_RejectedTransitions() {
	transitions := []struct {
		from domain.RoomStatus
		to   domain.RoomStatus
	}{
		{domain.RoomAvailable, domain.RoomCleaning},
		{domain.RoomOccupied, domain.RoomAvailable},
		{domain.RoomOccupied, domain.RoomMaintenance},
		{domain.RoomCleaning, domain.RoomOccupied},
		{domain.RoomCleaning, domain.RoomMaintenance},
		{domain.RoomMaintenance, domain.RoomOccupied},
	}

	for _, tc := range transitions {
		suite.Run(string(tc.from)+"_to_"+string(tc.to), func() {
			ctx := context.Background()
			mockRepo := new(MockRoomRepository)
			service := services.NewRoomService(mockRepo)
			room := suite.room(tc.from)

			mockRepo.On("FindRoomByID", ctx, room.RoomID).Return(room, nil).Once()

			updated, err := service.SetRoomStatus(ctx, suite.propertyID, room.RoomID, tc.to, suite.userID)

			suite.Require().ErrorIs(err, apperrors.ErrValidation)
			suite.Nil(updated)
			mockRepo.AssertNotCalled(suite.T(), "UpdateRoomStatus")
		})
	}
}

func (suite *RoomServiceTestSuite) TestGetRoomByID_OtherPropertyIsNotFound() {
	ctx := context.Background()

	room := suite.room(domain.RoomAvailable)
	room.PropertyID = uuid.NewString() // belongs to someone else's property

	suite.mockRoomRepo.On("FindRoomByID", ctx, room.RoomID).Return(room, nil).Once()

	found, err := suite.service.GetRoomByID(ctx, suite.propertyID, room.RoomID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func (suite *RoomServiceTestSuite) TestCreateRoom_Forbidden() {
	ctx := context.Background()

	mockAuthorizer := new(MockPropertyAuthorizer)
	mockAuthorizer.On("AuthorizeUserForProperty", ctx, suite.userID, suite.propertyID).
		Return(apperrors.ErrForbidden).Once()

	service := services.NewRoomService(
		suite.mockRoomRepo,
		services.WithRoomPropertyAuthorizer(mockAuthorizer),
	)

	room, err := service.CreateRoom(ctx, suite.propertyID, dto.CreateRoomRequest{Name: "102"}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(room)
	suite.mockRoomRepo.AssertNotCalled(suite.T(), "SaveRoom")
	mockAuthorizer.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestRoomService(t *testing.T) {
	suite.Run(t, new(RoomServiceTestSuite))
}
