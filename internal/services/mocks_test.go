package services

import (
	"context"

	"github.com/comunidad/petition-service/internal/models"
)

// Моки репозиториев на функциональных полях: тест задает только те
// методы, которые ожидает увидеть вызванными.

type mockUserRepo struct {
	RegisterFn             func(ctx context.Context, user *models.User) error
	GetByEmailFn           func(ctx context.Context, email string) (*models.User, error)
	GetByIDFn              func(ctx context.Context, id string) (*models.User, error)
	GetCustomerByUserIDFn  func(ctx context.Context, userID string) (*models.Customer, error)
	GetCustomerByIDFn      func(ctx context.Context, id string) (*models.Customer, error)
	GetProviderByUserIDFn  func(ctx context.Context, userID string) (*models.Provider, error)
	GetProviderByIDFn      func(ctx context.Context, id string) (*models.Provider, error)
	UpdateUserFn           func(ctx context.Context, id string, name, lastname, profileImage *string) error
	DeactivateFn           func(ctx context.Context, id string) error
	UpdateCustomerFn       func(ctx context.Context, customerID string, phone *string) error
	UpdateProviderFn       func(ctx context.Context, providerID string, description, professionID *string) error
	SetProviderCitiesFn    func(ctx context.Context, providerID string, cityIDs []string) error
	GetProviderCityNamesFn func(ctx context.Context, providerID string) ([]string, error)
}

func (m *mockUserRepo) Register(ctx context.Context, user *models.User) error {
	return m.RegisterFn(ctx, user)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, id string, name, lastname, profileImage *string) error {
	return m.UpdateUserFn(ctx, id, name, lastname, profileImage)
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFn(ctx, id)
}

func (m *mockUserRepo) GetCustomerByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	return m.GetCustomerByUserIDFn(ctx, userID)
}

func (m *mockUserRepo) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	return m.GetCustomerByIDFn(ctx, id)
}

func (m *mockUserRepo) GetProviderByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	return m.GetProviderByUserIDFn(ctx, userID)
}

func (m *mockUserRepo) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	return m.GetProviderByIDFn(ctx, id)
}

func (m *mockUserRepo) UpdateCustomer(ctx context.Context, customerID string, phone *string) error {
	return m.UpdateCustomerFn(ctx, customerID, phone)
}

func (m *mockUserRepo) UpdateProvider(ctx context.Context, providerID string, description, professionID *string) error {
	return m.UpdateProviderFn(ctx, providerID, description, professionID)
}

func (m *mockUserRepo) SetProviderCities(ctx context.Context, providerID string, cityIDs []string) error {
	return m.SetProviderCitiesFn(ctx, providerID, cityIDs)
}

func (m *mockUserRepo) GetProviderCityNames(ctx context.Context, providerID string) ([]string, error) {
	return m.GetProviderCityNamesFn(ctx, providerID)
}

type mockCatalogRepo struct {
	GetProfessionsFn   func(ctx context.Context) ([]models.Profession, error)
	GetCitiesFn        func(ctx context.Context) ([]models.City, error)
	GetPetitionTypesFn func(ctx context.Context) ([]models.PetitionType, error)
	GetProfessionFn    func(ctx context.Context, id string) (*models.Profession, error)
	GetCityFn          func(ctx context.Context, id string) (*models.City, error)
	GetPetitionTypeFn  func(ctx context.Context, id string) (*models.PetitionType, error)
}

func (m *mockCatalogRepo) GetProfessions(ctx context.Context) ([]models.Profession, error) {
	return m.GetProfessionsFn(ctx)
}

func (m *mockCatalogRepo) GetCities(ctx context.Context) ([]models.City, error) {
	return m.GetCitiesFn(ctx)
}

func (m *mockCatalogRepo) GetPetitionTypes(ctx context.Context) ([]models.PetitionType, error) {
	return m.GetPetitionTypesFn(ctx)
}

func (m *mockCatalogRepo) GetProfession(ctx context.Context, id string) (*models.Profession, error) {
	return m.GetProfessionFn(ctx, id)
}

func (m *mockCatalogRepo) GetCity(ctx context.Context, id string) (*models.City, error) {
	return m.GetCityFn(ctx, id)
}

func (m *mockCatalogRepo) GetPetitionType(ctx context.Context, id string) (*models.PetitionType, error) {
	return m.GetPetitionTypeFn(ctx, id)
}

type mockPetitionRepo struct {
	CreateFn       func(ctx context.Context, petition *models.Petition) error
	GetByIDFn      func(ctx context.Context, id string) (*models.Petition, error)
	GetWithOwnerFn func(ctx context.Context, id string) (*models.Petition, string, error)
	FeedFn         func(ctx context.Context, excludeUserID string, limit, offset int) ([]models.PetitionResponse, error)
	MineFn         func(ctx context.Context, customerID string, limit, offset int) ([]models.PetitionResponse, error)
	SetStateFn     func(ctx context.Context, id string, state models.PetitionState, isDeleted bool) error
}

func (m *mockPetitionRepo) Create(ctx context.Context, petition *models.Petition) error {
	return m.CreateFn(ctx, petition)
}

func (m *mockPetitionRepo) GetByID(ctx context.Context, id string) (*models.Petition, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockPetitionRepo) GetWithOwner(ctx context.Context, id string) (*models.Petition, string, error) {
	return m.GetWithOwnerFn(ctx, id)
}

func (m *mockPetitionRepo) Feed(ctx context.Context, excludeUserID string, limit, offset int) ([]models.PetitionResponse, error) {
	return m.FeedFn(ctx, excludeUserID, limit, offset)
}

func (m *mockPetitionRepo) Mine(ctx context.Context, customerID string, limit, offset int) ([]models.PetitionResponse, error) {
	return m.MineFn(ctx, customerID, limit, offset)
}

func (m *mockPetitionRepo) SetState(ctx context.Context, id string, state models.PetitionState, isDeleted bool) error {
	return m.SetStateFn(ctx, id, state, isDeleted)
}

type mockPostulationRepo struct {
	CreateFn                func(ctx context.Context, postulation *models.Postulation) error
	GetByIDFn               func(ctx context.Context, id string) (*models.Postulation, error)
	ExistsForPairFn         func(ctx context.Context, petitionID, providerID string) (bool, error)
	ListForPetitionFn       func(ctx context.Context, petitionID string) ([]models.PostulationResponse, error)
	MineFn                  func(ctx context.Context, providerID string, limit, offset int) ([]models.PostulationResponse, error)
	AdjudicateFn            func(ctx context.Context, postulationID string) (*models.AdjudicationResult, error)
	HasWinningPostulationFn func(ctx context.Context, petitionID, providerID string) (bool, error)
}

func (m *mockPostulationRepo) Create(ctx context.Context, postulation *models.Postulation) error {
	return m.CreateFn(ctx, postulation)
}

func (m *mockPostulationRepo) GetByID(ctx context.Context, id string) (*models.Postulation, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockPostulationRepo) ExistsForPair(ctx context.Context, petitionID, providerID string) (bool, error) {
	return m.ExistsForPairFn(ctx, petitionID, providerID)
}

func (m *mockPostulationRepo) ListForPetition(ctx context.Context, petitionID string) ([]models.PostulationResponse, error) {
	return m.ListForPetitionFn(ctx, petitionID)
}

func (m *mockPostulationRepo) Mine(ctx context.Context, providerID string, limit, offset int) ([]models.PostulationResponse, error) {
	return m.MineFn(ctx, providerID, limit, offset)
}

func (m *mockPostulationRepo) Adjudicate(ctx context.Context, postulationID string) (*models.AdjudicationResult, error) {
	return m.AdjudicateFn(ctx, postulationID)
}

func (m *mockPostulationRepo) HasWinningPostulation(ctx context.Context, petitionID, providerID string) (bool, error) {
	return m.HasWinningPostulationFn(ctx, petitionID, providerID)
}

type mockGradeRepo struct {
	CreateProviderGradeFn func(ctx context.Context, grade *models.Grade) error
	CreateCustomerGradeFn func(ctx context.Context, grade *models.Grade) error
	HasProviderGradeFn    func(ctx context.Context, petitionID, customerID, providerID string) (bool, error)
	HasCustomerGradeFn    func(ctx context.Context, petitionID, customerID, providerID string) (bool, error)
	ProviderReviewsFn     func(ctx context.Context, providerID string, limit, offset int) ([]models.ReviewResponse, error)
	ProviderRatingFn      func(ctx context.Context, providerID string) (float64, int, error)
}

func (m *mockGradeRepo) CreateProviderGrade(ctx context.Context, grade *models.Grade) error {
	return m.CreateProviderGradeFn(ctx, grade)
}

func (m *mockGradeRepo) CreateCustomerGrade(ctx context.Context, grade *models.Grade) error {
	return m.CreateCustomerGradeFn(ctx, grade)
}

func (m *mockGradeRepo) HasProviderGrade(ctx context.Context, petitionID, customerID, providerID string) (bool, error) {
	return m.HasProviderGradeFn(ctx, petitionID, customerID, providerID)
}

func (m *mockGradeRepo) HasCustomerGrade(ctx context.Context, petitionID, customerID, providerID string) (bool, error) {
	return m.HasCustomerGradeFn(ctx, petitionID, customerID, providerID)
}

func (m *mockGradeRepo) ProviderReviews(ctx context.Context, providerID string, limit, offset int) ([]models.ReviewResponse, error) {
	return m.ProviderReviewsFn(ctx, providerID, limit, offset)
}

func (m *mockGradeRepo) ProviderRating(ctx context.Context, providerID string) (float64, int, error) {
	return m.ProviderRatingFn(ctx, providerID)
}

type mockChatRepo struct {
	FindOrCreateConversationFn func(ctx context.Context, petitionID, userID, targetUserID string) (*models.Conversation, error)
	MyConversationsFn          func(ctx context.Context, userID string) ([]models.ConversationResponse, error)
	IsParticipantFn            func(ctx context.Context, conversationID, userID string) (bool, error)
	MessagesFn                 func(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, error)
	CreateMessageFn            func(ctx context.Context, conversationID, senderID, content string) (*models.Message, error)
	MarkReadFn                 func(ctx context.Context, conversationID, userID string) error
}

func (m *mockChatRepo) FindOrCreateConversation(ctx context.Context, petitionID, userID, targetUserID string) (*models.Conversation, error) {
	return m.FindOrCreateConversationFn(ctx, petitionID, userID, targetUserID)
}

func (m *mockChatRepo) MyConversations(ctx context.Context, userID string) ([]models.ConversationResponse, error) {
	return m.MyConversationsFn(ctx, userID)
}

func (m *mockChatRepo) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	return m.IsParticipantFn(ctx, conversationID, userID)
}

func (m *mockChatRepo) Messages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, error) {
	return m.MessagesFn(ctx, conversationID, limit, offset)
}

func (m *mockChatRepo) CreateMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	return m.CreateMessageFn(ctx, conversationID, senderID, content)
}

func (m *mockChatRepo) MarkRead(ctx context.Context, conversationID, userID string) error {
	return m.MarkReadFn(ctx, conversationID, userID)
}

type mockNotificationRepo struct {
	CreateFn                  func(ctx context.Context, notification *models.Notification) error
	MatchingProviderUserIDsFn func(ctx context.Context, professionID, cityID, excludeUserID string) ([]string, error)
	ListFn                    func(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	UnreadCountFn             func(ctx context.Context, userID string) (int64, error)
	GetByIDFn                 func(ctx context.Context, id string) (*models.Notification, error)
	MarkReadFn                func(ctx context.Context, id string) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	return m.CreateFn(ctx, notification)
}

func (m *mockNotificationRepo) MatchingProviderUserIDs(ctx context.Context, professionID, cityID, excludeUserID string) ([]string, error) {
	return m.MatchingProviderUserIDsFn(ctx, professionID, cityID, excludeUserID)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	return m.ListFn(ctx, userID, limit, offset)
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return m.UnreadCountFn(ctx, userID)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error {
	return m.MarkReadFn(ctx, id)
}
