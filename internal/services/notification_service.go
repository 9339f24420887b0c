package services

import (
	"context"
	"fmt"

	"github.com/comunidad/petition-service/internal/models"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/utils"

	"github.com/rs/zerolog"
)

// NotificationService отвечает за создание и чтение уведомлений.
// Рассылка вызывается из других сервисов как best-effort: сбой рассылки
// логируется и никогда не откатывает основную операцию.
type NotificationService struct {
	Repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{Repo: repo, logger: logger}
}

// NotifyMatchingProviders уведомляет исполнителей, у которых совпадают
// профессия заявки и город обслуживания. Владелец заявки исключается.
func (s *NotificationService) NotifyMatchingProviders(ctx context.Context, petition *models.Petition, ownerUserID, professionName, cityName string) error {
	userIDs, err := s.Repo.MatchingProviderUserIDs(ctx, petition.ProfessionID, petition.CityID, ownerUserID)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		notification := &models.Notification{
			UserID:     userID,
			Title:      "New job opportunity",
			Message:    fmt.Sprintf("Looking for a %s in %s", professionName, cityName),
			Type:       models.NotificationInfo,
			Link:       "/petition/" + petition.ID,
			PetitionID: &petition.ID,
		}
		if err = s.Repo.Create(ctx, notification); err != nil {
			return err
		}
	}
	s.logger.Debug().Str("petitionId", petition.ID).Int("recipients", len(userIDs)).Msg("petition fan-out complete")
	return nil
}

// NotifyNewPostulation уведомляет владельца заявки о новом отклике.
func (s *NotificationService) NotifyNewPostulation(ctx context.Context, ownerUserID, petitionID, petitionDescription string) error {
	return s.Repo.Create(ctx, &models.Notification{
		UserID:     ownerUserID,
		Title:      "New postulation",
		Message:    "A provider has sent a proposal for: " + petitionDescription,
		Type:       models.NotificationInfo,
		Link:       "/petition/" + petitionID,
		PetitionID: &petitionID,
	})
}

// NotifyPostulationAccepted уведомляет победителя аджюдикации.
func (s *NotificationService) NotifyPostulationAccepted(ctx context.Context, userID, petitionID, postulationID, petitionDescription string) error {
	return s.Repo.Create(ctx, &models.Notification{
		UserID:        userID,
		Title:         "Proposal accepted!",
		Message:       "Congratulations, your proposal was accepted for: " + petitionDescription,
		Type:          models.NotificationSuccess,
		Link:          "/feed",
		PetitionID:    &petitionID,
		PostulationID: &postulationID,
	})
}

// NotifyPostulationRejected уведомляет отклоненного исполнителя.
func (s *NotificationService) NotifyPostulationRejected(ctx context.Context, userID, petitionID, petitionDescription string) error {
	return s.Repo.Create(ctx, &models.Notification{
		UserID:     userID,
		Title:      "Postulation closed",
		Message:    "The customer has selected another professional for: " + petitionDescription,
		Type:       models.NotificationWarning,
		Link:       "/feed",
		PetitionID: &petitionID,
	})
}

// List возвращает уведомления пользователя.
func (s *NotificationService) List(ctx context.Context, userID, limitStr, offsetStr string) ([]models.Notification, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.BadRequest(err.Error())
	}
	return s.Repo.List(ctx, userID, limit, offset)
}

// UnreadCount возвращает число непрочитанных уведомлений пользователя.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.UnreadCount(ctx, userID)
}

// MarkRead помечает уведомление прочитанным; доступно только его получателю.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.Repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return models.Forbidden("you do not have access to this notification")
	}
	return s.Repo.MarkRead(ctx, notificationID)
}
