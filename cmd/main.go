package main

import (
	"net/http"
	"os"
	"time"

	"github.com/comunidad/petition-service/internal/auth"
	"github.com/comunidad/petition-service/internal/db"
	"github.com/comunidad/petition-service/internal/handlers"
	"github.com/comunidad/petition-service/internal/repository"
	"github.com/comunidad/petition-service/internal/router"
	"github.com/comunidad/petition-service/internal/router/config"
	"github.com/comunidad/petition-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

const handlerTimeout = 5 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set")
	}

	runDBMigration(logger, cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error initializing database")
	}
	defer dbPool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	catalogRepo := repository.NewPostgresCatalogRepository(dbPool)
	petitionRepo := repository.NewPostgresPetitionRepository(dbPool)
	postulationRepo := repository.NewPostgresPostulationRepository(dbPool)
	gradeRepo := repository.NewPostgresGradeRepository(dbPool)
	chatRepo := repository.NewPostgresChatRepository(dbPool)
	notificationRepo := repository.NewPostgresNotificationRepository(dbPool)

	notificationService := services.NewNotificationService(notificationRepo, logger)
	authService := services.NewAuthService(userRepo, jwtManager)
	userService := services.NewUserService(userRepo, catalogRepo, gradeRepo)
	metadataService := services.NewMetadataService(catalogRepo)
	petitionService := services.NewPetitionService(petitionRepo, userRepo, catalogRepo, notificationService, logger)
	postulationService := services.NewPostulationService(postulationRepo, petitionRepo, userRepo, notificationService, logger)
	gradeService := services.NewGradeService(gradeRepo, petitionRepo, postulationRepo, userRepo)
	chatService := services.NewChatService(chatRepo, petitionRepo, userRepo)

	routes := router.InitRoutes(router.Handlers{
		Auth:         handlers.NewAuthHandler(authService, logger, handlerTimeout),
		User:         handlers.NewUserHandler(userService, logger, handlerTimeout),
		Metadata:     handlers.NewMetadataHandler(metadataService, logger, handlerTimeout),
		Petition:     handlers.NewPetitionHandler(petitionService, logger, handlerTimeout),
		Postulation:  handlers.NewPostulationHandler(postulationService, logger, handlerTimeout),
		Grade:        handlers.NewGradeHandler(gradeService, logger, handlerTimeout),
		Chat:         handlers.NewChatHandler(chatService, logger, handlerTimeout),
		Notification: handlers.NewNotificationHandler(notificationService, logger, handlerTimeout),
	}, jwtManager, logger)

	logger.Info().Str("address", cfg.ServerAddress).Msg("server is listening")
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func runDBMigration(logger zerolog.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create a new migrate instance")
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal().Err(err).Msg("failed to run migrate up")
	}
	logger.Info().Msg("db migrated successfully")
}
