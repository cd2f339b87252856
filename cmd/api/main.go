package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"gamebrain/internal/adapter/api"
	"gamebrain/internal/adapter/api/handler"
	apimiddleware "gamebrain/internal/adapter/api/middleware"
	"gamebrain/internal/adapter/api/router"
	"gamebrain/internal/adapter/repository"
	"gamebrain/internal/history"
	"gamebrain/internal/infrastructure/firebase"
	"gamebrain/internal/ui/loading"
	"gamebrain/internal/ui/notify"
	"gamebrain/internal/usecase"
	"gamebrain/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	gameRepo := repository.NewFirestoreGameRepository(firestoreClient)
	guideRepo := repository.NewFirestoreGuideRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	buildRepo := repository.NewFirestoreBuildRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	authState := firebase.NewAuthStateHub()
	authState.SetSignedOut()

	notifier := notify.NewNotifier()
	loader := loading.NewIndicator()
	historyStore := history.NewStore(cfg.HistoryFile)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, authState)
	browseManager := usecase.NewBrowseManager(guideRepo, gameRepo, favoriteRepo, userRepo, notifier, loader, authState)
	dashboardUseCase := usecase.NewDashboardUseCase(guideRepo, gameRepo, buildRepo, favoriteRepo, userRepo)

	handler.Setup(authUseCase, browseManager, dashboardUseCase, historyStore)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, authMiddleware, authClient)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
