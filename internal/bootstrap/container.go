package bootstrap

import (
	"log"
	"time"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/config"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/controller"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/logger"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/mailer"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/service"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/confirm"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/intent"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/orchestrator"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/session"
)

type Container struct {
	AssistantController controller.IAssistantController

	Orchestrator *orchestrator.Orchestrator
	Directory    service.IDirectoryService
	Logger       logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	directory, err := service.NewDirectoryService(cfg.App.DataDir, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load directory: %v", err)
	}

	calendar, err := service.NewCalendarService(cfg.App.DataDir, cfg.Assistant, directory, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open calendar store: %v", err)
	}

	restaurants := service.NewRestaurantService(cfg.Keys.Geoapify, cfg.Assistant.MinRestaurantRating, sysLogger)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	resolver := resolve.New(directory)
	extractor := intent.NewExtractor(resolver, intent.Options{
		DefaultDurationMinutes: cfg.Assistant.DefaultDurationMinutes,
		TeamSizeLimit:          cfg.Assistant.TeamSizeLimit,
	})

	var generator orchestrator.ContentGenerator
	if ai := service.NewAIService(cfg.Keys.GoogleGemini, sysLogger); ai != nil {
		generator = ai
		log.Println("[INFO] AI drafting enabled (Gemini)")
	} else {
		log.Println("[INFO] AI drafting disabled, using built-in templates")
	}

	orch := orchestrator.New(orchestrator.Deps{
		Resolver:     resolver,
		Extractor:    extractor,
		Sessions:     session.NewManager(),
		Ledger:       confirm.NewLedger(),
		Availability: calendar,
		Calendar:     calendar,
		Notifier:     emailService,
		Places:       restaurants,
		Generator:    generator,
		Log:          sysLogger,
		Config: orchestrator.Config{
			SlotLimit:       cfg.Assistant.SlotLimit,
			RestaurantLimit: cfg.Assistant.RestaurantLimit,
			CallTimeout:     time.Duration(cfg.Assistant.CallTimeoutSeconds) * time.Second,
		},
	})

	return &Container{
		AssistantController: controller.NewAssistantController(orch, directory),
		Orchestrator:        orch,
		Directory:           directory,
		Logger:              sysLogger,
	}
}
