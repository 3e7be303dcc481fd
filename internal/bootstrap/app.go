package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Weboses/analyse.arsenio/internal/analysis"
	"github.com/Weboses/analyse.arsenio/internal/leads"
	"github.com/Weboses/analyse.arsenio/internal/llm"
	"github.com/Weboses/analyse.arsenio/internal/llm/anthropic"
	"github.com/Weboses/analyse.arsenio/internal/mail"
	"github.com/Weboses/analyse.arsenio/internal/pagespeed"
	"github.com/Weboses/analyse.arsenio/internal/scrape"
	"github.com/Weboses/analyse.arsenio/internal/seo"
	"github.com/Weboses/analyse.arsenio/internal/services/health"
	"github.com/Weboses/analyse.arsenio/internal/shared/config"
	"github.com/Weboses/analyse.arsenio/internal/shared/metrics"
	"github.com/Weboses/analyse.arsenio/internal/shared/server"
	"github.com/Weboses/analyse.arsenio/internal/shared/storage/db"
	"github.com/Weboses/analyse.arsenio/internal/tasks"
)

// App holds the wired dependencies for the API process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	LeadsRepo    leads.Repo
	AnalysisRepo analysis.Repo

	Service *analysis.Service
	Runner  *tasks.InProcess
	Metrics *metrics.Metrics
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var leadsRepo leads.Repo
	var analysisRepo analysis.Repo
	if sqlDB != nil {
		leadsRepo = &leads.PGRepo{DB: sqlDB}
		analysisRepo = &analysis.PGRepo{DB: sqlDB}
	} else {
		leadsRepo = leads.NewMemoryRepo()
		analysisRepo = analysis.NewMemoryRepo()
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	mailer, err := buildMailer(cfg)
	if err != nil {
		return nil, err
	}

	runner := tasks.NewInProcess(cfg.ProcessTimeout)
	m := metrics.New()

	svc := &analysis.Service{
		Repo:        analysisRepo,
		Leads:       leadsRepo,
		PageSpeed:   pagespeed.New(cfg.PageSpeedAPIKey),
		Scraper:     scrape.New(),
		Links:       scrape.NewLinkChecker(cfg.LinkCheckLimit),
		SEO:         seo.NewDataForSEO(cfg.DataForSEOLogin, cfg.DataForSEOPassword),
		LLM:         llmClient,
		Mailer:      mailer,
		Runner:      runner,
		Metrics:     m,
		AutoProcess: cfg.AutoProcess,
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		LeadsRepo:    leadsRepo,
		AnalysisRepo: analysisRepo,
		Service:      svc,
		Runner:       runner,
		Metrics:      m,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Analysis: &analysis.Handler{Service: svc},
		Health:   health.NewService(),
		Metrics:  m,
	})
	return app, nil
}

// Shutdown drains in-flight analyses and releases the database pool.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.Runner != nil {
		err = a.Runner.Shutdown(ctx)
	}
	if a.DB != nil {
		if closeErr := a.DB.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
		log.Printf("bootstrap: ANTHROPIC_API_KEY empty; reports will use fallback content")
		return llm.PlaceholderClient{}, nil
	}
	return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
}

func buildMailer(cfg config.Config) (mail.Mailer, error) {
	if strings.TrimSpace(cfg.BrevoAPIKey) == "" {
		log.Printf("bootstrap: BREVO_API_KEY empty; report emails are disabled")
		return mail.PlaceholderMailer{}, nil
	}
	return mail.NewBrevo(cfg.BrevoAPIKey, mail.Sender{
		Name:  cfg.MailSender.Name,
		Email: cfg.MailSender.Address,
	})
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
