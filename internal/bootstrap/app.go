package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-builder-backend/internal/account"
	"resume-builder-backend/internal/assist"
	googleauth "resume-builder-backend/internal/auth"
	"resume-builder-backend/internal/imports"
	"resume-builder-backend/internal/llm"
	openai "resume-builder-backend/internal/llm/openai"
	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/shared/authz"
	"resume-builder-backend/internal/shared/config"
	"resume-builder-backend/internal/shared/server"
	"resume-builder-backend/internal/shared/storage/db"
	"resume-builder-backend/internal/shared/storage/object"
	localstore "resume-builder-backend/internal/shared/storage/object/local"
	s3store "resume-builder-backend/internal/shared/storage/object/s3"
	"resume-builder-backend/internal/users"
	"resume-builder-backend/internal/versions"
	"resume-builder-backend/resume/model"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ResumesRepo  resumes.Repo
	VersionsRepo versions.Repo
	ImportsRepo  imports.Repo
	UsersRepo    users.Repo

	ResumesService  *resumes.Service
	VersionsService *versions.Service
	AssistService   *assist.Service
	ImportsService  *imports.Service
	AccountService  *account.Service
	UsersService    *users.Service

	ResumesHandler  *resumes.Handler
	VersionsHandler *versions.Handler
	AssistHandler   *assist.Handler
	ImportsHandler  *imports.Handler
	AccountHandler  *account.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		ResumeHandler:  app.ResumesHandler,
		VersionHandler: app.VersionsHandler,
		AssistHandler:  app.AssistHandler,
		ImportHandler:  app.ImportsHandler,
		AccountHandler: app.AccountHandler,
		GoogleAuth:     app.GoogleAuth,
	})

	return app, nil
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
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumeRepo resumes.Repo
	var versionRepo versions.Repo
	var importRepo imports.Repo
	var userRepo users.Repo

	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		versionRepo = &versions.PGRepo{DB: app.DB}
		importRepo = &imports.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		versionRepo = versions.NewMemoryRepo()
		importRepo = imports.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	owner := authz.OwnerOnly{}

	versionSvc := &versions.Service{
		Repo:    versionRepo,
		Resumes: resumeStoreAdapter{repo: resumeRepo},
		Authz:   owner,
	}
	resumeSvc := &resumes.Service{
		Repo:     resumeRepo,
		Versions: versionerAdapter{repo: versionRepo},
		Authz:    owner,
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if strings.TrimSpace(apiKey) == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; AI assist disabled")
		} else {
			openaiClient, err := openai.NewClient(apiKey, app.Config.LLMModel)
			if err != nil {
				return err
			}
			llmClient = openaiClient
		}
	}

	assistSvc := &assist.Service{LLM: llmClient}
	importSvc := &imports.Service{
		Store:   app.Store,
		Repo:    importRepo,
		Resumes: resumeSvc,
	}

	userSvc := users.NewService(userRepo)
	accountSvc := account.NewService(resumeSvc, versionSvc, importRepo, userSvc)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.ResumesRepo = resumeRepo
	app.VersionsRepo = versionRepo
	app.ImportsRepo = importRepo
	app.UsersRepo = userRepo
	app.ResumesService = resumeSvc
	app.VersionsService = versionSvc
	app.AssistService = assistSvc
	app.ImportsService = importSvc
	app.AccountService = accountSvc
	app.UsersService = userSvc
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.VersionsHandler = versions.NewHandler(versionSvc)
	app.AssistHandler = assist.NewHandler(assistSvc, resumeSvc)
	app.ImportsHandler = imports.NewHandler(importSvc)
	app.AccountHandler = account.NewHandler(accountSvc)
	app.GoogleAuth = googleAuthSvc

	if app.ResumesHandler == nil || app.VersionsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

// versionerAdapter lets the resumes service record snapshots without
// importing the versions package directly.
type versionerAdapter struct {
	repo versions.Repo
}

func (a versionerAdapter) WriteSnapshot(ctx context.Context, r resumes.Resume, title, changes, authorID string) error {
	_, err := a.repo.Create(ctx, versions.Version{
		ID:       uuid.NewString(),
		ResumeID: r.ID,
		Title:    strings.TrimSpace(title),
		Changes:  changes,
		Snapshot: versions.Snapshot{
			SchemaVersion: model.ContentSchemaVersion,
			Title:         r.Title,
			Content:       r.Content.Clone(),
			Tags:          append([]string(nil), r.Tags...),
		},
		CreatedBy: authorID,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

func (a versionerAdapter) PurgeByResume(ctx context.Context, resumeID string) error {
	return a.repo.DeleteByResume(ctx, resumeID)
}

// resumeStoreAdapter gives the version store a view of current resume
// state backed by the resumes repo.
type resumeStoreAdapter struct {
	repo resumes.Repo
}

func (a resumeStoreAdapter) GetByID(ctx context.Context, resumeID string) (versions.ResumeRecord, error) {
	r, err := a.repo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return versions.ResumeRecord{}, versions.ErrNotFound
		}
		return versions.ResumeRecord{}, err
	}
	return toRecord(r), nil
}

// Overwrite replaces the mutable fields of a resume with snapshot state.
// Identity, ownership, and creation time are preserved.
func (a resumeStoreAdapter) Overwrite(ctx context.Context, resumeID string, snap versions.Snapshot, now time.Time) (versions.ResumeRecord, error) {
	r, err := a.repo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return versions.ResumeRecord{}, versions.ErrNotFound
		}
		return versions.ResumeRecord{}, err
	}

	r.Title = snap.Title
	r.Content = snap.Content.Clone()
	r.Tags = append([]string(nil), snap.Tags...)
	r.LastModified = now
	r.UpdatedAt = now

	if err := a.repo.Update(ctx, r); err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return versions.ResumeRecord{}, versions.ErrNotFound
		}
		return versions.ResumeRecord{}, err
	}
	return toRecord(r), nil
}

func toRecord(r resumes.Resume) versions.ResumeRecord {
	return versions.ResumeRecord{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Content:      r.Content,
		Tags:         r.Tags,
		LastModified: r.LastModified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

var (
	_ resumes.Versioner    = versionerAdapter{}
	_ versions.ResumeStore = resumeStoreAdapter{}
)
