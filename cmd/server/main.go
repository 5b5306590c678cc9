package main

import (
	"context"
	"log"

	"github.com/haapio/accounts/internal"
	"github.com/haapio/accounts/internal/handler"
	"github.com/haapio/accounts/internal/security"
	"github.com/haapio/accounts/internal/service"
	"github.com/haapio/accounts/internal/settings"
	"github.com/haapio/accounts/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func main() {
	settings.ReadDotenv(internal.DotEnvPath)
	settings.Settings = settings.NewSettings()
	hashKey, blockKey := security.NewKeys()
	rdb := store.InitDatabase(true)
	defer rdb.Close()
	rwdb := store.InitDatabase(false)
	defer rwdb.Close()
	if !settings.Settings.UsesPostgres() {
		store.RunMigrations(rwdb, internal.MigrationsDir)
	}

	scheduler := service.NewScheduler()
	defer scheduler.Shutdown()

	userStore := store.NewUserSQLStore(rdb, rwdb)
	permissionStore := store.NewPermissionSQLStore(rdb, rwdb)
	sessionStore := store.NewSessionStore(settings.Settings.SessionExpires)

	if path := settings.Settings.GrantsPath; path != "" {
		if err := service.ReplaceGrantsFromFile(
			context.Background(), permissionStore, path,
		); err != nil {
			log.Fatal("err loading grants file: ", err)
		}
	}
	authorizer, err := service.NewAuthorizer(context.Background(), permissionStore)
	if err != nil {
		log.Fatal("err building authorizer: ", err)
	}

	cookieSvc := service.NewCookieService(hashKey, blockKey)
	userSvc := service.NewUserService(userStore)
	sessionSvc := service.NewSessionService(sessionStore, userStore)

	userSvc.InitializeAdmin(context.Background())

	sessionStore.ScheduleDailyCleanUp(scheduler)
	scheduler.Start()

	e := setupEcho()
	g := e.Group("", handler.SessionMiddleware(sessionSvc, cookieSvc))
	handler.SetupAuthRoutes(g, userSvc, sessionSvc, authorizer)
	handler.SetupUserRoutes(g, userSvc, authorizer)

	internal.GracefulShutdown(e, settings.Settings.Port)
}

func setupEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(
		middleware.CORSWithConfig(internal.GetCORSConfig()),
		middleware.RateLimiterWithConfig(internal.GetRateLimiterConfig()),
	)
	return e
}
