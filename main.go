package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DeanThompson/ginpprof"
	"github.com/dkasparas/autonuoma/api"
	"github.com/dkasparas/autonuoma/cache"
	"github.com/dkasparas/autonuoma/config"
	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/dkasparas/autonuoma/notifier"
	"github.com/dkasparas/autonuoma/scheduler"
	"github.com/dkasparas/autonuoma/session"
	"github.com/dkasparas/autonuoma/worker"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// @title                       Autonuoma API
// @version                     1.0
// @description                 Vehicle rental administration service
// @securitydefinitions.apikey  ApiKeyAuth
// @in                          query
// @name                        apikey

func main() {
	if err := config.LoadCfg(); err != nil {
		println("config load failed: " + err.Error())
		os.Exit(1)
	}
	general := config.GetSettingsGeneral()

	logger.InitLogger(logger.Config{
		LogLevel:      general.LogLevel,
		LogFileSize:   general.LogFileSize,
		LogFileCount:  general.LogFileCount,
		LogCompress:   general.LogCompress,
		LogColorize:   general.LogColorize,
		LogToFileOnly: general.LogToFileOnly,
	})
	logger.Logtype("info").Msg("starting autonuoma")

	if general.EnableFileWatcher {
		watchConfig()
	}

	if err := database.UpgradeDB(general.DBFile); err != nil {
		logger.Logtype("fatal").Err(err).Msg("database migration")
	}
	if err := database.InitDB(general.DBFile); err != nil {
		logger.Logtype("fatal").Err(err).Msg("database open")
	}
	logger.Logtype("info").Str("schema", database.DBVersion).Msg("database ready")
	defer database.DBClose()

	store := cache.NewStore(
		time.Duration(general.CacheDuration)*time.Minute,
		10*time.Minute,
	)
	defer store.Close()

	sessions, err := session.NewStore(general.SessionDBFile,
		time.Duration(general.SessionHours)*time.Hour)
	if err != nil {
		logger.Logtype("fatal").Err(err).Msg("session store")
	}
	defer sessions.Close()

	notification := config.GetSettingsNotification()
	notify := notifier.NewPushoverClient(notification.PushoverAPIKey, notification.PushoverUser)

	logger.Logtype("info").Msg("starting worker pools")
	worker.CreateWorkerPools(4)
	if err := scheduler.InitScheduler(store, sessions, notify); err != nil {
		logger.Logtype("fatal").Err(err).Msg("scheduler")
	}

	if !strings.EqualFold(general.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.GinLogger(), gin.Recovery())
	router.Static("/static", "./static")

	server := api.NewServer(store, sessions, notify)
	server.AddRoutes(router)

	if general.EnablePprof {
		ginpprof.Wrap(router)
	}

	logger.Logtype("info").Str("port", general.WebPort).Msg("starting webserver")
	webserver := http.Server{
		Addr:              ":" + general.WebPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    20 << 20,
	}
	go func() {
		if err := webserver.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logtype("fatal").Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Logtype("info").Msg("server shutting down")

	scheduler.StopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webserver.Shutdown(ctx); err != nil {
		logger.Logtype("error").Err(err).Msg("shutdown")
	}
	logger.Logtype("info").Msg("server exiting")
}

// watchConfig reloads the settings when the config file changes on disk.
func watchConfig() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Logtype("error").Err(err).Msg("create config watcher")
		return
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) {
					continue
				}
				logger.Logtype("info").Str("file", event.Name).Msg("config changed, reloading")
				if err := config.LoadCfg(); err != nil {
					logger.Logtype("error").Err(err).Msg("config reload")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Logtype("error").Err(err).Msg("config watcher")
			}
		}
	}()
	if err := watcher.Add(config.Configfile); err != nil {
		logger.Logtype("error").Err(err).Msg("watch config file")
	}
}
