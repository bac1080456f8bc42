package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"caisse/api"
	"caisse/config"
	"caisse/database"
	"caisse/middleware"
	"caisse/models"
	"caisse/router"
	"caisse/service"
	"caisse/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Caisse API
// @version 1.0
// @description 教会收支登记后端：用户、奉献收入、支出、汇总与 Excel 导出
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "v1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 3000 或 :3000")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if showVersion {
		log.Infof("caisse %s", version)
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Server.Mode == gin.ReleaseMode {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	gin.SetMode(cfg.Server.Mode)

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Infof("命令行指定端口: %s", port)
	}

	config.PrintConfig(log, cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置校验失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds := service.NewCredentials(cfg.Auth.BcryptCost)
	db, err := database.Init(ctx, cfg, creds, log)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// 业务服务
	offeringTypes := cfg.Ledger.OfferingTypes
	if len(offeringTypes) == 0 {
		offeringTypes = models.GetOfferingTypes()
	}
	entryKind := service.EntryKind(offeringTypes)
	exitKind := service.ExitKind(offeringTypes, cfg.Ledger.ExtraExitTypes, cfg.Ledger.LenientExitTypes)
	entries := service.NewEntryLedger(db, entryKind, log)
	exits := service.NewExitLedger(db, exitKind, log)
	exporter := service.NewExporter(entries, exits)

	authService := service.NewAuthService(db, creds, service.NewEmailService(&cfg.Email), log)
	users := service.NewUserDirectory(db, creds, log)
	reporter, err := service.NewReporter(db)
	if err != nil {
		log.Fatalf("初始化汇总失败: %v", err)
	}

	// 备份存储可选
	var store storage.Service
	s3Service, err := storage.NewS3ServiceFromConfig(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatalf("初始化对象存储失败: %v", err)
	}
	if s3Service != nil {
		store = s3Service
	}

	jwt := middleware.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	r := router.SetupRouter(router.Deps{
		Config:  cfg,
		Log:     log,
		JWT:     jwt,
		Gate:    service.NewReservedAdminPolicy(cfg.Auth.AdminID, cfg.Auth.AdminUsername),
		Auth:    api.NewAuthHandler(authService, jwt, log),
		Users:   api.NewUserHandler(users, log),
		Entries: api.NewLedgerHandler[models.Entry](entries, log),
		Exits:   api.NewLedgerHandler[models.Exit](exits, log),
		Meta:    api.NewMetaHandler(entryKind.AllowedTypes, exitKind.AllowedTypes),
		Summary: api.NewSummaryHandler(reporter, log),
		Export:  api.NewExportHandler(exporter, log),
		Backup:  api.NewBackupHandler(exporter, store, cfg.Storage, log),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Infof("Caisse 已启动: http://localhost%s/api  Swagger: http://localhost%s/swagger/index.html",
			cfg.Server.Port, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("关闭 HTTP 服务失败: %v", err)
	}
	log.Info("bye")
}
