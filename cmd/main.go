package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/config"
	"github.com/cobrayao-blip/mediation/internal/handler"
	"github.com/cobrayao-blip/mediation/internal/llm"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/internal/storage"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// .env 不存在时静默跳过
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 初始化存储
	var store storage.Storage
	switch cfg.Storage.Type {
	case "disk":
		store = storage.NewDiskStorage(cfg.Storage.DataDir)
	default:
		store = storage.NewMemoryStorage()
	}
	if err := store.Init(); err != nil {
		logger.Fatalf("存储初始化失败: %v", err)
	}
	defer store.Close()

	// 初始化服务
	llmService := llm.NewService(store)
	userService := service.NewUserService(store)
	scenarioService := service.NewScenarioService(store)
	skillService := service.NewSkillService(store)
	practiceService := service.NewPracticeService(store)
	authenticator := auth.NewAuthenticator(store, cfg.JWT.Secret, cfg.JWT.TTL)

	// 首次启动：默认管理员 + 示例数据
	if err := userService.EnsureDefaultAdmin(cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password); err != nil {
		logger.Fatalf("初始化默认管理员失败: %v", err)
	}
	if err := service.EnsureSeed(store); err != nil {
		logger.Errorf("写入示例数据失败: %v", err)
	}

	// 初始化处理器
	h := &handlers{
		auth:      handler.NewAuthHandler(authenticator),
		users:     handler.NewUserHandler(userService, practiceService),
		scenarios: handler.NewScenarioHandler(scenarioService, llmService),
		skills:    handler.NewSkillHandler(skillService),
		settings:  handler.NewSettingsHandler(llmService),
		llm:       handler.NewLLMHandler(llmService, practiceService),
		practice:  handler.NewPracticeHandler(practiceService),
	}

	// 创建路由
	router := setupRouter(cfg, authenticator, h)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器
	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待信号优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	if err := server.Close(); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

type handlers struct {
	auth      *handler.AuthHandler
	users     *handler.UserHandler
	scenarios *handler.ScenarioHandler
	skills    *handler.SkillHandler
	settings  *handler.SettingsHandler
	llm       *handler.LLMHandler
	practice  *handler.PracticeHandler
}

func setupRouter(cfg *config.Config, authenticator *auth.Authenticator, h *handlers) *gin.Engine {
	// 设置gin模式
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS配置
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	requireAuth := authenticator.RequireAuth()
	optionalAuth := authenticator.OptionalAuth()
	adminOnly := auth.AdminOnly()

	api := router.Group("/api")
	{
		// 健康检查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().Format(time.RFC3339),
			})
		})

		// 登录（无需 Token）
		api.POST("/auth/login", h.auth.Login)

		users := api.Group("/users")
		{
			users.GET("/me", requireAuth, h.users.Me)
			users.PATCH("/me", requireAuth, h.users.UpdateMe)
			users.POST("/me/change-password", requireAuth, h.users.ChangePassword)
			users.GET("/me/practice-sessions", requireAuth, h.users.MyPracticeSessions)

			users.GET("", requireAuth, adminOnly, h.users.List)
			users.POST("", requireAuth, adminOnly, h.users.Create)
			users.PUT("/:id", requireAuth, adminOnly, h.users.Update)
			users.DELETE("/:id", requireAuth, adminOnly, h.users.Delete)
		}

		scenarios := api.Group("/scenarios")
		{
			scenarios.GET("", h.scenarios.List)
			scenarios.POST("/generate", requireAuth, adminOnly, h.scenarios.Generate)
			scenarios.GET("/:id", h.scenarios.Get)
			scenarios.POST("", requireAuth, adminOnly, h.scenarios.Create)
			scenarios.PUT("/:id", requireAuth, adminOnly, h.scenarios.Update)
			scenarios.DELETE("/:id", requireAuth, adminOnly, h.scenarios.Delete)
		}

		skills := api.Group("/skills")
		{
			skills.GET("", h.skills.List)
			skills.GET("/:id", h.skills.Get)
			skills.POST("", requireAuth, adminOnly, h.skills.Create)
			skills.PUT("/:id", requireAuth, adminOnly, h.skills.Update)
			skills.DELETE("/:id", requireAuth, adminOnly, h.skills.Delete)
		}

		settings := api.Group("/settings/llm")
		{
			settings.GET("", h.settings.GetLLM)
			settings.POST("", h.settings.SetLLM)
			settings.POST("/test", h.settings.TestLLM)
			settings.GET("/default", h.settings.GetDefaultLLM)
			settings.POST("/default", h.settings.SetDefaultLLM)
		}

		llmGroup := api.Group("/llm")
		{
			llmGroup.POST("/chat", h.llm.Chat)
			llmGroup.POST("/generate-opening", h.llm.GenerateOpening)
			llmGroup.POST("/evaluate", optionalAuth, h.llm.Evaluate)
			llmGroup.POST("/generate-document", optionalAuth, h.llm.GenerateDocument)
		}

		practice := api.Group("/practice-sessions")
		{
			practice.GET("", requireAuth, adminOnly, h.practice.ListAll)
			practice.GET("/:sessionId", requireAuth, h.practice.Get)
			practice.POST("/:sessionId/comment", requireAuth, adminOnly, h.practice.AddComment)
			practice.GET("/:sessionId/comments", requireAuth, h.practice.Comments)
			practice.GET("/:sessionId/observe", requireAuth, h.practice.Observe)
		}

		api.GET("/analytics/user/:userId", requireAuth, h.practice.UserReport)
	}

	return router
}
