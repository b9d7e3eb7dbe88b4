package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	goopenai "github.com/sashabaranov/go-openai"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "protetor/docs"
	"protetor/internal/ai/component"
	"protetor/internal/config"
	"protetor/internal/handler"
	mediaHandler "protetor/internal/handler/media"
	worldHandler "protetor/internal/handler/world"
	"protetor/internal/pkg/ark"
	"protetor/internal/pkg/cache"
	"protetor/internal/pkg/mongodb"
	"protetor/internal/pkg/storage"
	"protetor/internal/pkg/storagefactory"
	"protetor/internal/pkg/tts"
	"protetor/internal/pkg/worldtools"
	"protetor/internal/pkg/worldtools/providers"
	generationRepo "protetor/internal/repository/generation"
	"protetor/internal/server/middleware"
	"protetor/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache

	storage storage.Storage
	llm     worldtools.LLMProvider
	image   worldtools.ImageProvider
	speech  worldtools.SpeechProvider
}

// Option 服务器选项，用于替换默认依赖（测试中注入假实现）
type Option func(*Server)

// WithStorage 指定媒体存储
func WithStorage(st storage.Storage) Option {
	return func(s *Server) { s.storage = st }
}

// WithLLMProvider 指定描述增强使用的大模型
func WithLLMProvider(p worldtools.LLMProvider) Option {
	return func(s *Server) { s.llm = p }
}

// WithImageProvider 指定图片生成提供者
func WithImageProvider(p worldtools.ImageProvider) Option {
	return func(s *Server) { s.image = p }
}

// WithSpeechProvider 指定语音合成提供者
func WithSpeechProvider(p worldtools.SpeechProvider) Option {
	return func(s *Server) { s.speech = p }
}

// New 创建服务器实例
// 未通过 Option 指定的依赖按配置创建
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	ctx := context.Background()

	if srv.storage == nil {
		st, err := storagefactory.NewStorage(ctx, &cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
		srv.storage = st
	}

	if err := srv.initProviders(ctx); err != nil {
		return nil, err
	}

	// 初始化 MongoDB (可选)
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			srv.mongo = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			// 创建索引
			if err := mongodb.EnsureIndexes(client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			srv.redis = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// initProviders 按配置创建外部服务提供者，并加上熔断
func (s *Server) initProviders(ctx context.Context) error {
	// 图片与语音共用同一个 OpenAI 客户端，按需创建
	var oaiClient *goopenai.Client
	openAIClient := func() (*goopenai.Client, error) {
		if oaiClient != nil {
			return oaiClient, nil
		}
		client, err := providers.NewOpenAIClient(&s.cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		oaiClient = client
		return client, nil
	}

	if s.llm == nil {
		chatModel, err := component.NewChatModel(ctx, &s.cfg.AI, &s.cfg.OpenAI)
		if err != nil {
			return fmt.Errorf("failed to create chat model: %w", err)
		}
		s.llm = providers.GuardLLM(providers.NewEinoProvider(chatModel), providers.NewBreaker("chat", s.cfg.Breaker))
		log.Info().Str("provider", s.cfg.AI.Provider).Str("model", s.cfg.AI.Model).Msg("initialized chat model")
	}

	if s.image == nil {
		var image worldtools.ImageProvider
		switch s.cfg.Image.Provider {
		case "ark":
			client, err := ark.NewArkImageClient(&s.cfg.Image.Ark)
			if err != nil {
				return fmt.Errorf("failed to create ark image client: %w", err)
			}
			image = providers.NewArkImageProvider(client)
		default:
			client, err := openAIClient()
			if err != nil {
				return err
			}
			image = providers.NewOpenAIImageProvider(client, &s.cfg.OpenAI)
		}
		s.image = providers.GuardImage(image, providers.NewBreaker("image", s.cfg.Breaker))
		log.Info().Str("provider", s.cfg.Image.Provider).Msg("initialized image provider")
	}

	if s.speech == nil {
		var speech worldtools.SpeechProvider
		switch s.cfg.Speech.Provider {
		case "volcengine":
			client, err := tts.NewClient(&s.cfg.Speech.Volcengine)
			if err != nil {
				return fmt.Errorf("failed to create volcengine tts client: %w", err)
			}
			speech = providers.NewVolcSpeechProvider(client)
		default:
			client, err := openAIClient()
			if err != nil {
				return err
			}
			speech = providers.NewOpenAISpeechProvider(client, &s.cfg.OpenAI)
		}
		s.speech = providers.GuardSpeech(speech, providers.NewBreaker("speech", s.cfg.Breaker))
		log.Info().Str("provider", s.cfg.Speech.Provider).Msg("initialized speech provider")
	}

	return nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.storage)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 可选依赖
	var recorder service.GenerationRecorder
	if s.mongo != nil {
		recorder = generationRepo.NewGenerationRepo(s.mongo.Database())
	}
	var locker service.KeyLocker
	if s.redis != nil {
		locker = s.redis
	}

	mediaSvc := service.NewMediaService(s.storage)
	greetingSvc := service.NewGreetingService(s.storage, s.speech, locker)
	worldSvc := service.NewWorldService(s.storage, s.llm, s.image, recorder, s.cfg.Server.BaseURL())

	// 页面
	mediaHdl := mediaHandler.NewHandler(mediaSvc, greetingSvc, s.cfg.Media.PagesDir, s.cfg.Media.QuestionAudio)
	s.engine.GET("/", mediaHdl.Index)
	s.engine.GET("/pergunta_nome.html", mediaHdl.PerguntaNome)
	s.engine.GET("/mundo_perfeito.html", mediaHdl.MundoPerfeito)
	s.engine.GET("/resultado.html", mediaHdl.Resultado)

	// 媒体
	s.engine.GET("/imagem/:filename", mediaHdl.ServeImage)
	s.engine.GET("/audio/:filename", mediaHdl.ServeAudio)
	s.engine.GET("/video/:filename", mediaHdl.ServeVideo)
	s.engine.GET("/audio_pergunta", mediaHdl.QuestionAudio)
	s.engine.GET("/audio_personalizado/:nome", mediaHdl.GreetingAudio)

	// 生成
	worldHdl := worldHandler.NewHandler(worldSvc)
	s.engine.POST("/gerar", worldHdl.Generate)
	s.engine.GET("/imagens", worldHdl.ListImages)
	if recorder != nil {
		s.engine.GET("/geracoes", worldHdl.ListGenerations)
	} else {
		log.Info().Msg("MongoDB not configured, generation history disabled")
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		err := srv.Shutdown(context.Background())
		s.Close()
		return err
	case err := <-errCh:
		s.Close()
		return err
	}
}

// Close 关闭外部连接
func (s *Server) Close() {
	if s.mongo != nil {
		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
