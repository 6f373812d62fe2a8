package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"ats-score-go/internal/api/handler"
	"ats-score-go/internal/api/router"
	"ats-score-go/internal/config"
	"ats-score-go/internal/constants"
	"ats-score-go/internal/logger"
	"ats-score-go/internal/parser"
	"ats-score-go/internal/report"
	"ats-score-go/internal/scorer"
	"ats-score-go/internal/tracing"
)

var version = "1.0.0" //nolint:gochecknoglobals

// @title ATS Score API
// @version 1.0
// @description 简历与职位描述匹配度评分服务
// @BasePath /api/v1
func main() {
	var configPath, envFile, sampleConfigPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.StringVar(&envFile, "env-file", "", ".env文件路径，默认加载工作目录下的.env")
	pflag.StringVar(&sampleConfigPath, "create-config", "", "生成示例配置文件后退出")
	pflag.Parse()

	// .env不存在不是错误，环境变量覆盖在配置加载时处理
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	if sampleConfigPath != "" {
		if err := config.CreateSampleConfig(sampleConfigPath); err != nil {
			glog.Fatalf("生成示例配置失败: %v", err)
		}
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
		FilePath:     cfg.Logger.FilePath,
	}); err != nil {
		glog.Fatalf("初始化日志失败: %v", err)
	}
	// 让Hertz框架日志走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(logger.Logger))
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var shutdownTracing func(context.Context) error
	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.InitProvider(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SamplingRate)
		if err != nil {
			glog.Fatalf("初始化链路追踪失败: %v", err)
		}
		glog.Infof("链路追踪已启用, 端点: %s", cfg.Tracing.Endpoint)
	}

	// 嵌入和NER能力在进程启动时初始化一次，作为只读服务注入评分管线
	embedder := buildEmbedder(cfg)
	nerClient := buildNERClient(cfg)

	factsExtractor := parser.NewFactsExtractor(
		cfg.Vocabulary,
		parser.WithNERClient(nerClient),
		parser.WithExtractorLogger(logger.Component("extractor")),
	)
	atsScorer := scorer.NewATSScorer(embedder, factsExtractor,
		scorer.WithScorerLogger(logger.Component("scorer")))
	glog.Info("评分引擎初始化成功")

	var pdfExtractor parser.PDFExtractor
	einoExtractor, err := parser.NewEinoPDFExtractor(ctx, parser.WithEinoLogger(logger.Component("pdf")))
	if err != nil {
		logger.Warn().Err(err).Msg("Eino PDF解析器初始化失败，使用兜底实现")
		pdfExtractor = parser.NewFallbackPDFExtractor(logger.Component("pdf"))
	} else {
		pdfExtractor = einoExtractor
		glog.Info("使用Eino PDF解析器")
	}

	textExtractor := parser.NewCompositeTextExtractor(pdfExtractor, logger.Component("text_extractor"))
	reporter := report.NewGenerator(report.WithReportLogger(logger.Component("report")))

	analyzeHandler := handler.NewAnalyzeHandler(cfg, textExtractor, atsScorer, reporter)
	glog.Info("AnalyzeHandler初始化成功")

	serverOptions := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxUploadSizeMB << 20),
	}

	var h *server.Hertz
	if cfg.Tracing.Enabled {
		tracer, traceCfg := hertztracing.NewServerTracer()
		h = server.New(append(serverOptions, tracer)...)
		h.Use(hertztracing.ServerMiddleware(traceCfg))
	} else {
		h = server.New(serverOptions...)
	}

	router.RegisterRoutes(h, analyzeHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("%s v%s 启动中，监听地址: %s", constants.ServiceName, version, cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			glog.Errorf("链路追踪关闭失败: %v", err)
		}
	}
	glog.Info("优雅退出完成")
}

// buildEmbedder 按配置选择嵌入后端
// 默认使用进程内的确定性本地嵌入器；配置了openai后端且初始化成功时切换
func buildEmbedder(cfg *config.Config) embedding.Embedder {
	if cfg.Embedding.Backend == "openai" {
		embedder, err := parser.NewOpenAIEmbedder(
			cfg.Embedding.APIKey,
			cfg.Embedding.BaseURL,
			cfg.Embedding.Model,
			cfg.Embedding.Dimensions,
			parser.WithEmbedderTimeout(config.GetDuration(cfg.Embedding.Timeout, 30*time.Second)),
			parser.WithEmbedderLogger(logger.Component("embedder")),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("OpenAI嵌入器初始化失败，回退到本地嵌入器")
		} else {
			logger.Info().Str("model", cfg.Embedding.Model).Msg("使用OpenAI兼容嵌入服务")
			return embedder
		}
	}
	logger.Info().Int("dimensions", cfg.Embedding.Dimensions).Msg("使用本地哈希嵌入器")
	return parser.NewHashEmbedder(cfg.Embedding.Dimensions)
}

// buildNERClient 按配置选择NER实现，未启用时使用空实现
func buildNERClient(cfg *config.Config) parser.NERClient {
	if cfg.NER.Enabled && cfg.NER.ServerURL != "" {
		logger.Info().Str("server_url", cfg.NER.ServerURL).Msg("NER服务已启用")
		return parser.NewHTTPNERClient(
			cfg.NER.ServerURL,
			parser.WithNERTimeout(time.Duration(cfg.NER.TimeoutSeconds)*time.Second),
			parser.WithNERLogger(logger.Component("ner")),
		)
	}
	return parser.NoopNERClient{}
}
