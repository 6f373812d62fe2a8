package constants

const (
	// ServiceName 服务名，用于日志与链路追踪标识
	ServiceName = "ats-score-go"

	// APIBasePath HTTP API 路由前缀
	APIBasePath = "/api/v1"

	// DefaultMaxUploadSizeMB 简历文件上传大小上限的默认值(MB)
	DefaultMaxUploadSizeMB = 10

	// MaxMissingKeywordsInReport 导出报告中缺失关键词的展示上限
	MaxMissingKeywordsInReport = 20
)
