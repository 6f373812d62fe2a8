package router

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"

	"ats-score-go/internal/api/handler"
	"ats-score-go/internal/constants"
	"ats-score-go/internal/parser"
	"ats-score-go/internal/tracing"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analyzeHandler *handler.AnalyzeHandler) {
	api := h.Group(constants.APIBasePath)

	api.POST("/resume/analyze", func(c context.Context, ctx *app.RequestContext) {
		fileBytes, filename, jd, ok := readAnalyzeForm(ctx)
		if !ok {
			return
		}

		resp, err := analyzeHandler.HandleAnalyze(c, fileBytes, filename, jd)
		if err != nil {
			writeAnalyzeError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 粘贴文本入口，不经过文件提取
	api.POST("/resume/analyze-text", func(c context.Context, ctx *app.RequestContext) {
		resp, err := analyzeHandler.HandleAnalyzeText(c, ctx.PostForm("resume_text"), ctx.PostForm("job_description"))
		if err != nil {
			writeAnalyzeError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/resume/report", func(c context.Context, ctx *app.RequestContext) {
		fileBytes, filename, jd, ok := readAnalyzeForm(ctx)
		if !ok {
			return
		}

		doc, err := analyzeHandler.HandleReport(c, fileBytes, filename, jd)
		if err != nil {
			writeAnalyzeError(c, ctx, err)
			return
		}

		ctx.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
		ctx.Header("X-Report-ID", doc.ID)
		ctx.Data(consts.StatusOK, "application/pdf", doc.Data)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// readAnalyzeForm 读取multipart表单中的简历文件和JD文本
// 读取失败时直接写出错误响应并返回 ok=false
func readAnalyzeForm(ctx *app.RequestContext) (fileBytes []byte, filename, jd string, ok bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
		return nil, "", "", false
	}

	jd = ctx.PostForm("job_description")
	if jd == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "job_description 不能为空"})
		return nil, "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
		return nil, "", "", false
	}
	defer file.Close()

	fileBytes, err = io.ReadAll(file)
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
		return nil, "", "", false
	}

	return fileBytes, fileHeader.Filename, jd, true
}

// writeAnalyzeError 将分析错误映射为HTTP响应，并在span上记录带状态码分类的错误
// 提取类失败是客户端可修复的问题，归入4xx；其余归入5xx
func writeAnalyzeError(c context.Context, ctx *app.RequestContext, err error) {
	status := consts.StatusInternalServerError
	switch {
	case errors.Is(err, handler.ErrEmptyJobDescription), errors.Is(err, parser.ErrUnsupportedFormat):
		status = consts.StatusBadRequest
	case errors.Is(err, parser.ErrExtractionFailed):
		status = consts.StatusUnprocessableEntity
	}

	tracing.RecordHTTPError(trace.SpanFromContext(c), err, status)
	ctx.JSON(status, utils.H{"error": err.Error()})
}
