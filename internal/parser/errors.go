package parser

import "errors"

// ErrExtractionFailed 文件内容无法读出（损坏、编码不支持等）
// 这是分析请求唯一的终止性失败：没有文本就没有评分
var ErrExtractionFailed = errors.New("文件文本提取失败")

// ErrUnsupportedFormat 声明的文件格式不在支持范围内
var ErrUnsupportedFormat = errors.New("不支持的文件格式")
