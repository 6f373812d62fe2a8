package scorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"ats-score-go/internal/parser"
)

// TestSemanticDegradeMarksSpan 嵌入能力失败时span带降级标记但不置错误状态
func TestSemanticDegradeMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := provider.Tracer("scorer_test").Start(context.Background(), "score")

	scorer := NewATSScorer(brokenEmbedder{}, parser.NewFactsExtractor(parser.Vocabulary{}))
	report := scorer.Analyze(ctx, "resume text", "job description text")
	span.End()

	assert.InDelta(t, 50.0, report.SemanticSimilarity, 0.001, "嵌入失败应回退为中性50分")

	require.Len(t, recorder.Ended(), 1)
	recorded := recorder.Ended()[0]

	var name, degraded, reason bool
	for _, kv := range recorded.Attributes() {
		switch string(kv.Key) {
		case "capability.name":
			name = kv.Value.AsString() == "embedding"
		case "capability.degraded":
			degraded = kv.Value.AsBool()
		case "capability.fallback_reason":
			reason = kv.Value.AsString() != ""
		}
	}
	assert.True(t, name, "降级能力名应为embedding")
	assert.True(t, degraded, "span应带降级标记")
	assert.True(t, reason, "降级原因不应为空")
	assert.NotEqual(t, "Error", recorded.Status().Code.String(), "降级不是失败，span不应置错误状态")
}
