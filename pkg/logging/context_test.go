package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/eramap/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("WithLogger nil uses default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, logging.Default(), logging.FromContext(ctx))
	})

	t.Run("WithFields adds every field", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithFields(ctx, map[string]any{
			"tables": 3,
			"page":   "中国年号列表",
		})

		logging.FromContext(ctx).Info().Msg("walked")

		tl.AssertContains(t, `"tables":3`)
		tl.AssertContains(t, `"page":"中国年号列表"`)
	})

	t.Run("WithField", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithField(ctx, "window", []int{200, 600})

		logging.FromContext(ctx).Info().Msg("configured")

		tl.AssertContains(t, `"window":[200,600]`)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithSource(ctx, "wikipedia")
		ctx = logging.WithStage(ctx, "walk")
		ctx = logging.WithRegime(ctx, "西晉")

		logging.FromContext(ctx).Info().Msg("ok")

		tl.AssertContains(t, `"source":"wikipedia"`)
		tl.AssertContains(t, `"stage":"walk"`)
		tl.AssertContains(t, `"regime":"西晉"`)
	})
}
