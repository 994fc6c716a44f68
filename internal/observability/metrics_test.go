package observability

import (
	"testing"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/logging"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	logging.ConfigureTests()

	RegisterMetrics()
	RegisterMetrics()

	RecordProbeCast("top", "planar")
	RecordProbeCast("left", "miss")
	RecordMateAttempt("committed", 12*time.Millisecond)
	RecordMateAttempt("rolled_back", 24*time.Millisecond)
	RecordRectangleFallback()
	RecordHelperPlane("created", false)
	RecordHelperPlane("reused", true)

	log.Info().Msg("observability/metrics: registration idempotent and recording paths executed")
}
