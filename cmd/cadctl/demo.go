package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/partforge/cadctl/internal/config"
	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/logging"
	"github.com/partforge/cadctl/internal/mate"
	"github.com/partforge/cadctl/internal/observability"
	"github.com/partforge/cadctl/internal/selector"
	"github.com/partforge/cadctl/internal/sim"
	"github.com/partforge/cadctl/internal/sketch"
)

// ErrBatchFailures is returned under -strict when the mate batch finished
// with at least one failed pair.
var ErrBatchFailures = errors.New("cadctl: mate batch finished with failures")

// run drives the whole demo: build the two parts through the sketch state
// machine, stack them in an assembly through the mate orchestrator, and
// save every document into the configured output directory.
func run(configPath, outputDir string, strict, flipped bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.InitLogger("cadctl")
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		zerolog.SetGlobalLevel(lvl)
	}
	observability.RegisterMetrics()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	logger = logger.With().Str("run", uuid.NewString()).Logger()

	sess := sim.NewSession()
	if err := buildBasePart(logger, sess, cfg); err != nil {
		return fmt.Errorf("base part: %w", err)
	}
	if err := buildPlatePart(logger, sess, cfg); err != nil {
		return fmt.Errorf("plate part: %w", err)
	}

	tally, err := buildStack(logger, sess, cfg, flipped)
	if err != nil {
		return err
	}
	if strict && tally.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailures, tally.Failed, tally.Failed+tally.Succeeded)
	}
	return nil
}

// buildBasePart extrudes the 100x50x10 base block from a corner rectangle
// on the top datum.
func buildBasePart(logger zerolog.Logger, sess *sim.Session, cfg config.Config) error {
	doc, err := sess.NewPart("base-block")
	if err != nil {
		return err
	}
	sk := sketch.NewSession(doc, cfg.HelperPlanePrefix)
	if err := sk.Begin(sketch.OnPlane("Top Plane")); err != nil {
		return err
	}
	if _, err := sk.CreateRectangle(sketch.RectCorner, 0, 0, 100, 50); err != nil {
		return err
	}
	if err := sk.FullyDefine(); err != nil {
		return err
	}
	if _, err := sk.Extrude(10, false, false); err != nil {
		return err
	}

	path := cfg.OutputPath("base-block.sldprt")
	if err := doc.SaveAs(path); err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("demo.part base block saved")
	return nil
}

// buildPlatePart extrudes the 80x80x20 plate from a centered rectangle,
// then bores it through a sketch on the derived top helper plane. "Top"
// resolves through the helper alias once the boss extrude has run.
func buildPlatePart(logger zerolog.Logger, sess *sim.Session, cfg config.Config) error {
	doc, err := sess.NewPart("plate-bored")
	if err != nil {
		return err
	}
	sk := sketch.NewSession(doc, cfg.HelperPlanePrefix)
	if err := sk.Begin(sketch.OnPlane("Top Plane")); err != nil {
		return err
	}
	if _, err := sk.CreateRectangle(sketch.RectCenter, 40, 40, 40, 40); err != nil {
		return err
	}
	if err := sk.FullyDefine(); err != nil {
		return err
	}
	if _, err := sk.Extrude(20, false, false); err != nil {
		return err
	}

	if err := sk.Begin(sketch.OnPlane("Top")); err != nil {
		return err
	}
	if _, err := sk.CreateCircle(40, 40, 8); err != nil {
		return err
	}
	if _, err := sk.Extrude(20, false, true); err != nil {
		return err
	}

	path := cfg.OutputPath("plate-bored.sldprt")
	if err := doc.SaveAs(path); err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("demo.part bored plate saved")
	return nil
}

// buildStack mirrors the demo parts as assembly components and batch-mates
// the plate onto the base, top face to bottom face. With flipped set, a
// deliberately anti-aligned pair runs first: it sinks the plate into the
// base, trips the interference guard, and rolls back before the good pair
// seats the plate.
func buildStack(logger zerolog.Logger, sess *sim.Session, cfg config.Config, flipped bool) (mate.Tally, error) {
	doc, err := sess.NewAssembly("demo-stack")
	if err != nil {
		return mate.Tally{}, err
	}
	asm := doc.(*sim.Document)

	asm.AddComponentMM("base",
		geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 100, Y: 50, Z: 10}),
		geom.Vec3{})
	asm.AddComponentMM("plate",
		geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 80, Y: 80, Z: 20}),
		geom.Vec3{X: 10, Y: -15, Z: 100},
		sim.WithBoreMM(geom.DirTop, 8, geom.Vec3{X: 40, Y: 40}))

	pairs := []mate.Pair{{
		ComponentA: "base", SelectorA: selector.ByDirection(geom.DirTop),
		ComponentB: "plate", SelectorB: selector.ByPartPointMM(geom.Vec3{X: 60, Y: 40}),
	}}
	if flipped {
		pairs = append([]mate.Pair{{
			ComponentA: "base", SelectorA: selector.ByDirection(geom.DirTop),
			ComponentB: "plate", SelectorB: selector.ByDirection(geom.DirBottom),
			Flipped:    true,
		}}, pairs...)
	}

	orch := mate.NewOrchestrator(doc, cfg.InterferenceToleranceMM)
	tally, _ := orch.MateAll(pairs)

	if comp, ok := doc.Component("plate"); ok {
		minMM := geom.BaseVecToMM(comp.Box().Min)
		maxMM := geom.BaseVecToMM(comp.Box().Max)
		logger.Info().
			Str("min_mm", minMM.String()).
			Str("max_mm", maxMM.String()).
			Msg("demo.stack plate placement")
	}

	path := cfg.OutputPath("demo-stack.sldasm")
	if err := doc.SaveAs(path); err != nil {
		return tally, err
	}
	logger.Info().
		Str("path", path).
		Int("succeeded", tally.Succeeded).
		Int("failed", tally.Failed).
		Msg("demo.stack saved")
	return tally, nil
}
