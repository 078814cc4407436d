// Package optimizer coordinates the volume pipeline end to end.
// Flow: tier → fusion → signal multipliers → confidence → elasticity cap →
// weekday distribution → content allocation → caption check → prediction write.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"creator-volume-lab/internal/allocation"
	"creator-volume-lab/internal/captions"
	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/distribution"
	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/elasticity"
	"creator-volume-lab/internal/fusion"
	"creator-volume-lab/internal/observability"
	"creator-volume-lab/internal/prediction"
	"creator-volume-lab/internal/signal"
	"creator-volume-lab/internal/storage"
	"creator-volume-lab/internal/tier"
)

// Optimizer runs the staged computation for one creator at a time.
// Stateless between calls; safe for concurrent use.
type Optimizer struct {
	// Stores
	profileStore storage.CreatorProfileStore
	horizonStore storage.HorizonScoreStore
	sampleStore  storage.ElasticitySampleStore
	weekdayStore storage.WeekdayPerformanceStore
	rankingStore storage.ContentRankingStore

	// Stages
	classifier  *tier.Classifier
	fuser       *fusion.Fuser
	multiplier  *signal.Multiplier
	capper      *elasticity.Capper
	distributor *distribution.Distributor
	weighter    *allocation.Weighter
	validator   *captions.Validator
	recorder    *prediction.Recorder

	tuning  config.Tuning
	verbose bool
	now     func() time.Time
}

// Options for creating Optimizer.
type Options struct {
	// Required stores
	ProfileStore    storage.CreatorProfileStore
	HorizonStore    storage.HorizonScoreStore
	SampleStore     storage.ElasticitySampleStore
	WeekdayStore    storage.WeekdayPerformanceStore
	RankingStore    storage.ContentRankingStore
	CaptionStore    storage.CaptionAssetStore
	PredictionStore storage.PredictionStore

	Tuning  config.Tuning
	Verbose bool

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// New creates a new Optimizer.
func New(opts Options) *Optimizer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Optimizer{
		profileStore: opts.ProfileStore,
		horizonStore: opts.HorizonStore,
		sampleStore:  opts.SampleStore,
		weekdayStore: opts.WeekdayStore,
		rankingStore: opts.RankingStore,
		classifier:   tier.NewClassifier(opts.Tuning.Tiers),
		fuser:        fusion.NewFuser(opts.Tuning.Fusion),
		multiplier:   signal.NewMultiplier(opts.Tuning.Signal),
		capper:       elasticity.NewCapper(opts.Tuning.Elasticity),
		distributor:  distribution.NewDistributor(opts.Tuning.Weekday, opts.Tuning.Confidence),
		weighter:     allocation.NewWeighter(opts.Tuning.Allocation),
		validator:    captions.NewValidator(opts.CaptionStore, opts.Tuning.Captions),
		recorder:     prediction.NewRecorder(opts.PredictionStore),
		tuning:       opts.Tuning,
		verbose:      opts.Verbose,
		now:          now,
	}
}

// Compute resolves the creator's stored profile into a performance context
// and runs the pipeline. Creators with no stored profile get neutral 50/50
// scores and a zero message count.
func (o *Optimizer) Compute(ctx context.Context, creatorID string) (*domain.OptimizedVolumeResult, error) {
	perf, err := o.resolveContext(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return o.Optimize(ctx, creatorID, perf)
}

func (o *Optimizer) resolveContext(ctx context.Context, creatorID string) (domain.PerformanceContext, error) {
	profile, err := o.profileStore.GetByID(ctx, creatorID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			o.logf("profile lookup for %s failed, using neutral defaults: %v", creatorID, err)
		}
		return domain.NeutralContext(0, domain.PageTypePaid), nil
	}
	return domain.PerformanceContext{
		FanCount:         profile.FanCount,
		PageType:         profile.PageType,
		SaturationScore:  profile.SaturationScore,
		OpportunityScore: profile.OpportunityScore,
		RevenueTrend:     profile.RevenueTrend,
		MessageCount:     profile.MessageCount,
	}, nil
}

// Optimize runs all stages in order. A validation failure on the context is
// the only error returned; any store failure after stage 1 degrades to the
// base config instead of propagating.
func (o *Optimizer) Optimize(ctx context.Context, creatorID string, perf domain.PerformanceContext) (*domain.OptimizedVolumeResult, error) {
	start := o.now()

	if err := perf.Validate(); err != nil {
		return nil, err
	}

	// Stage 1: tier classification. Pure; everything after this point is
	// recoverable.
	base := o.classifier.Classify(perf.FanCount, perf.PageType)
	confidence := signal.Confidence(perf.MessageCount, o.tuning.Confidence)
	o.logf("creator %s: tier=%s base=%d/%d/%d confidence=%.2f",
		creatorID, base.Tier, base.RevenuePerDay, base.EngagementPerDay, base.RetentionPerDay, confidence)

	res := &domain.OptimizedVolumeResult{
		CreatorID:         creatorID,
		BaseConfig:        base,
		ConfidenceScore:   confidence,
		MessageCount:      perf.MessageCount,
		CalculationSource: domain.SourcePipeline,
	}

	// Stage 2: multi-horizon fusion.
	scores, err := o.horizonStore.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return o.fallback(ctx, res, "fusion", err, start), nil
	}
	fused := o.fuser.Fuse(scores, perf)
	res.FusedSaturation = fused.Saturation
	res.FusedOpportunity = fused.Opportunity
	res.DivergenceDetected = fused.DivergenceDetected
	if fused.Skipped {
		o.recordSkip(res, fused.SkipReason)
	} else if fused.RapidWeights {
		res.AdjustmentsApplied = append(res.AdjustmentsApplied, "rapid_change_weights")
	}

	// Stages 3+4: signal multipliers, dampened under low confidence.
	mults := o.multiplier.FromScores(fused.Saturation, fused.Opportunity, perf.RevenueTrend)
	mults = signal.DampenMultipliers(mults, confidence, o.tuning.Confidence)
	if mults.Dampened {
		res.AdjustmentsApplied = append(res.AdjustmentsApplied, "confidence_dampening")
	}
	adjusted := signal.Apply(base, mults.Combined)
	if adjusted != base {
		res.AdjustmentsApplied = append(res.AdjustmentsApplied, "signal_multipliers_applied")
	}

	// Stage 5: elasticity cap on the revenue category.
	samples, err := o.sampleStore.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return o.fallback(ctx, res, "elasticity", err, start), nil
	}
	final, capOutcome := o.capper.Apply(adjusted, derefSamples(samples))
	res.ElasticityCapped = capOutcome.Capped
	if capOutcome.Skipped {
		o.recordSkip(res, capOutcome.SkipReason)
	} else if capOutcome.Capped {
		observability.RecordElasticityCap()
		res.AdjustmentsApplied = append(res.AdjustmentsApplied,
			fmt.Sprintf("elasticity_capped_revenue_to_%d", capOutcome.CapVolume))
	}
	res.FinalConfig = final

	// Stage 6: day-of-week distribution.
	history, err := o.weekdayStore.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return o.fallback(ctx, res, "weekday", err, start), nil
	}
	dow := o.distributor.Multipliers(history, confidence)
	if dow.Skipped {
		o.recordSkip(res, dow.SkipReason)
	}
	res.DOWMultipliersUsed = dow.Multipliers
	res.WeeklyDistribution = distribution.Distribute(final.TotalPerDay(), dow.Multipliers)

	// Stage 7: content-type allocation of the weekly revenue budget.
	rankings, err := o.rankingStore.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return o.fallback(ctx, res, "allocation", err, start), nil
	}
	res.ContentAllocations = o.weighter.Allocate(final.RevenuePerDay*7, rankings)
	if len(rankings) == 0 {
		o.recordSkip(res, "content_allocation_skipped_no_rankings")
	}

	// Stage 8: caption pool check. Advisory only.
	warnings, err := o.validator.Validate(ctx, creatorID, res.ContentAllocations, o.now())
	if err != nil {
		return o.fallback(ctx, res, "captions", err, start), nil
	}
	res.CaptionWarnings = warnings
	if len(warnings) > 0 {
		observability.RecordCaptionWarnings(len(warnings))
		res.AdjustmentsApplied = append(res.AdjustmentsApplied, "caption_pool_warnings")
	}

	// Stage 9: prediction write, non-fatal.
	return o.finish(ctx, res, capOutcome.Profile, start), nil
}

// fallback degrades to the base config when a stage's store read fails. The
// caller always gets a usable volume number.
func (o *Optimizer) fallback(ctx context.Context, res *domain.OptimizedVolumeResult, stage string, cause error, start time.Time) *domain.OptimizedVolumeResult {
	o.logf("creator %s: stage %s failed, falling back to base config: %v", res.CreatorID, stage, cause)
	observability.RecordFallback(stage)

	res.CalculationSource = domain.SourceFallback
	res.FallbackReason = fmt.Sprintf("%s: %v", stage, cause)
	res.FinalConfig = res.BaseConfig
	res.DOWMultipliersUsed = flatMultipliers()
	res.WeeklyDistribution = distribution.Distribute(res.BaseConfig.TotalPerDay(), res.DOWMultipliersUsed)
	res.ContentAllocations = map[string]int{}
	res.AdjustmentsApplied = append(res.AdjustmentsApplied, "fallback_to_base_config")

	return o.finish(ctx, res, domain.ElasticityProfile{}, start)
}

// finish records the prediction and the run metrics. A failed prediction
// write leaves PredictionID empty on an otherwise valid result.
func (o *Optimizer) finish(ctx context.Context, res *domain.OptimizedVolumeResult, profile domain.ElasticityProfile, start time.Time) *domain.OptimizedVolumeResult {
	predictionID, err := o.recorder.Record(ctx, res, profile, o.now())
	observability.RecordPredictionWrite(err)
	if err != nil {
		o.logf("creator %s: prediction write failed: %v", res.CreatorID, err)
		res.AdjustmentsApplied = append(res.AdjustmentsApplied, "prediction_write_failed")
	} else {
		res.PredictionID = predictionID
	}

	observability.RecordConfidence(res.ConfidenceScore)
	observability.RecordOptimization(string(res.CalculationSource), "ok", o.now().Sub(start).Seconds())

	o.logf("creator %s: source=%s final=%d/%d/%d weekly_total=%d adjustments=%d",
		res.CreatorID, res.CalculationSource,
		res.FinalConfig.RevenuePerDay, res.FinalConfig.EngagementPerDay, res.FinalConfig.RetentionPerDay,
		res.TotalWeeklyVolume(), len(res.AdjustmentsApplied))

	return res
}

func (o *Optimizer) recordSkip(res *domain.OptimizedVolumeResult, reason string) {
	observability.RecordStageSkip(reason)
	res.AdjustmentsApplied = append(res.AdjustmentsApplied, reason)
}

func flatMultipliers() map[int]float64 {
	m := make(map[int]float64, 7)
	for day := 0; day < 7; day++ {
		m[day] = 1.0
	}
	return m
}

func derefSamples(samples []*domain.ElasticitySample) []domain.ElasticitySample {
	out := make([]domain.ElasticitySample, 0, len(samples))
	for _, s := range samples {
		out = append(out, *s)
	}
	return out
}

func (o *Optimizer) logf(format string, args ...interface{}) {
	if o.verbose {
		log.Printf("[optimizer] "+format, args...)
	}
}
