package core

import (
	"sort"

	"github.com/plotsense/plotsense/schema"
)

// Adjusted confidence never reaches the extremes: downstream blending
// needs headroom on both sides.
const (
	adjustedFloor = 0.05
	adjustedCeil  = 0.95
)

// MaxRecommendations caps the ranked recommendation list returned to
// callers.
const MaxRecommendations = 8

// AdjustForContext re-weights one recommendation for a presentation
// context and assigns its priority tier. Adjustments are multiplicative
// so the [0,1] bound survives clamping. The input is not mutated.
func AdjustForContext(rec schema.ChartRecommendation, rctx schema.RenderContext) schema.ChartRecommendation {
	profile := schema.ChartProfiles[rec.ChartType]
	confidence := rec.Confidence

	switch rctx.Audience {
	case schema.GeneralAudience:
		if profile.Difficulty == schema.HighLevel {
			confidence *= 0.7
		}
	case schema.TechnicalAudience:
		if profile.Difficulty == schema.LowLevel {
			confidence *= 1.1
		}
	}

	switch rctx.Purpose {
	case schema.PresentationPurpose:
		if profile.CognitiveLoad == schema.HighLevel {
			confidence *= 0.8
		}
	case schema.ExplorationPurpose:
		if profile.Interactivity == schema.HighLevel {
			confidence *= 1.2
		}
	}

	switch rctx.Emphasis {
	case schema.ClarityEmphasis:
		if profile.Interpretability == schema.HighLevel {
			confidence *= 1.15
		}
	case schema.InsightsEmphasis:
		if profile.BusinessValue == schema.HighLevel {
			confidence *= 1.1
		}
	}

	rec.Confidence = clamp(confidence, adjustedFloor, adjustedCeil)
	rec.Priority = decidePriority(rec.ChartType, rec.Confidence, rctx)
	return rec
}

// decidePriority maps adjusted confidence plus chart identity and
// context onto a discrete tier.
func decidePriority(ct schema.ChartType, confidence float64, rctx schema.RenderContext) schema.Priority {
	_, simple := schema.SimpleChartTypes[ct]
	_, analytical := schema.AnalyticalChartTypes[ct]
	technicalAnalytical := analytical && rctx.Audience == schema.TechnicalAudience

	switch {
	case confidence > 0.8 && (simple || technicalAnalytical):
		return schema.HighPriority
	case confidence > 0.6:
		return schema.MediumPriority
	case confidence > 0.4 && simple:
		return schema.MediumPriority
	default:
		return schema.LowPriority
	}
}

// RankRecommendations adjusts every recommendation for the context and
// orders the result by priority first, adjusted confidence second,
// capped at MaxRecommendations.
func RankRecommendations(recs []schema.ChartRecommendation, rctx schema.RenderContext) []schema.ChartRecommendation {
	adjusted := make([]schema.ChartRecommendation, 0, len(recs))
	for _, rec := range recs {
		adjusted = append(adjusted, AdjustForContext(rec, rctx))
	}
	sort.SliceStable(adjusted, func(i, j int) bool {
		ri, rj := schema.PriorityRank(adjusted[i].Priority), schema.PriorityRank(adjusted[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return adjusted[i].Confidence > adjusted[j].Confidence
	})
	if len(adjusted) > MaxRecommendations {
		adjusted = adjusted[:MaxRecommendations]
	}
	return adjusted
}
