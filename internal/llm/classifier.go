// Package llm classifies cases with an OpenAI-compatible chat model, using
// the rule engine's tags as hints the model is asked to verify.
package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/classify"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

const DefaultPace = 300 * time.Millisecond

type Classifier struct {
	client  Client
	rules   *classify.Classifier
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClassifier paces calls to at most one per pace interval. A pace of
// zero disables pacing.
func NewClassifier(client Client, rules *classify.Classifier, pace time.Duration, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if pace > 0 {
		limit = rate.Every(pace)
	}
	return &Classifier{
		client:  client,
		rules:   rules,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Classify asks the model for tags. Provisions the reply leaves out take
// the rule engine's tags, so a valid reply always covers the whole order.
func (c *Classifier) Classify(ctx context.Context, doc *casefile.Document) (casefile.Classification, error) {
	var ruled casefile.Classification
	if c.rules != nil {
		ruled = c.rules.Classify(doc.Case)
	}
	prompt := BuildPrompt(doc, hintsFrom(ruled))

	if err := c.limiter.Wait(ctx); err != nil {
		return casefile.Classification{}, err
	}
	started := time.Now()
	reply, err := c.client.Complete(ctx, prompt)
	if err != nil {
		return casefile.Classification{}, err
	}
	c.logger.Debug("llm reply",
		zap.String("file", doc.Name),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("chars", len(reply)),
	)

	cls, err := ParseResponse(reply)
	if err != nil {
		return casefile.Classification{}, fmt.Errorf("%s: %w", doc.Name, err)
	}
	if filled := fillUncovered(&cls, ruled); filled > 0 {
		c.logger.Debug("provisions tagged by rules",
			zap.String("file", doc.Name),
			zap.Int("provisions", filled),
		)
	}
	return cls, nil
}

func hintsFrom(ruled casefile.Classification) Hints {
	if ruled.StatutoryTopics == nil && ruled.Provisions == nil {
		return Hints{}
	}
	hints := Hints{
		StatutoryTopics: ruled.StatutoryTopics,
		Remedies:        make(map[string][]taxonomy.RemedyType, len(ruled.Provisions)),
	}
	for _, p := range ruled.Provisions {
		if _, seen := hints.Remedies[p.Number]; !seen {
			hints.Remedies[p.Number] = p.RemedyTypes
		}
	}
	return hints
}

// fillUncovered appends the ruled entry for every provision the reply has
// no entry for, matching numbers one to one. It returns how many it added.
func fillUncovered(cls *casefile.Classification, ruled casefile.Classification) int {
	remaining := make(map[string]int, len(cls.Provisions))
	for _, p := range cls.Provisions {
		remaining[p.Number]++
	}
	filled := 0
	for _, p := range ruled.Provisions {
		if remaining[p.Number] > 0 {
			remaining[p.Number]--
			continue
		}
		cls.Provisions = append(cls.Provisions, p)
		filled++
	}
	return filled
}
