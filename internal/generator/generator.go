// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator runs the two-pass website generation: the model first
// writes structured content, then a full HTML page built from it. Progress
// is reported as SSE events; results go to the optional site cache and
// history store.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sitesmith/internal/ai"
	"sitesmith/internal/engine"
	"sitesmith/internal/models"
	"sitesmith/internal/normalize"
	"sitesmith/internal/sse"
	"sitesmith/internal/theme"
)

// Model is the text generation backend. *ai.Registry satisfies it.
type Model interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Broadcaster delivers progress events. *sse.Manager satisfies it.
type Broadcaster interface {
	Broadcast(ev sse.Event) int
}

// SiteCache keeps finished documents for preview and publishing.
type SiteCache interface {
	Put(ctx context.Context, id, html string) error
}

// Recorder persists generation history. Save is an upsert keyed by ID.
type Recorder interface {
	Save(ctx context.Context, g *models.Generation) error
}

// Deps wires the orchestrator. Model and Events are required; Cache and
// History may be nil.
type Deps struct {
	Model   Model
	Events  Broadcaster
	Cache   SiteCache
	History Recorder
	Retry   ai.RetryPolicy
	Logger  *slog.Logger
	// IncludeStack adds the panic stack to error events. Development only.
	IncludeStack bool
}

// Result is the outcome of a successful run.
type Result struct {
	HTML    string
	Content models.Content
	Theme   theme.Name
	Stage   normalize.Stage
}

// Orchestrator starts and tracks generation runs.
type Orchestrator struct {
	deps   Deps
	logger *slog.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	active map[string]*models.Generation
}

var markupTag = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// New creates an orchestrator.
func New(deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Retry.MaxAttempts == 0 {
		deps.Retry = ai.DefaultRetryPolicy()
	}
	return &Orchestrator{
		deps:   deps,
		logger: deps.Logger.With("component", "generator"),
		active: make(map[string]*models.Generation),
	}
}

// Start launches a generation in the background and returns its id
// immediately. The run is detached from any request context and cannot be
// cancelled.
func (o *Orchestrator) Start(req models.GenerationRequest) string {
	id := uuid.NewString()
	o.track(id, req)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer o.untrack(id)
		o.Run(context.Background(), id, req)
	}()
	return id
}

// Run executes the generation synchronously. Every failure, including a
// panic, is reported as an error event and returned.
func (o *Orchestrator) Run(ctx context.Context, id string, req models.GenerationRequest) (res *Result, err error) {
	log := o.logger.With("generation_id", id)
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			log.Error("generation panicked", "panic", r, "stack", stack)
			err = fmt.Errorf("generator panic: %v", r)
			res = nil
			if !o.deps.IncludeStack {
				stack = ""
			}
			o.fail(ctx, id, "Website generation failed unexpectedly", err, stack)
		}
	}()

	res, err = o.run(ctx, id, req, log)
	if err != nil {
		log.Error("generation failed", "error", err, "duration", time.Since(started))
		o.fail(ctx, id, "Website generation failed", err, "")
		return nil, err
	}

	log.Info("generation completed", "theme", res.Theme, "stage", res.Stage, "duration", time.Since(started))
	return res, nil
}

func (o *Orchestrator) run(ctx context.Context, id string, req models.GenerationRequest, log *slog.Logger) (*Result, error) {
	o.update(ctx, id, func(g *models.Generation) { g.Status = models.GenerationRunning })
	o.step(id, "Analyzing your request")

	name := o.pickTheme(req)
	palette := theme.Get(name)
	o.update(ctx, id, func(g *models.Generation) { g.Theme = string(name) })
	o.step(id, fmt.Sprintf("Selected the %s color scheme", name))

	o.step(id, "Writing website content")
	raw, err := o.call(ctx, id, engine.ContentSystemPrompt, engine.BuildContentPrompt(req, name), log)
	if err != nil {
		return nil, fmt.Errorf("generator content: %w", err)
	}

	content, stage := normalize.Parse(raw)
	log.Debug("content normalized", "stage", stage, "sections", len(content.Sections))
	o.step(id, fmt.Sprintf("Structured %d content sections", len(content.Sections)))

	issues, err := CheckContent(content)
	switch {
	case err != nil:
		log.Warn("content schema check unavailable", "error", err)
	case len(issues) > 0:
		log.Warn("content does not match schema", "issues", len(issues), "first", issues[0].String())
		o.step(id, "Some content fields are missing, continuing with what was generated")
	}

	o.step(id, "Designing the website")
	rawSite, err := o.call(ctx, id, engine.SiteSystemPrompt, engine.BuildSitePrompt(content, name), log)
	if err != nil {
		return nil, fmt.Errorf("generator site: %w", err)
	}

	o.step(id, "Finalizing the page")
	doc := engine.ExtractHTML(rawSite)
	if !engine.IsDocument(doc) {
		body := doc
		if !markupTag.MatchString(body) {
			body = engine.RenderSections(content)
		}
		doc = engine.AssembleDocument(body, content.GlobalMeta, palette)
	}
	doc = engine.PostProcess(doc, palette)

	if o.deps.Cache != nil {
		if err := o.deps.Cache.Put(ctx, id, doc); err != nil {
			log.Warn("site cache write failed", "error", err)
		}
	}

	title := content.Title()
	o.update(ctx, id, func(g *models.Generation) {
		g.Status = models.GenerationCompleted
		g.Title = title
		g.ParseStage = string(stage)
	})

	nested, flat := sse.Completion(id, sse.Result{
		Code:    doc,
		Content: content,
		Metadata: map[string]any{
			"generationId": id,
			"title":        title,
			"theme":        name,
			"palette":      palette,
			"websiteType":  req.WithDefaults().WebsiteType,
			"parseStage":   stage,
		},
	})
	o.deps.Events.Broadcast(nested)
	o.deps.Events.Broadcast(flat)

	return &Result{HTML: doc, Content: content, Theme: name, Stage: stage}, nil
}

// call runs one model request under the retry policy.
func (o *Orchestrator) call(ctx context.Context, id, system, user string, log *slog.Logger) (string, error) {
	policy := o.deps.Retry
	policy.OnRetry = func(err error, attempt int, delay time.Duration) {
		log.Warn("model call failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		o.step(id, fmt.Sprintf("The model did not respond, retrying (attempt %d of %d)", attempt+1, policy.MaxAttempts))
	}
	return ai.Retry(ctx, policy, func(ctx context.Context) (string, error) {
		return o.deps.Model.Generate(ctx, system, user)
	})
}

// pickTheme honours an explicit known color scheme, otherwise resolves one
// from the prompt.
func (o *Orchestrator) pickTheme(req models.GenerationRequest) theme.Name {
	if name, ok := theme.Lookup(req.ColorScheme); ok {
		return name
	}
	return theme.Resolve(req.Prompt)
}

func (o *Orchestrator) step(id, msg string) {
	o.deps.Events.Broadcast(sse.Step(id, msg))
}

func (o *Orchestrator) fail(ctx context.Context, id, msg string, err error, stack string) {
	o.update(ctx, id, func(g *models.Generation) {
		g.Status = models.GenerationFailed
		g.Error = err.Error()
	})
	o.deps.Events.Broadcast(sse.Failure(id, msg, errorDetails(err), stack))
}

// errorDetails keeps provider response bodies out of client-facing events.
func errorDetails(err error) string {
	var se *ai.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s returned status %d", se.Provider, se.StatusCode)
	}
	return err.Error()
}

// track registers a pending generation.
func (o *Orchestrator) track(id string, req models.GenerationRequest) {
	now := time.Now().UTC()
	g := &models.Generation{
		ID:          id,
		Prompt:      req.Prompt,
		WebsiteType: req.WithDefaults().WebsiteType,
		Status:      models.GenerationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	o.mu.Lock()
	o.active[id] = g
	o.mu.Unlock()

	o.save(context.Background(), g)
}

func (o *Orchestrator) untrack(id string) {
	o.mu.Lock()
	delete(o.active, id)
	o.mu.Unlock()
}

// update mutates the tracked record and persists a copy. Runs started
// without Start are not tracked and are not recorded.
func (o *Orchestrator) update(ctx context.Context, id string, fn func(*models.Generation)) {
	o.mu.Lock()
	g, ok := o.active[id]
	if !ok {
		o.mu.Unlock()
		return
	}
	fn(g)
	g.UpdatedAt = time.Now().UTC()
	snapshot := *g
	o.mu.Unlock()

	o.save(ctx, &snapshot)
}

func (o *Orchestrator) save(ctx context.Context, g *models.Generation) {
	if o.deps.History == nil {
		return
	}
	if err := o.deps.History.Save(ctx, g); err != nil {
		o.logger.Warn("generation history write failed", "generation_id", g.ID, "error", err)
	}
}

// Active returns copies of the in-flight generations, oldest first.
func (o *Orchestrator) Active() []models.Generation {
	o.mu.Lock()
	out := make([]models.Generation, 0, len(o.active))
	for _, g := range o.active {
		out = append(out, *g)
	}
	o.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Lookup returns the in-flight generation with the given id.
func (o *Orchestrator) Lookup(id string) (models.Generation, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	g, ok := o.active[id]
	if !ok {
		return models.Generation{}, false
	}
	return *g, true
}

// Wait blocks until every started generation has finished or ctx ends.
func (o *Orchestrator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
