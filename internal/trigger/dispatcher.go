package trigger

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	pkgLog "inkscan/pkg/log"
)

// Config controls prompt interpolation and AI call pacing.
type Config struct {
	ResponseStyle  string // optional tone instruction appended to prompts
	ResponseLength string // optional length instruction appended to prompts
	TasksToNotes   bool   // divert the tasks action into the task pipeline
	RatePerMinute  int    // AI call budget
}

// Dispatcher routes scanned triggers to their handlers, sequentially and
// strictly in emission order.
type Dispatcher struct {
	l        pkgLog.Logger
	table    *Table
	executor Executor
	filer    TaskFiler
	related  RelatedFinder
	limiter  *rate.Limiter
	cfg      Config
}

// New creates a dispatcher. filer and related are optional; when nil their
// actions fall back to the generic AI path.
func New(
	l pkgLog.Logger,
	table *Table,
	executor Executor,
	filer TaskFiler,
	related RelatedFinder,
	cfg Config,
) *Dispatcher {
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}
	return &Dispatcher{
		l:        l,
		table:    table,
		executor: executor,
		filer:    filer,
		related:  related,
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), 1),
		cfg:      cfg,
	}
}

// Dispatch processes triggers in order and appends one merged block to doc.
// A failing trigger contributes a placeholder and never aborts the rest;
// with zero triggers the document passes through unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, doc string, triggers []Trigger) (string, DispatchStats) {
	var stats DispatchStats
	if len(triggers) == 0 {
		return doc, stats
	}

	blocks := make([]string, 0, len(triggers))
	for _, t := range triggers {
		block, filed, err := d.dispatchOne(ctx, t)
		if err != nil {
			d.l.Errorf(ctx, "trigger %q (%s): %v", t.Keyword, t.ActionID, err)
			blocks = append(blocks, fmt.Sprintf(FailedHeadingFormat, t.Keyword)+"\n\n"+FailedPlaceholder)
			stats.Failed++
			continue
		}
		blocks = append(blocks, block)
		stats.Dispatched++
		stats.TasksFiled += filed
	}

	return doc + "\n\n" + MergedHeading + "\n\n" + strings.Join(blocks, "\n\n"), stats
}

func (d *Dispatcher) dispatchOne(ctx context.Context, t Trigger) (string, int, error) {
	switch {
	case t.ActionID == ActionTasks && d.cfg.TasksToNotes && d.filer != nil:
		filed, err := d.filer.File(ctx, t.Content)
		if err != nil {
			return "", 0, fmt.Errorf("file tasks: %w", err)
		}
		d.l.Infof(ctx, "trigger %q filed %d task(s)", t.Keyword, filed)
		return resultBlock(t.Keyword, fmt.Sprintf("Filed %d task(s).", filed)), filed, nil

	case t.ActionID == ActionRelated && d.related != nil:
		list, err := d.related.Find(ctx, t.Content, nil)
		if err != nil {
			return "", 0, fmt.Errorf("find related notes: %w", err)
		}
		if list == "" {
			list = "No related notes found."
		}
		return resultBlock(t.Keyword, list), 0, nil
	}

	prompt, err := d.buildPrompt(t)
	if err != nil {
		return "", 0, err
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return "", 0, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := d.executor.Execute(ctx, prompt)
	if err != nil {
		return "", 0, fmt.Errorf("execute prompt: %w", err)
	}
	return resultBlock(t.Keyword, strings.TrimSpace(resp)), 0, nil
}

// buildPrompt interpolates the action template with the trigger's content
// and appends the configured style and length instructions.
func (d *Dispatcher) buildPrompt(t Trigger) (string, error) {
	var prompt string
	if t.ActionID == ActionTranslate {
		lang, ok := TranslateTarget(t.Keyword)
		if !ok {
			return "", fmt.Errorf("translate trigger %q has no target language", t.Keyword)
		}
		tpl := PromptTranslate
		if a, ok := d.table.ByID(ActionTranslate); ok && a.PromptTemplate != "" {
			tpl = a.PromptTemplate
		}
		prompt = fmt.Sprintf(tpl, lang, t.Content)
	} else {
		a, ok := d.table.ByID(t.ActionID)
		if !ok || a.PromptTemplate == "" {
			return "", fmt.Errorf("no prompt template for action %q", t.ActionID)
		}
		prompt = fmt.Sprintf(a.PromptTemplate, t.Content)
	}

	if d.cfg.ResponseStyle != "" {
		prompt += "\n\nRespond in a " + d.cfg.ResponseStyle + " style."
	}
	if d.cfg.ResponseLength != "" {
		prompt += "\nKeep the response " + d.cfg.ResponseLength + "."
	}
	return prompt, nil
}

func resultBlock(keyword, body string) string {
	return fmt.Sprintf(ResultHeadingFormat, keyword) + "\n\n" + body
}
