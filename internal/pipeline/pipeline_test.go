package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/hanselhansel/agentlens/internal/model"
)

// recordingStep records execution order and optionally fails.
type recordingStep struct {
	name string
	err  error
	log  *[]string
}

func (s *recordingStep) Do(_ context.Context, _ *State) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func (s *recordingStep) Name() string { return s.name }

func newTestState() *State {
	target, _ := model.NewAuditTarget("https://example.com")
	return NewState(target)
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("steps run in order", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New()
		p.AddSteps(
			&recordingStep{name: "first", log: &log},
			&recordingStep{name: "second", log: &log},
			&recordingStep{name: "third", log: &log},
		)

		if err := p.Execute(context.Background(), newTestState()); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		want := []string{"first", "second", "third"}
		if len(log) != len(want) {
			t.Fatalf("executed %v, want %v", log, want)
		}
		for i := range want {
			if log[i] != want[i] {
				t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
			}
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		var log []string
		boom := errors.New("boom")
		p := New()
		p.AddSteps(
			&recordingStep{name: "first", log: &log},
			&recordingStep{name: "broken", err: boom, log: &log},
			&recordingStep{name: "never", log: &log},
		)

		state := newTestState()
		if err := p.Execute(context.Background(), state); !errors.Is(err, boom) {
			t.Fatalf("Execute() error = %v, want boom", err)
		}
		if len(log) != 2 {
			t.Errorf("executed %v, want stop after broken", log)
		}
		if len(state.Report.Errors) != 1 {
			t.Errorf("Report.Errors = %v, want the step error recorded", state.Report.Errors)
		}
	})

	t.Run("continues past errors when configured", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&recordingStep{name: "broken", err: errors.New("boom"), log: &log},
			&recordingStep{name: "after", log: &log},
		)

		if err := p.Execute(context.Background(), newTestState()); err != nil {
			t.Fatalf("Execute() error = %v, want nil with continueOnError", err)
		}
		if len(log) != 2 {
			t.Errorf("executed %v, want both steps", log)
		}
	})

	t.Run("cancelled context stops before next step", func(t *testing.T) {
		t.Parallel()

		var log []string
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := New()
		p.AddStep(&recordingStep{name: "never", log: &log})

		if err := p.Execute(ctx, newTestState()); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if len(log) != 0 {
			t.Errorf("executed %v, want none", log)
		}
	})

	t.Run("step names", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New()
		p.AddSteps(
			&recordingStep{name: "a", log: &log},
			&recordingStep{name: "b", log: &log},
		)

		if got := p.StepCount(); got != 2 {
			t.Errorf("StepCount() = %d, want 2", got)
		}
		names := p.StepNames()
		if names[0] != "a" || names[1] != "b" {
			t.Errorf("StepNames() = %v", names)
		}
	})
}

func TestScorePagesStep(t *testing.T) {
	t.Parallel()

	t.Run("seed failure still yields a page entry", func(t *testing.T) {
		t.Parallel()

		state := newTestState()
		state.Seed = model.CrawlResult{
			URL:   state.Target.URL,
			Error: "connection refused",
		}

		if err := NewScorePagesStep().Do(context.Background(), state); err != nil {
			t.Fatalf("Do() error = %v", err)
		}

		if len(state.Report.Pages) != 1 {
			t.Fatalf("len(Pages) = %d, want 1", len(state.Report.Pages))
		}
		page := state.Report.Pages[0]
		if page.URL != state.Target.URL {
			t.Errorf("page.URL = %q, want the seed", page.URL)
		}
		if len(page.Errors) != 1 || page.Errors[0] != "connection refused" {
			t.Errorf("page.Errors = %v", page.Errors)
		}
		if state.Report.PagesFailed != 1 {
			t.Errorf("PagesFailed = %d, want 1", state.Report.PagesFailed)
		}
	})

	t.Run("scores seed and crawled pages", func(t *testing.T) {
		t.Parallel()

		state := newTestState()
		state.Seed = model.CrawlResult{
			URL:      state.Target.URL,
			Success:  true,
			HTML:     `<script type="application/ld+json">{"@type":"Article"}</script>`,
			Markdown: "# Title\n\nsome words here\n",
		}
		state.Crawled = []model.CrawlResult{
			{URL: "https://example.com/a", Success: true, Markdown: "plain text"},
			{URL: "https://example.com/b", Error: "HTTP 404"},
		}

		if err := NewScorePagesStep().Do(context.Background(), state); err != nil {
			t.Fatalf("Do() error = %v", err)
		}

		if state.Report.PagesAudited != 3 {
			t.Errorf("PagesAudited = %d, want 3", state.Report.PagesAudited)
		}
		if state.Report.PagesFailed != 1 {
			t.Errorf("PagesFailed = %d, want 1", state.Report.PagesFailed)
		}
		if state.Report.Pages[0].Schema.BlocksFound != 1 {
			t.Errorf("seed schema blocks = %d, want 1", state.Report.Pages[0].Schema.BlocksFound)
		}
		if !state.Report.Pages[0].Content.HasHeadings {
			t.Error("seed content should have headings")
		}
	})
}
