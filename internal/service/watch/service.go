package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
	"github.com/KasumiMercury/dispatch-watch/internal/infra/notifier"
	"github.com/KasumiMercury/dispatch-watch/internal/observability/logging"
	"github.com/KasumiMercury/dispatch-watch/internal/observability/metrics"
	"github.com/KasumiMercury/dispatch-watch/internal/observability/tracing"
	"github.com/KasumiMercury/dispatch-watch/internal/service/decision"
	"github.com/KasumiMercury/dispatch-watch/internal/service/roster"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// requestCounter is implemented by feed clients that count upstream requests.
type requestCounter interface {
	Requested() int64
}

type Service struct {
	feed      domain.IncidentFeedSource
	calendar  domain.CalendarSource
	scheduler *roster.Scheduler
	engine    *decision.Engine
	state     *decision.State
	sink      domain.NotificationSink
	recorder  domain.DecisionRecorder
	metrics   *metrics.WatchMetrics
	responder string
	location  *time.Location
	now       func() time.Time
}

type Dependencies struct {
	Feed      domain.IncidentFeedSource
	Calendar  domain.CalendarSource
	Scheduler *roster.Scheduler
	Engine    *decision.Engine
	State     *decision.State
	Sink      domain.NotificationSink
	Recorder  domain.DecisionRecorder
	Metrics   *metrics.WatchMetrics
}

func NewService(deps Dependencies, responder string, location *time.Location) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		feed:      deps.Feed,
		calendar:  deps.Calendar,
		scheduler: deps.Scheduler,
		engine:    deps.Engine,
		state:     deps.State,
		sink:      deps.Sink,
		recorder:  deps.Recorder,
		metrics:   deps.Metrics,
		responder: responder,
		location:  location,
		now:       time.Now,
	}
}

// PollOnce runs one fetch, decide and notify cycle. A fetch, store or send
// failure ends the cycle with an error; the next tick starts over.
func (s *Service) PollOnce(ctx context.Context) (*decision.Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = notifier.WithDeliveryKey(ctx, runID)

	ctx, span := tracing.StartPollSpan(ctx, runID)
	defer span.End()

	started := s.now()
	record := domain.CycleRecord{
		RunID:         runID,
		PolledAt:      started,
		RosterWindows: s.state.Roster().Len(),
	}

	result, err := s.poll(ctx)
	if result != nil {
		record.Outcome = result.Outcome
		record.CandidateCount = result.Candidates
		record.NewCount = len(result.New)
		record.NotifiedCount = len(result.ToNotify)
		record.OnDuty = result.OnDuty
	}
	if err != nil {
		record.Outcome = domain.OutcomeFailed
		record.NotifiedCount = 0
		slog.ErrorContext(ctx, "poll cycle failed",
			slog.String("error", err.Error()),
		)
	}

	tracing.RecordPollResult(span, record.Outcome.String(),
		record.CandidateCount, record.NewCount, record.NotifiedCount, err)

	if s.metrics != nil {
		s.metrics.RecordPoll(ctx, record.Outcome.String(), s.now().Sub(started))
	}

	if s.recorder != nil {
		if recErr := s.recorder.RecordCycle(ctx, record); recErr != nil {
			slog.WarnContext(ctx, "failed to record poll cycle",
				slog.String("error", recErr.Error()),
			)
		}
	}

	return result, err
}

func (s *Service) poll(ctx context.Context) (*decision.Result, error) {
	fetchCtx, fetchSpan := tracing.StartSourceSpan(ctx, "feed")
	raw, err := s.feed.Fetch(fetchCtx)
	tracing.RecordError(fetchSpan, err)
	fetchSpan.End()

	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordFeedRequest(ctx, resultFailure)
		}
		return nil, fmt.Errorf("failed to fetch incident feed: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordFeedRequest(ctx, resultSuccess)
	}

	attrs := []any{slog.Int("record_count", len(raw))}
	if counter, ok := s.feed.(requestCounter); ok {
		attrs = append(attrs, slog.Int64("times_requested", counter.Requested()))
	}
	slog.DebugContext(ctx, "incident batch received", attrs...)

	result, err := s.engine.Decide(ctx, raw)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordDroppedIncidents(ctx, result.Dropped)
		s.metrics.RecordNewIncidents(ctx, len(result.New), result.OnDuty)
	}

	if result.Outcome != domain.OutcomeDispatched {
		return result, nil
	}

	message := notifier.RenderMessage(s.responder, result.ToNotify)
	if err := s.sink.Send(ctx, message); err != nil {
		if s.metrics != nil {
			s.metrics.RecordNotification(ctx, resultFailure)
		}
		return result, fmt.Errorf("failed to send notification: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordNotification(ctx, resultSuccess)
	}

	slog.InfoContext(ctx, "notification sent",
		slog.Int("incident_count", len(result.ToNotify)),
	)

	return result, nil
}

// RefreshRoster rebuilds the roster for the current month. The previous
// roster stays in place when the calendar cannot be read.
func (s *Service) RefreshRoster(ctx context.Context) (*domain.ShiftRoster, error) {
	month := domain.MonthOf(s.now().In(s.location))

	ctx, span := tracing.StartRosterRefreshSpan(ctx, month.String())
	defer span.End()

	fetchCtx, fetchSpan := tracing.StartSourceSpan(ctx, "calendar")
	events, err := s.calendar.Fetch(fetchCtx)
	tracing.RecordError(fetchSpan, err)
	fetchSpan.End()

	if err != nil {
		err = fmt.Errorf("failed to fetch calendar: %w", err)
		slog.ErrorContext(ctx, "roster refresh failed",
			slog.String("month", month.String()),
			slog.Bool("roster_kept", s.state.RosterLoaded()),
			slog.String("error", err.Error()),
		)
		tracing.RecordRosterRefreshResult(span, 0, s.state.Roster().Len(), err)
		if s.metrics != nil {
			s.metrics.RecordRosterRefresh(ctx, resultFailure, 0)
		}
		return nil, err
	}

	next := s.scheduler.ComputeCurrentMonthRoster(ctx, events, month)
	s.state.ReplaceRoster(next)

	slog.InfoContext(ctx, "roster refreshed",
		slog.String("month", month.String()),
		slog.Int("base_event_count", len(events)),
		slog.Int("window_count", next.Len()),
	)

	tracing.RecordRosterRefreshResult(span, len(events), next.Len(), nil)
	if s.metrics != nil {
		s.metrics.RecordRosterRefresh(ctx, resultSuccess, next.Len())
	}

	return next, nil
}
