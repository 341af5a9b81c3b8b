package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/lssauto/auto-scheduler/internal/dto"
	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/store"
	appErrors "github.com/lssauto/auto-scheduler/pkg/errors"
)

// maxNewSessionsPerDay caps how many sessions a single run may newly
// assign to one tutor on one weekday.
const maxNewSessionsPerDay = 2

// SchedulerService orchestrates priority-ordered scheduling runs over
// the tutor roster. Runs are strictly sequential; room fill-order across
// tutors determines outcomes.
type SchedulerService struct {
	store      *store.Store
	policy     *models.Policy
	strategies map[string]Strategy
	fallback   Strategy
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
	runs       *gocache.Cache
	runMu      sync.Mutex
}

// SchedulerConfig governs run behaviour.
type SchedulerConfig struct {
	ReportTTL time.Duration
}

// NewSchedulerService wires the scheduler to the scheduling context.
func NewSchedulerService(
	st *store.Store,
	policy *models.Policy,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg SchedulerConfig,
) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReportTTL <= 0 {
		cfg.ReportTTL = time.Hour
	}
	return &SchedulerService{
		store:      st,
		policy:     policy,
		strategies: make(map[string]Strategy),
		fallback:   NewDefaultStrategy(st, logger),
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		runs:       gocache.New(cfg.ReportTTL, 2*cfg.ReportTTL),
	}
}

// RegisterStrategy installs a position-specific placement strategy.
func (s *SchedulerService) RegisterStrategy(positionID string, strategy Strategy) {
	s.strategies[positionID] = strategy
}

func (s *SchedulerService) strategyFor(positionID string) Strategy {
	if strategy, ok := s.strategies[positionID]; ok {
		return strategy
	}
	return s.fallback
}

// Run executes one full scheduling pass over every tutor and returns the
// run report. Committed room and tutor mutations stay in place even when
// a precondition failure aborts the run partway.
func (s *SchedulerService) Run(ctx context.Context, req dto.RunScheduleRequest) (*dto.ScheduleRunReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid run payload")
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	started := time.Now()
	report := &dto.ScheduleRunReport{
		RunID:     uuid.NewString(),
		Seed:      seed,
		StartedAt: started.UTC(),
	}

	s.store.Lock()
	defer s.store.Unlock()

	for passIdx, tutors := range s.partitionTutors() {
		for _, tutor := range tutors {
			result := dto.TutorRunResult{
				TutorID:   tutor.ID,
				TutorName: tutor.Name,
				Pass:      passIdx + 1,
			}
			if err := s.scheduleTutor(rng, tutor, &result); err != nil {
				return nil, err
			}
			report.Tutors = append(report.Tutors, result)
			report.TutorsProcessed++
			if result.Skipped {
				report.TutorsSkipped++
			}
			report.SessionsPlaced += result.Sessions
			report.Requests += result.Requests
			report.Unplaced += result.Unplaced
		}
	}

	duration := time.Since(started)
	report.DurationMillis = duration.Milliseconds()
	s.runs.SetDefault(report.RunID, report)
	s.metrics.ObserveRun(report, duration)
	s.logger.Info("scheduling run complete",
		zap.String("run_id", report.RunID),
		zap.Int64("seed", seed),
		zap.Int("tutors", report.TutorsProcessed),
		zap.Int("sessions", report.SessionsPlaced),
		zap.Int("requests", report.Requests),
		zap.Int("unplaced", report.Unplaced),
	)
	return report, nil
}

// Report returns a cached run report by id.
func (s *SchedulerService) Report(runID string) (*dto.ScheduleRunReport, bool) {
	value, ok := s.runs.Get(runID)
	if !ok {
		return nil, false
	}
	report, ok := value.(*dto.ScheduleRunReport)
	return report, ok
}

// partitionTutors splits the roster into the three strictly ordered
// passes: building-preference tutors, the non-Writing remainder, then
// Writing tutors. Each tutor lands in exactly one pass.
func (s *SchedulerService) partitionTutors() [3][]*models.Tutor {
	var passes [3][]*models.Tutor
	for _, tutor := range s.store.Tutors() {
		courses := s.store.CoursesOf(tutor)
		switch {
		case hasBuildingPreference(courses):
			passes[0] = append(passes[0], tutor)
		case !holdsPosition(courses, models.PositionWriting):
			passes[1] = append(passes[1], tutor)
		default:
			passes[2] = append(passes[2], tutor)
		}
	}
	return passes
}

func (s *SchedulerService) scheduleTutor(rng *rand.Rand, tutor *models.Tutor, result *dto.TutorRunResult) error {
	courses := s.store.CoursesOf(tutor)

	for _, course := range courses {
		if course.Status.IsError() {
			result.Skipped = true
			s.logger.Debug("tutor skipped, course in error status",
				zap.String("tutor", tutor.ID), zap.String("course", course.ID))
			return nil
		}
	}

	maxSessions := 0
	counts := make(map[string]*models.SessionCounts, len(courses))
	for _, course := range courses {
		position := s.store.Position(course.PositionID)
		if position == nil {
			return appErrors.Clone(appErrors.ErrPreconditionFailed,
				fmt.Sprintf("course %s references missing position %s", course.ID, course.PositionID))
		}
		maxSessions += position.SessionLimit
		counts[course.ID] = &models.SessionCounts{PositionID: course.PositionID}
	}

	sessions := 0
	for _, day := range shuffledWeekdays(rng) {
		if sessions >= maxSessions {
			break
		}
		placedToday := 0
		for _, block := range tutor.Schedule.SessionBlocks(day) {
			if sessions >= maxSessions {
				break
			}
			course := s.store.Course(block.CourseID)
			if course == nil {
				return appErrors.Clone(appErrors.ErrPreconditionFailed,
					fmt.Sprintf("block %s references missing course %s", block.ID, block.CourseID))
			}
			if !course.Status.InProgress() {
				continue
			}
			count := counts[course.ID]
			position := s.store.Position(count.PositionID)
			if count.Count >= position.SessionLimit {
				continue
			}
			if block.RoomID != "" {
				// Already placed on a previous run; account for it
				// without searching.
				sessions++
				count.Count++
				continue
			}
			if placedToday >= maxNewSessionsPerDay {
				continue
			}

			state, err := s.strategyFor(course.PositionID).Choose(block, count)
			if err != nil {
				return err
			}
			switch state {
			case models.StateScheduled, models.StateTutorScheduled:
				sessions++
				count.Count++
				placedToday++
			case models.StateRequest:
				sessions++
				count.Count++
				count.Requests++
				placedToday++
				result.Requests++
			case models.StateNoSession:
				result.Unplaced++
			}
		}
	}
	result.Sessions = sessions

	for _, course := range courses {
		if course.Status.InProgress() {
			course.Status = models.CourseScheduled
		}
	}
	return nil
}

// shuffledWeekdays returns all seven weekdays in Fisher-Yates order so
// that no weekday consistently gets first pick of limited room inventory.
func shuffledWeekdays(rng *rand.Rand) []models.Weekday {
	days := models.AllWeekdays()
	for i := len(days) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}
	return days
}

func hasBuildingPreference(courses []*models.Course) bool {
	for _, course := range courses {
		if course.HasPreference() {
			return true
		}
	}
	return false
}

func holdsPosition(courses []*models.Course, positionID string) bool {
	for _, course := range courses {
		if course.PositionID == positionID {
			return true
		}
	}
	return false
}
