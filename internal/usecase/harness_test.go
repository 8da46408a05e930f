package usecase

import (
	"time"

	"skillpath/internal/config"
	"skillpath/internal/generation"
	"skillpath/internal/pkg/logger"
)

type harness struct {
	store  *memStore
	locker *fakeLocker
	cache  *memCache
	events *recordedEvents

	users        *User
	growth       *GrowthPath
	progress     *Progress
	professional *Professional
	updater      *ProfessionalUpdater
}

var testPlanner = config.PlannerConfig{DefaultHorizonYears: 1, MaxHorizonYears: 5, ExtendLockTTL: time.Minute}

func newHarness(gen generation.Client) *harness {
	h := &harness{
		store:  newMemStore(),
		locker: &fakeLocker{},
		cache:  &memCache{},
		events: &recordedEvents{},
	}
	log := logger.Nop()
	users := memUsers{h.store}
	students := memStudentProfiles{h.store}
	paths := memPaths{h.store}
	trackers := memTrackers{h.store}
	pros := memProfessional{h.store}

	h.users = NewUserUsecase(users, students, gen, testPlanner, log)
	h.growth = NewGrowthPathUsecase(GrowthPathDeps{
		Users:     users,
		Profiles:  students,
		Paths:     paths,
		Trackers:  trackers,
		Trends:    memTrends{h.store},
		Generator: gen,
		Locker:    h.locker,
		Events:    h.events,
		Planner:   testPlanner,
		Logger:    log,
	})
	h.updater = NewProfessionalUpdater(pros, students, gen, log)
	h.progress = NewProgressUsecase(trackers, students, paths, gen, h.updater, h.events, log)
	h.professional = NewProfessionalUsecase(ProfessionalDeps{
		Users:     users,
		Profiles:  pros,
		Students:  students,
		Trackers:  trackers,
		Paths:     paths,
		Generator: gen,
		Cache:     h.cache,
		CacheTTL:  time.Minute,
		Events:    h.events,
		Logger:    log,
	})
	return h
}

func strPtr(s string) *string { return &s }
