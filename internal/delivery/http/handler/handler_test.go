package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skillpath/internal/delivery/http/middleware"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/trend"
	"skillpath/internal/domain/user"
	"skillpath/internal/pkg/logger"
	"skillpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type routeRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(h routeRegistrar) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger.Nop()).Middleware())
	h.RegisterRoutes(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, resp.StatusCode, env.Status)
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type fakeUserUsecase struct {
	registerErr error
	onboardErr  error
	gotInput    usecase.ProfileInput
	reanalyze   bool
}

func (f *fakeUserUsecase) Register(_ context.Context, in usecase.RegisterInput) (user.User, error) {
	if f.registerErr != nil {
		return user.User{}, f.registerErr
	}
	return user.User{ID: uuid.New(), Email: in.Email, Name: in.Name, CreatedAt: time.Now()}, nil
}

func (f *fakeUserUsecase) Onboard(_ context.Context, userID uuid.UUID, in usecase.ProfileInput) (usecase.OnboardResult, error) {
	f.gotInput = in
	if f.onboardErr != nil {
		return usecase.OnboardResult{}, f.onboardErr
	}
	return usecase.OnboardResult{
		Profile:     user.Profile{ID: uuid.New(), UserID: userID},
		SideEffects: []usecase.StepResult{{Step: "analyze_profile", Status: usecase.StepSkipped, Error: "generator unavailable"}},
	}, nil
}

func (f *fakeUserUsecase) GetProfile(_ context.Context, userID uuid.UUID) (usecase.UserProfile, error) {
	return usecase.UserProfile{User: user.User{ID: userID}}, nil
}

func (f *fakeUserUsecase) UpdateProfile(_ context.Context, userID uuid.UUID, in usecase.ProfileInput, reanalyze bool) (usecase.OnboardResult, error) {
	f.gotInput = in
	f.reanalyze = reanalyze
	return usecase.OnboardResult{Profile: user.Profile{UserID: userID}}, nil
}

func TestUserHandler_Register(t *testing.T) {
	app := newTestApp(NewUserHandler(&fakeUserUsecase{}))
	status, env := do(t, app, "POST", "/users/register", `{"email":"a@b.co","name":"Ann"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var data struct {
		User struct {
			Email              string `json:"email"`
			OnboardingComplete bool   `json:"onboarding_complete"`
		} `json:"user"`
	}
	decodeData(t, env, &data)
	require.Equal(t, "a@b.co", data.User.Email)
	require.False(t, data.User.OnboardingComplete)
}

func TestUserHandler_RegisterErrors(t *testing.T) {
	app := newTestApp(NewUserHandler(&fakeUserUsecase{registerErr: usecase.ErrEmailTaken}))
	status, _ := do(t, app, "POST", "/users/register", `{"email":"a@b.co","name":"Ann"}`)
	require.Equal(t, fiber.StatusConflict, status)

	app = newTestApp(NewUserHandler(&fakeUserUsecase{registerErr: usecase.ErrInvalidInput}))
	status, _ = do(t, app, "POST", "/users/register", `{"email":""}`)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestUserHandler_Onboard(t *testing.T) {
	uc := &fakeUserUsecase{}
	app := newTestApp(NewUserHandler(uc))

	status, _ := do(t, app, "POST", "/users/onboard", `{"major":"CS"}`)
	require.Equal(t, fiber.StatusBadRequest, status)

	id := uuid.New()
	status, env := do(t, app, "POST", "/users/onboard",
		`{"user_id":"`+id.String()+`","major":"CS","current_skills":["Go"],"planning_horizon_years":3}`)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "CS", *uc.gotInput.Major)
	require.Equal(t, []string{"Go"}, uc.gotInput.CurrentSkills)
	require.Equal(t, 3, *uc.gotInput.PlanningHorizonYears)
	require.Nil(t, uc.gotInput.University)

	var data struct {
		Profile struct {
			UserID        uuid.UUID `json:"user_id"`
			CurrentSkills []string  `json:"current_skills"`
		} `json:"profile"`
		SideEffects []map[string]string `json:"side_effects"`
	}
	decodeData(t, env, &data)
	require.Equal(t, id, data.Profile.UserID)
	require.Equal(t, []string{}, data.Profile.CurrentSkills)
	require.Equal(t, "skipped", data.SideEffects[0]["status"])

	uc.onboardErr = usecase.ErrUserNotFound
	status, _ = do(t, app, "POST", "/users/onboard", `{"user_id":"`+id.String()+`"}`)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	uc := &fakeUserUsecase{}
	app := newTestApp(NewUserHandler(uc))

	status, _ := do(t, app, "PUT", "/users/not-a-uuid/profile", `{}`)
	require.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "PUT", "/users/"+uuid.NewString()+"/profile", `{"time_commitment":"10h","reanalyze":true}`)
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, uc.reanalyze)
	require.Equal(t, "10h", *uc.gotInput.TimeCommitment)
}

type fakeGrowthPathUsecase struct {
	active    usecase.ActiveGrowthPath
	err       error
	extendRes usecase.ExtendResult
}

func (f *fakeGrowthPathUsecase) Generate(_ context.Context, userID uuid.UUID) (usecase.GenerateResult, error) {
	if f.err != nil {
		return usecase.GenerateResult{}, f.err
	}
	return usecase.GenerateResult{GrowthPath: roadmap.GrowthPath{ID: uuid.New(), UserID: userID, Phase: 1, IsActive: true}, TrackersCreated: 4}, nil
}

func (f *fakeGrowthPathUsecase) GetActive(context.Context, uuid.UUID) (usecase.ActiveGrowthPath, error) {
	return f.active, f.err
}

func (f *fakeGrowthPathUsecase) Extend(context.Context, uuid.UUID) (usecase.ExtendResult, error) {
	return f.extendRes, f.err
}

func TestGrowthPathHandler_Generate(t *testing.T) {
	app := newTestApp(NewGrowthPathHandler(&fakeGrowthPathUsecase{}))
	status, env := do(t, app, "POST", "/growth-path/generate", `{"user_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var data struct {
		GrowthPath struct {
			Phase    int  `json:"phase"`
			IsActive bool `json:"is_active"`
		} `json:"growth_path"`
		TrackersCreated int `json:"trackers_created"`
	}
	decodeData(t, env, &data)
	require.Equal(t, 1, data.GrowthPath.Phase)
	require.Equal(t, 4, data.TrackersCreated)

	app = newTestApp(NewGrowthPathHandler(&fakeGrowthPathUsecase{err: usecase.ErrGeneratorUnavailable}))
	status, _ = do(t, app, "POST", "/growth-path/generate", `{"user_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, fiber.StatusServiceUnavailable, status)

	app = newTestApp(NewGrowthPathHandler(&fakeGrowthPathUsecase{err: usecase.ErrProfileNotFound}))
	status, _ = do(t, app, "POST", "/growth-path/generate", `{"user_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestGrowthPathHandler_GetActiveEnrichesProgress(t *testing.T) {
	r := roadmap.Roadmap{Phases: []roadmap.Phase{{
		Phase:   1,
		Courses: []roadmap.Item{{ID: "c1", Name: "CS50"}, {ID: "c2", Name: "SQL"}},
	}}}
	uc := &fakeGrowthPathUsecase{active: usecase.ActiveGrowthPath{
		GrowthPath: roadmap.GrowthPath{ID: uuid.New(), Phase: 1, Roadmap: r, IsActive: true},
		Progress:   map[string]progress.Tracker{"c1": {ItemID: "c1", Status: progress.StatusCompleted}},
	}}
	app := newTestApp(NewGrowthPathHandler(uc))

	status, env := do(t, app, "GET", "/growth-path/"+uuid.NewString(), "")
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		EnrichedRoadmap struct {
			Phases []struct {
				Courses []struct {
					ID       string `json:"id"`
					Progress struct {
						Status string `json:"status"`
					} `json:"progress"`
				} `json:"courses"`
			} `json:"phases"`
		} `json:"enriched_roadmap"`
	}
	decodeData(t, env, &data)
	courses := data.EnrichedRoadmap.Phases[0].Courses
	require.Equal(t, "completed", courses[0].Progress.Status)
	require.Equal(t, "not_started", courses[1].Progress.Status)
}

func TestGrowthPathHandler_GetActiveNoPath(t *testing.T) {
	app := newTestApp(NewGrowthPathHandler(&fakeGrowthPathUsecase{err: usecase.ErrNoActivePath}))
	status, env := do(t, app, "GET", "/growth-path/"+uuid.NewString(), "")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "No active growth path found", env.Message)
}

func TestGrowthPathHandler_ExtendErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{usecase.ErrTasksIncomplete, fiber.StatusBadRequest},
		{usecase.ErrNoTasks, fiber.StatusBadRequest},
		{usecase.ErrNoActivePath, fiber.StatusNotFound},
		{usecase.ErrConcurrentExtension, fiber.StatusConflict},
		{usecase.ErrGeneratorUnavailable, fiber.StatusServiceUnavailable},
		{errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := newTestApp(NewGrowthPathHandler(&fakeGrowthPathUsecase{err: tc.err}))
		status, _ := do(t, app, "POST", "/growth-path/extend", `{"user_id":"`+uuid.NewString()+`"}`)
		require.Equal(t, tc.want, status, tc.err.Error())
	}
}

func TestGrowthPathHandler_ExtendZeroTrackersReturnsPath(t *testing.T) {
	uc := &fakeGrowthPathUsecase{
		err: usecase.ErrNoTrackersCreated,
		extendRes: usecase.ExtendResult{
			GrowthPath: roadmap.GrowthPath{ID: uuid.New(), Phase: 2},
			Phase:      roadmap.Phase{Phase: 2, Title: "Year 2"},
		},
	}
	app := newTestApp(NewGrowthPathHandler(uc))

	status, env := do(t, app, "POST", "/growth-path/extend", `{"user_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, fiber.StatusInternalServerError, status)

	var data struct {
		Phase struct {
			Phase int `json:"phase"`
		} `json:"phase"`
		TrackersCreated int `json:"trackers_created"`
	}
	decodeData(t, env, &data)
	require.Equal(t, 2, data.Phase.Phase)
	require.Equal(t, 0, data.TrackersCreated)
}

type fakeProgressUsecase struct {
	err   error
	tasks []progress.Tracker
}

func (f *fakeProgressUsecase) Update(_ context.Context, in usecase.UpdateProgressInput) (usecase.UpdateProgressResult, error) {
	if f.err != nil {
		return usecase.UpdateProgressResult{}, f.err
	}
	return usecase.UpdateProgressResult{
		Tracker:      progress.Tracker{UserID: in.UserID, ItemID: in.ItemID, Status: progress.Status(in.Status)},
		AllCompleted: true,
	}, nil
}

func (f *fakeProgressUsecase) Summary(context.Context, uuid.UUID) (progress.Summary, error) {
	return progress.Summarize(f.tasks), f.err
}

func (f *fakeProgressUsecase) Tasks(context.Context, uuid.UUID) ([]progress.Tracker, error) {
	return f.tasks, f.err
}

func TestProgressHandler_Update(t *testing.T) {
	app := newTestApp(NewProgressHandler(&fakeProgressUsecase{}))
	status, env := do(t, app, "POST", "/progress/update",
		`{"user_id":"`+uuid.NewString()+`","item_id":"c1","status":"completed"}`)
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		Progress struct {
			ItemID string `json:"item_id"`
		} `json:"progress"`
		AllCompleted bool `json:"all_completed"`
	}
	decodeData(t, env, &data)
	require.Equal(t, "c1", data.Progress.ItemID)
	require.True(t, data.AllCompleted)

	status, _ = do(t, app, "POST", "/progress/update", `{"item_id":"c1","status":"completed"}`)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestProgressHandler_UpdateErrors(t *testing.T) {
	body := `{"user_id":"` + uuid.NewString() + `","item_id":"c1","status":"finished"}`

	app := newTestApp(NewProgressHandler(&fakeProgressUsecase{err: usecase.ErrInvalidInput}))
	status, _ := do(t, app, "POST", "/progress/update", body)
	require.Equal(t, fiber.StatusBadRequest, status)

	app = newTestApp(NewProgressHandler(&fakeProgressUsecase{err: usecase.ErrTrackerNotFound}))
	status, _ = do(t, app, "POST", "/progress/update", body)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestProgressHandler_SummaryAndTasks(t *testing.T) {
	uc := &fakeProgressUsecase{tasks: []progress.Tracker{
		{ItemID: "c1", ItemType: roadmap.ItemCourse, Status: progress.StatusCompleted},
		{ItemID: "p1", ItemType: roadmap.ItemProject, Status: progress.StatusNotStarted},
	}}
	app := newTestApp(NewProgressHandler(uc))

	status, _ := do(t, app, "GET", "/progress/xyz/summary", "")
	require.Equal(t, fiber.StatusBadRequest, status)

	id := uuid.NewString()
	status, env := do(t, app, "GET", "/progress/"+id+"/summary", "")
	require.Equal(t, fiber.StatusOK, status)
	var s progress.Summary
	decodeData(t, env, &s)
	require.Equal(t, 2, s.Total)
	require.Equal(t, 1, s.Completed)

	status, env = do(t, app, "GET", "/progress/"+id+"/tasks", "")
	require.Equal(t, fiber.StatusOK, status)
	var tasks struct {
		Tasks []map[string]any `json:"tasks"`
	}
	decodeData(t, env, &tasks)
	require.Len(t, tasks.Tasks, 2)
}

type fakeProfessionalUsecase struct {
	resumeErr  error
	refreshErr error
	linkedIn   professional.LinkedIn
}

func (f *fakeProfessionalUsecase) Resume(context.Context, uuid.UUID) (usecase.ResumeView, error) {
	return usecase.ResumeView{}, f.resumeErr
}

func (f *fakeProfessionalUsecase) LinkedIn(context.Context, uuid.UUID) (professional.LinkedIn, error) {
	return f.linkedIn, nil
}

func (f *fakeProfessionalUsecase) Refresh(_ context.Context, userID uuid.UUID) (usecase.RefreshResult, error) {
	if f.refreshErr != nil {
		return usecase.RefreshResult{}, f.refreshErr
	}
	return usecase.RefreshResult{Profile: professional.New(userID)}, nil
}

func TestProfileHandler_Resume(t *testing.T) {
	app := newTestApp(NewProfileHandler(&fakeProfessionalUsecase{resumeErr: usecase.ErrProfileNotFound}))
	status, _ := do(t, app, "GET", "/profile/"+uuid.NewString()+"/resume", "")
	require.Equal(t, fiber.StatusNotFound, status)

	app = newTestApp(NewProfileHandler(&fakeProfessionalUsecase{}))
	status, env := do(t, app, "GET", "/profile/"+uuid.NewString()+"/resume", "")
	require.Equal(t, fiber.StatusOK, status)
	var data map[string]map[string]any
	decodeData(t, env, &data)
	require.Equal(t, []any{}, data["resume"]["projects"])
}

func TestProfileHandler_LinkedInEmptyLists(t *testing.T) {
	app := newTestApp(NewProfileHandler(&fakeProfessionalUsecase{}))
	status, env := do(t, app, "GET", "/profile/"+uuid.NewString()+"/linkedin", "")
	require.Equal(t, fiber.StatusOK, status)
	var data map[string]any
	decodeData(t, env, &data)
	require.Equal(t, []any{}, data["post_ideas"])
	require.Equal(t, []any{}, data["skills_to_add"])
}

func TestProfileHandler_Refresh(t *testing.T) {
	app := newTestApp(NewProfileHandler(&fakeProfessionalUsecase{}))
	status, _ := do(t, app, "POST", "/profile/refresh", `{"user_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, fiber.StatusOK, status)

	app = newTestApp(NewProfileHandler(&fakeProfessionalUsecase{refreshErr: usecase.ErrGeneratorUnavailable}))
	status, _ = do(t, app, "POST", "/profile/refresh", `{"user_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, fiber.StatusServiceUnavailable, status)

	status, _ = do(t, app, "POST", "/profile/refresh", `{}`)
	require.Equal(t, fiber.StatusBadRequest, status)
}

type fakeTrendUsecase struct {
	industry string
}

func (f *fakeTrendUsecase) Simulate(_ context.Context, industry string) (trend.Snapshot, error) {
	f.industry = industry
	return trend.Snapshot{ID: uuid.New(), Industry: "Technology", Trends: trend.Static()}, nil
}

func (f *fakeTrendUsecase) Latest(_ context.Context, industry string) (trend.Snapshot, error) {
	if industry == "finance" {
		return trend.Snapshot{Industry: industry, Trends: trend.Static()}, nil
	}
	return trend.Snapshot{}, usecase.ErrTrendNotFound
}

func TestTrendHandler(t *testing.T) {
	uc := &fakeTrendUsecase{}
	app := newTestApp(NewTrendHandler(uc))

	status, _ := do(t, app, "POST", "/trends/simulate", "")
	require.Equal(t, fiber.StatusCreated, status)
	require.Empty(t, uc.industry)

	status, _ = do(t, app, "POST", "/trends/simulate", `{"industry":"Finance"}`)
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, "Finance", uc.industry)

	status, _ = do(t, app, "GET", "/trends/finance", "")
	require.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "GET", "/trends/mining", "")
	require.Equal(t, fiber.StatusNotFound, status)
}

type staticAvailability bool

func (a staticAvailability) Available() bool { return bool(a) }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	app := newTestApp(NewHealthHandler(staticAvailability(false), fakePinger{}, fakePinger{err: errors.New("down")}))
	status, env := do(t, app, "GET", "/health", "")
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		GeminiAvailable bool   `json:"gemini_available"`
		Database        string `json:"database"`
		Cache           string `json:"cache"`
	}
	decodeData(t, env, &data)
	require.False(t, data.GeminiAvailable)
	require.Equal(t, "ok", data.Database)
	require.Equal(t, "unavailable", data.Cache)
}
