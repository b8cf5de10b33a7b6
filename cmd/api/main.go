package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/worklife-vn/attendance-backend-go/internal/config"
	appHTTP "github.com/worklife-vn/attendance-backend-go/internal/handler/http"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/cron"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/database"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/jwt"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/lock"
	"github.com/worklife-vn/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/worklife-vn/attendance-backend-go/internal/service/attendance"
	authService "github.com/worklife-vn/attendance-backend-go/internal/service/auth"
	overtimeService "github.com/worklife-vn/attendance-backend-go/internal/service/overtime"
	scheduleService "github.com/worklife-vn/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// The single-flight lock is best-effort: without redis the engine
	// falls back to its read-check-write discipline.
	var locker lock.Locker
	redisLock, err := lock.NewRedisLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("redis unavailable, attendance locking disabled", "error", err)
	} else {
		locker = redisLock
		defer redisLock.Close()
	}

	sessionRepo := postgresql.NewSessionRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	workSettingsRepo := postgresql.NewWorkSettingsRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	decisionEngine := attendanceService.NewDecisionEngine(
		sessionRepo,
		shiftRepo,
		profileRepo,
		leaveRequestRepo,
		workSettingsRepo,
		locker,
	)
	sessionSvc := attendanceService.NewSessionService(sessionRepo)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, workSettingsRepo)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, shiftRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(decisionEngine, sessionSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(sessionRepo, shiftRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		scheduleHandler,
		overtimeHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
