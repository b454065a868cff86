package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"listings-backend/internal/adapter/collaborator"
	httpadp "listings-backend/internal/adapter/http"
	appmw "listings-backend/internal/adapter/middleware"
	"listings-backend/internal/adapter/repository/mysql"
	"listings-backend/internal/config"
	"listings-backend/internal/infrastructure/cache"
	"listings-backend/internal/infrastructure/db"
	"listings-backend/internal/usecase/calloption"
	"listings-backend/internal/usecase/event"
	"listings-backend/internal/usecase/loan"
	"listings-backend/internal/usecase/rental"
	"listings-backend/pkg/clock"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	custodySvc := collaborator.NewCustodyClient(cfg.CustodyBaseURL)
	rail := collaborator.NewRailClient(cfg.RailBaseURL)
	oracle := collaborator.NewOracleClient(cfg.OracleBaseURL)

	u := mysql.NewGormUoW(gdb)
	clk := clock.System{}

	loanUC := loan.NewUsecase(u, custodySvc, rail, oracle, clk)
	rentalUC := rental.NewUsecase(u, custodySvc, rail, oracle, clk)
	optionUC := calloption.NewUsecase(u, custodySvc, rail, oracle, clk)
	eventUC := event.NewUsecase(u)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUC)
	rh := httpadp.NewRentalHandler(rentalUC)
	oh := httpadp.NewOptionHandler(optionUC)
	eh := httpadp.NewEventHandler(eventUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/loans", lh.ListLoan)
	e.POST("/loans/:loan_id/activate", lh.ActivateLoan)
	e.POST("/loans/:loan_id/repay", lh.RepayLoan)
	e.POST("/loans/:loan_id/repossess", lh.RepossessLoan)
	e.GET("/loans/:loan_id", lh.GetLoan)

	e.POST("/rentals", rh.ListRental)
	e.POST("/rentals/:rental_id/hire", rh.HireRental)
	e.POST("/rentals/:rental_id/settle", rh.SettleRental)
	e.POST("/rentals/:rental_id/withdraw", rh.WithdrawRental)
	e.POST("/rentals/:rental_id/close", rh.CloseRental)
	e.GET("/rentals/:rental_id", rh.GetRental)

	e.POST("/options", oh.ListOption)
	e.POST("/options/:option_id/buy", oh.BuyOption)
	e.POST("/options/:option_id/exercise", oh.ExerciseOption)
	e.POST("/options/:option_id/cancel", oh.CancelOption)
	e.GET("/options/:option_id", oh.GetOption)

	e.GET("/events", eh.ListEvents)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
