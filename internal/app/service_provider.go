package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	authAPI "github.com/ahmeterdemserceoglu/sloter/internal/api/auth"
	paymentAPI "github.com/ahmeterdemserceoglu/sloter/internal/api/payment"
	spinAPI "github.com/ahmeterdemserceoglu/sloter/internal/api/spin"
	"github.com/ahmeterdemserceoglu/sloter/internal/config"
	"github.com/ahmeterdemserceoglu/sloter/internal/config/env"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/payline"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rng"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rtp"
	"github.com/ahmeterdemserceoglu/sloter/internal/gateway"
	"github.com/ahmeterdemserceoglu/sloter/internal/middleware"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository/auth_repo"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository/payment_repo"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository/spin_repo"
	"github.com/ahmeterdemserceoglu/sloter/internal/repository/user_repo"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/anomaly"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/audit"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/fraud"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/lockout"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
	"github.com/ahmeterdemserceoglu/sloter/internal/service"
	authServ "github.com/ahmeterdemserceoglu/sloter/internal/service/auth"
	paymentServ "github.com/ahmeterdemserceoglu/sloter/internal/service/payment"
	spinServ "github.com/ahmeterdemserceoglu/sloter/internal/service/spin"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Логгер и журнал безопасности
	logger *logrus.Logger
	sink   audit.Sink

	// Защитные механизмы
	securityCfg config.SecurityConfig
	limiter     *ratelimit.Limiter
	detector    *anomaly.Detector
	lockoutMach *lockout.Machine
	heuristics  *fraud.Heuristics

	// Auth bits
	jwtConfig config.JWTConfig
	authRepo  repository.AuthRepository
	authSrv   service.AuthService
	authHand  *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Spin bits
	gameCfg   config.GameConfig
	generator *rng.Generator
	evaluator *payline.Evaluator
	ledger    *rtp.Ledger
	spinRepo  repository.SpinRepository
	spinSrv   service.SpinService
	spinHand  *spinAPI.Handler

	// Payment bits
	paymentRepo repository.PaymentRepository
	paymentSrv  service.PaymentService
	paymentHand *paymentAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) Logger() *logrus.Logger {
	if sp.logger == nil {
		l := logrus.New()
		l.SetFormatter(&logrus.JSONFormatter{})
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) AuditSink() audit.Sink {
	if sp.sink == nil {
		sp.sink = audit.NewLogSink(sp.Logger())
	}
	return sp.sink
}

func (sp *ServiceProvider) SecurityCfg() config.SecurityConfig {
	if sp.securityCfg == nil {
		cfg, err := env.NewSecurityConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get security config: " + err.Error())
		}
		sp.securityCfg = cfg
	}
	return sp.securityCfg
}

func (sp *ServiceProvider) Limiter() *ratelimit.Limiter {
	if sp.limiter == nil {
		sp.limiter = ratelimit.New(sp.SecurityCfg().RateLimits())
	}
	return sp.limiter
}

func (sp *ServiceProvider) Detector() *anomaly.Detector {
	if sp.detector == nil {
		sp.detector = anomaly.New(sp.SecurityCfg().Anomaly())
	}
	return sp.detector
}

func (sp *ServiceProvider) LockoutMachine(ctx context.Context) *lockout.Machine {
	if sp.lockoutMach == nil {
		sp.lockoutMach = lockout.New(sp.UserRepo(ctx), sp.SecurityCfg().Lockout())
	}
	return sp.lockoutMach
}

func (sp *ServiceProvider) FraudHeuristics(ctx context.Context) *fraud.Heuristics {
	if sp.heuristics == nil {
		sp.heuristics = fraud.New(
			sp.Limiter(),
			sp.PaymentRepo(ctx),
			sp.UserRepo(ctx),
			sp.SecurityCfg().Fraud(),
		)
	}
	return sp.heuristics
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authSrv == nil {
		sp.authSrv = authServ.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTConfig(),
			sp.Limiter(),
			sp.LockoutMachine(ctx),
			sp.AuditSink(),
		)
	}
	return sp.authSrv
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.AuthService(ctx),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) Generator() *rng.Generator {
	if sp.generator == nil {
		sp.generator = rng.NewGenerator(sp.GameCfg().WeightTable(), rng.NewPooledSource())
	}
	return sp.generator
}

func (sp *ServiceProvider) Evaluator() *payline.Evaluator {
	if sp.evaluator == nil {
		sp.evaluator = payline.NewEvaluator(sp.GameCfg().Payline())
	}
	return sp.evaluator
}

func (sp *ServiceProvider) Ledger() *rtp.Ledger {
	if sp.ledger == nil {
		sp.ledger = rtp.NewLedger(sp.GameCfg().RTPWindowSize())
	}
	return sp.ledger
}

func (sp *ServiceProvider) SpinRepo(ctx context.Context) repository.SpinRepository {
	if sp.spinRepo == nil {
		sp.spinRepo = spin_repo.NewSpinRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) SpinService(ctx context.Context) service.SpinService {
	if sp.spinSrv == nil {
		sp.spinSrv = spinServ.NewSpinService(
			spinServ.Config{
				Reels:           sp.GameCfg().Reels(),
				Rows:            sp.GameCfg().Rows(),
				MaxBet:          sp.GameCfg().MaxBet(),
				RejectOnAnomaly: sp.SecurityCfg().RejectOnAnomaly(),
			},
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.SpinRepo(ctx),
			sp.Generator(),
			sp.Evaluator(),
			sp.Ledger(),
			sp.Limiter(),
			sp.Detector(),
			sp.AuditSink(),
		)
	}
	return sp.spinSrv
}

func (sp *ServiceProvider) SpinHandler(ctx context.Context) *spinAPI.Handler {
	if sp.spinHand == nil {
		sp.spinHand = spinAPI.NewHandler(spinAPI.HandlerDeps{Serv: sp.SpinService(ctx)})
	}
	return sp.spinHand
}

func (sp *ServiceProvider) PaymentRepo(ctx context.Context) repository.PaymentRepository {
	if sp.paymentRepo == nil {
		sp.paymentRepo = payment_repo.NewPaymentRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.paymentRepo
}

func (sp *ServiceProvider) PaymentService(ctx context.Context) service.PaymentService {
	if sp.paymentSrv == nil {
		sp.paymentSrv = paymentServ.NewPaymentService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.PaymentRepo(ctx),
			gateway.NewMock(sp.Logger()),
			sp.Limiter(),
			sp.FraudHeuristics(ctx),
			sp.AuditSink(),
		)
	}
	return sp.paymentSrv
}

func (sp *ServiceProvider) PaymentHandler(ctx context.Context) *paymentAPI.Handler {
	if sp.paymentHand == nil {
		sp.paymentHand = paymentAPI.NewHandler(paymentAPI.HandlerDeps{Serv: sp.PaymentService(ctx)})
	}
	return sp.paymentHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		authMW := middleware.Auth(sp.JWTConfig().AccessTokenSecretKey())

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)

			// Административная разблокировка аккаунта
			rr.With(authMW, middleware.RequireCapability(model.CapAdminUnlock)).
				Post("/unlock", authHandler.Unlock)
		})

		// Spin endpoints
		spinHandler := sp.SpinHandler(ctx)
		r.Route("/spin", func(rr chi.Router) {
			rr.Use(authMW)
			rr.With(middleware.RequireCapability(model.CapSpin)).Post("/", spinHandler.Spin)

			rr.With(middleware.RequireCapability(model.CapAdminUnlock)).Get("/stats", spinHandler.Stats)
			rr.With(middleware.RequireCapability(model.CapAdminUnlock)).Post("/stats/reset", spinHandler.ResetStats)
		})

		// Payment endpoints
		paymentHandler := sp.PaymentHandler(ctx)
		r.Route("/payment", func(rr chi.Router) {
			rr.Use(authMW)
			rr.With(middleware.RequireCapability(model.CapDeposit)).Post("/deposit", paymentHandler.Deposit)
			rr.Get("/balance", paymentHandler.Balance)
		})

		sp.router = r
	}

	return sp.router
}
