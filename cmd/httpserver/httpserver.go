// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-teller/teller-bank/internal/accountdelivery"
	"github.com/go-teller/teller-bank/internal/accountrepo"
	"github.com/go-teller/teller-bank/internal/accountservice"
	"github.com/go-teller/teller-bank/internal/approvaldelivery"
	"github.com/go-teller/teller-bank/internal/approvalservice"
	"github.com/go-teller/teller-bank/internal/auditdelivery"
	"github.com/go-teller/teller-bank/internal/auditrepo"
	"github.com/go-teller/teller-bank/internal/auditservice"
	"github.com/go-teller/teller-bank/internal/ledgerdelivery"
	"github.com/go-teller/teller-bank/internal/ledgerrepo"
	"github.com/go-teller/teller-bank/internal/ledgerservice"
	"github.com/go-teller/teller-bank/internal/middleware"
	"github.com/go-teller/teller-bank/internal/sessiondelivery"
	"github.com/go-teller/teller-bank/internal/sessionrepo"
	"github.com/go-teller/teller-bank/internal/sessionservice"
	"github.com/go-teller/teller-bank/internal/statsdelivery"
	"github.com/go-teller/teller-bank/internal/statsrepo"
	"github.com/go-teller/teller-bank/internal/statsservice"
	"github.com/go-teller/teller-bank/internal/transactionrepo"
	"github.com/go-teller/teller-bank/internal/userdelivery"
	"github.com/go-teller/teller-bank/internal/userrepo"
	"github.com/go-teller/teller-bank/internal/userservice"
	"github.com/go-teller/teller-bank/pkg/configpkg"
	"github.com/go-teller/teller-bank/pkg/moneypkg"
	"github.com/go-teller/teller-bank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	auditRepo := auditrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	statsRepo := statsrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	auditService := auditservice.New(auditRepo)
	accountService := accountservice.New(accountRepo, auditService)
	userService := userservice.New(userRepo, accountService, auditService)
	ledgerService := ledgerservice.New(ledgerRepo, transactionRepo, accountService)
	approvalService := approvalservice.New(ledgerRepo, transactionRepo, auditService)
	statsService := statsservice.New(statsRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	approvalHandler := approvaldelivery.NewHandler(approvalService)
	auditHandler := auditdelivery.NewHandler(auditService)
	statsHandler := statsdelivery.NewHandler(statsService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/managers", userHandler.CreateManager)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/accounts/own", accountHandler.GetOwn)
	authRoutes.GET("/accounts/:id/transactions", ledgerHandler.History)
	authRoutes.POST("/transactions", ledgerHandler.Create)
	authRoutes.POST("/transactions/pending", ledgerHandler.SubmitPending)
	authRoutes.GET("/transactions/:id/receipt", ledgerHandler.Receipt)

	managerRoutes := engine.Group("/manager").Use(
		middleware.AuthMiddleware(sessionService.TokenMaker),
		middleware.RequireManager(),
	)

	managerRoutes.GET("/customers", userHandler.List)
	managerRoutes.GET("/customers/:username", userHandler.Get)
	managerRoutes.GET("/accounts", accountHandler.List)
	managerRoutes.GET("/accounts/:id", accountHandler.Get)
	managerRoutes.POST("/accounts/:id/freeze", accountHandler.Freeze)
	managerRoutes.POST("/accounts/:id/unfreeze", accountHandler.Unfreeze)
	managerRoutes.GET("/transactions", ledgerHandler.Browse)
	managerRoutes.GET("/transactions/pending", approvalHandler.ListPending)
	managerRoutes.POST("/transactions/:id/approve", approvalHandler.Approve)
	managerRoutes.POST("/transactions/:id/reject", approvalHandler.Reject)
	managerRoutes.GET("/actions", auditHandler.List)
	managerRoutes.GET("/stats", statsHandler.Overview)
	managerRoutes.GET("/reports", statsHandler.Reports)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("money", moneypkg.ValidMoney)
		if err != nil {
			return nil, errors.New("cannot register money validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
