// Package ledgerdelivery manages delivery layer of balance mutations.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/ledgerservice"
	"github.com/go-teller/teller-bank/internal/middleware"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/tokenpkg"
	"github.com/go-teller/teller-bank/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Apply(ctx context.Context, owner string, arg domain.ApplyParams) (domain.LedgerTxResult, error)
	Submit(ctx context.Context, owner string, arg domain.ApplyParams) (domain.Transaction, error)
	History(ctx context.Context, owner string, arg ledgerservice.HistoryParams) ([]domain.Transaction, error)
	Browse(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	Receipt(ctx context.Context, owner string, transactionID int64) (domain.Receipt, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
}

type createRequest struct {
	AccountID   int32  `json:"account_id" binding:"required,min=1"`
	Direction   string `json:"direction" binding:"required,oneof=DEPOSIT WITHDRAW"`
	Amount      string `json:"amount" binding:"required,money"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

func bindError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func mutationError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount, domain.ErrInvalidDirection:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	case domain.ErrAmountOverLimit:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
		return
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case domain.ErrAccountOwnerMismatch:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	case domain.ErrAccountFrozen:
		gctx.JSON(http.StatusForbidden, web.Error(err))
		return
	case domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

// Create handles http request to apply a deposit or withdrawal to the
// caller's account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	res, err := h.service.Apply(ctx, authPayload.Username, domain.ApplyParams{
		AccountID:   req.AccountID,
		Direction:   req.Direction,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		mutationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

// SubmitPending handles http request to record a transaction that awaits
// manager approval. The balance is untouched until the decision.
func (h *Handler) SubmitPending(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.Submit(ctx, authPayload.Username, domain.ApplyParams{
		AccountID:   req.AccountID,
		Direction:   req.Direction,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		mutationError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

type historyURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type historyRequest struct {
	Direction string `form:"direction" binding:"omitempty,oneof=DEPOSIT WITHDRAW"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
	PageID    int32  `form:"page_id" binding:"required,min=1"`
	PageSize  int32  `form:"page_size" binding:"required,min=1,max=100"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// History handles http request to page through the caller's transactions.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri historyURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, l, err)
		return
	}

	var req historyRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.History(ctx, authPayload.Username, ledgerservice.HistoryParams{
		AccountID: uri.ID,
		Direction: req.Direction,
		Status:    req.Status,
		PageSize:  req.PageSize,
		PageID:    req.PageID,
	})
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{Transactions: transactions}})
}

type browseRequest struct {
	AccountID int32  `form:"account_id" binding:"omitempty,min=1"`
	Direction string `form:"direction" binding:"omitempty,oneof=DEPOSIT WITHDRAW"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
	PageID    int32  `form:"page_id" binding:"required,min=1"`
	PageSize  int32  `form:"page_size" binding:"required,min=1,max=100"`
}

// Browse handles http request of a manager to browse transactions across
// all accounts.
func (h *Handler) Browse(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req browseRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	transactions, err := h.service.Browse(ctx, domain.ListTransactionsParams{
		AccountID: req.AccountID,
		Direction: req.Direction,
		Status:    req.Status,
		Limit:     req.PageSize,
		Offset:    (req.PageID - 1) * req.PageSize,
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{Transactions: transactions}})
}

type receiptURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type receiptData struct {
	Receipt domain.Receipt `json:"receipt"`
}

// Receipt handles http request to get a snapshot of the caller's transaction.
func (h *Handler) Receipt(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri receiptURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	receipt, err := h.service.Receipt(ctx, authPayload.Username, uri.ID)
	if err != nil {
		switch err {
		case domain.ErrTransactionNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: receiptData{receipt}})
}
