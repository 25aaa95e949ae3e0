// Package approvaldelivery manages delivery layer of the approval queue.
package approvaldelivery

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/middleware"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/tokenpkg"
	"github.com/go-teller/teller-bank/pkg/web"
)

// Service provides service layer interface needed by approval delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package approvaldelivery
type Service interface {
	ListPending(ctx context.Context, pageSize, pageID int32) ([]domain.Transaction, error)
	Approve(ctx context.Context, manager string, id int64, note string) (domain.LedgerTxResult, error)
	Reject(ctx context.Context, manager string, id int64, note string) (domain.Transaction, error)
}

// Handler facilitates approval delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns approval handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
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

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListPending handles http request to page through the approval queue.
func (h *Handler) ListPending(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	transactions, err := h.service.ListPending(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{Transactions: transactions}})
}

type decideURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type decideRequest struct {
	Note string `json:"note" binding:"omitempty,max=255"`
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

// Approve handles http request to approve a pending transaction. Deciding
// an already decided transaction responds with a warning, not an error.
func (h *Handler) Approve(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri decideURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, l, err)
		return
	}

	// The note is optional, an empty body is fine.
	var req decideRequest
	if err := gctx.ShouldBindJSON(&req); err != nil && err != io.EOF {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	res, err := h.service.Approve(ctx, authPayload.Username, uri.ID, req.Note)
	if err != nil {
		switch err {
		case domain.ErrTransactionDecided:
			gctx.JSON(http.StatusOK, web.Warn(err, transactionData{res.Transaction}))
			return
		case domain.ErrTransactionNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountFrozen:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

// Reject handles http request to reject a pending transaction. Deciding
// an already decided transaction responds with a warning, not an error.
func (h *Handler) Reject(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri decideURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, l, err)
		return
	}

	var req decideRequest
	if err := gctx.ShouldBindJSON(&req); err != nil && err != io.EOF {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.Reject(ctx, authPayload.Username, uri.ID, req.Note)
	if err != nil {
		switch err {
		case domain.ErrTransactionDecided:
			gctx.JSON(http.StatusOK, web.Warn(err, transactionData{transaction}))
			return
		case domain.ErrTransactionNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}
