// Package statsdelivery manages delivery layer of system statistics.
package statsdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/web"
)

// Service provides service layer interface needed by stats delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statsdelivery
type Service interface {
	Overview(ctx context.Context) (domain.StatsOverview, error)
	Reports(ctx context.Context) ([]domain.PeriodReport, error)
}

// Handler facilitates stats delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns stats handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

type overviewData struct {
	Overview domain.StatsOverview `json:"overview"`
}

// Overview handles http request for the manager dashboard totals.
func (h *Handler) Overview(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	overview, err := h.service.Overview(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: overviewData{overview}})
}

type reportsData struct {
	Reports []domain.PeriodReport `json:"reports"`
}

// Reports handles http request for periodic transaction reports.
func (h *Handler) Reports(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	reports, err := h.service.Reports(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: reportsData{reports}})
}
