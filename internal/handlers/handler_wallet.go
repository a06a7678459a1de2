package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/dto"
	"github.com/synchroai/synchro_backend/internal/middleware"
	"github.com/synchroai/synchro_backend/internal/platform/config"
)

// walletHandler handles HTTP requests for wallet balance, ledger and top-ups.
type walletHandler struct {
	cfg          *config.Config
	walletSvc    portssvc.WalletSvcFacade
	topUpService portssvc.TopUpSvcFacade
}

func newWalletHandler(cfg *config.Config, walletSvc portssvc.WalletSvcFacade, topUpService portssvc.TopUpSvcFacade) *walletHandler {
	return &walletHandler{
		cfg:          cfg,
		walletSvc:    walletSvc,
		topUpService: topUpService,
	}
}

// registerWalletRoutes registers routes related to the wallet. The top-up
// start endpoint carries a rate limiter because it creates external sessions.
func registerWalletRoutes(rg *gin.RouterGroup, cfg *config.Config, walletSvc portssvc.WalletSvcFacade, topUpService portssvc.TopUpSvcFacade, topUpLimiter gin.HandlerFunc) {
	h := newWalletHandler(cfg, walletSvc, topUpService)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("/balance", h.getBalance)
		wallet.GET("/ledger", h.listLedger)
		wallet.POST("/topups", topUpLimiter, h.startTopUp)
		wallet.POST("/topups/:sessionID/confirm", h.confirmTopUp)
	}
}

// getBalance godoc
// @Summary Get wallet balance
// @Description Returns the authenticated user's current wallet balance.
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	balance, err := h.walletSvc.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// listLedger godoc
// @Summary List ledger entries
// @Description Returns the authenticated user's ledger entries, newest first.
// @Tags wallet
// @Produce json
// @Param limit query int false "Maximum number of entries (default 10)"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/ledger [get]
func (h *walletHandler) listLedger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.walletSvc.ListLedger(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries))
}

// startTopUp godoc
// @Summary Start a wallet top-up
// @Description Creates a checkout session for the given amount (5-1000 USD)
// and returns the redirect URL.
// @Tags wallet
// @Accept json
// @Produce json
// @Param topup body dto.StartTopUpRequest true "Top-up amount in USD"
// @Success 201 {object} dto.StartTopUpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Payment gateway unavailable"
// @Security BearerAuth
// @Router /wallet/topups [post]
func (h *walletHandler) startTopUp(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.StartTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.topUpService.StartTopUp(c.Request.Context(), userID, req.Amount, h.cfg.FrontendBaseURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// confirmTopUp godoc
// @Summary Confirm a wallet top-up
// @Description Verifies the checkout session with the gateway and credits the
// wallet. Safe to call repeatedly; an already-credited session returns the
// current balance.
// @Tags wallet
// @Produce json
// @Param sessionID path string true "Checkout session ID"
// @Success 200 {object} dto.ConfirmTopUpResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Session belongs to another user"
// @Failure 404 {object} ErrorResponse "Unknown session"
// @Failure 409 {object} ErrorResponse "Session not paid yet"
// @Security BearerAuth
// @Router /wallet/topups/{sessionID}/confirm [post]
func (h *walletHandler) confirmTopUp(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("sessionID")
	balance, err := h.topUpService.ConfirmTopUp(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Top-up confirmed", "session_id", sessionID, "user_id", userID)
	c.JSON(http.StatusOK, dto.ConfirmTopUpResponse{Balance: balance})
}
