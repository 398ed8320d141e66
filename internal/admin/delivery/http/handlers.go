package http

import (
	"github.com/gin-gonic/gin"

	"shop-notification-srv/pkg/response"
	"shop-notification-srv/pkg/validate"
)

// bind decodes the JSON body into req and checks required fields. On
// failure it writes the 400 response and returns false.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnf(c.Request.Context(), "invalid control-plane body | Path: %s | err: %v", c.Request.URL.Path, err)
		response.Error(c, errInvalidBody)
		return false
	}
	if err := validate.Struct(req); err != nil {
		h.logger.Warnf(c.Request.Context(), "control-plane validation failed | Path: %s | err: %v", c.Request.URL.Path, err)
		response.Error(c, err)
		return false
	}
	return true
}

func (h *Handler) reply(c *gin.Context, err error) {
	if err != nil {
		response.ErrorWithMap(c, err, errorMapping)
		return
	}
	response.OK(c)
}

// NotifyUser handles POST /admin/notify-user.
func (h *Handler) NotifyUser(c *gin.Context) {
	var req notifyUserReq
	if !h.bind(c, &req) {
		return
	}
	_, err := h.uc.NotifyUser(c.Request.Context(), req.toInput())
	h.reply(c, err)
}

// SystemNotify handles POST /admin/system-notify.
func (h *Handler) SystemNotify(c *gin.Context) {
	var req broadcastReq
	if !h.bind(c, &req) {
		return
	}
	_, err := h.uc.NotifySystem(c.Request.Context(), req.toSystemInput())
	h.reply(c, err)
}

// AdminNotify handles POST /admin/admin-notify.
func (h *Handler) AdminNotify(c *gin.Context) {
	var req broadcastReq
	if !h.bind(c, &req) {
		return
	}
	_, err := h.uc.NotifyAdmins(c.Request.Context(), req.toAdminsInput())
	h.reply(c, err)
}

// OrderUpdate handles POST /admin/order-update.
func (h *Handler) OrderUpdate(c *gin.Context) {
	var req orderUpdateReqBody
	if !h.bind(c, &req) {
		return
	}
	_, err := h.uc.UpdateOrder(c.Request.Context(), req.toInput())
	h.reply(c, err)
}

// ProductAlert handles POST /admin/product-alert.
func (h *Handler) ProductAlert(c *gin.Context) {
	var req productAlertReqBody
	if !h.bind(c, &req) {
		return
	}
	_, err := h.uc.AlertProduct(c.Request.Context(), req.toInput())
	h.reply(c, err)
}

// ProductAlertAll handles POST /admin/product-alert-all.
func (h *Handler) ProductAlertAll(c *gin.Context) {
	var req productAlertAllReqBody
	if !h.bind(c, &req) {
		return
	}
	_, err := h.uc.AlertProductAll(c.Request.Context(), req.toInput())
	h.reply(c, err)
}

// Stats handles GET /admin/stats. It is not secret-gated.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.uc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWith(c, newStatsEnvelope(stats))
}
