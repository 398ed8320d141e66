package http

import (
	ws "shop-notification-srv/internal/websocket"
)

// --- Request DTOs ---

type notificationReq struct {
	Type    string `json:"type"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (r *notificationReq) toContent() ws.NotificationContent {
	return ws.NotificationContent{Type: r.Type, Title: r.Title, Message: r.Message, Data: r.Data}
}

type orderUpdateReq struct {
	Status  string `json:"status"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type productAlertReq struct {
	AlertType string `json:"alertType" validate:"required"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

func (r *productAlertReq) toContent() ws.ProductAlertContent {
	return ws.ProductAlertContent{AlertType: r.AlertType, Type: r.Type, Title: r.Title, Message: r.Message, Data: r.Data}
}

type notifyUserReq struct {
	UserID       ws.FlexString    `json:"userId" validate:"required"`
	Notification *notificationReq `json:"notification" validate:"required"`
}

func (r notifyUserReq) toInput() ws.NotifyUserInput {
	return ws.NotifyUserInput{UserID: r.UserID.String(), Notification: r.Notification.toContent()}
}

type broadcastReq struct {
	Notification *notificationReq `json:"notification" validate:"required"`
}

func (r broadcastReq) toSystemInput() ws.NotifySystemInput {
	return ws.NotifySystemInput{Notification: r.Notification.toContent()}
}

func (r broadcastReq) toAdminsInput() ws.NotifyAdminsInput {
	return ws.NotifyAdminsInput{Notification: r.Notification.toContent()}
}

type orderUpdateReqBody struct {
	UserID  ws.FlexString   `json:"userId" validate:"required"`
	OrderID ws.FlexString   `json:"orderId" validate:"required"`
	Update  *orderUpdateReq `json:"update" validate:"required"`
}

func (r orderUpdateReqBody) toInput() ws.UpdateOrderInput {
	u := r.Update
	return ws.UpdateOrderInput{
		UserID:  r.UserID.String(),
		OrderID: r.OrderID.String(),
		Update:  ws.OrderUpdateContent{Status: u.Status, Type: u.Type, Title: u.Title, Message: u.Message, Data: u.Data},
	}
}

type productAlertReqBody struct {
	UserID    ws.FlexString    `json:"userId" validate:"required"`
	ProductID ws.FlexString    `json:"productId" validate:"required"`
	Alert     *productAlertReq `json:"alert" validate:"required"`
}

func (r productAlertReqBody) toInput() ws.AlertProductInput {
	return ws.AlertProductInput{UserID: r.UserID.String(), ProductID: r.ProductID.String(), Alert: r.Alert.toContent()}
}

type productAlertAllReqBody struct {
	ProductID ws.FlexString    `json:"productId" validate:"required"`
	Alert     *productAlertReq `json:"alert" validate:"required"`
}

func (r productAlertAllReqBody) toInput() ws.AlertProductAllInput {
	return ws.AlertProductAllInput{ProductID: r.ProductID.String(), Alert: r.Alert.toContent()}
}

// --- Response DTOs ---

type statsResp struct {
	TotalConnections int    `json:"totalConnections"`
	ConnectedSockets int    `json:"connectedSockets"`
	UniqueUsers      int    `json:"uniqueUsers"`
	MessagesSent     uint64 `json:"messagesSent"`
	MessagesFailed   uint64 `json:"messagesFailed"`
}

type statsEnvelope struct {
	OK    bool      `json:"ok"`
	Stats statsResp `json:"stats"`
}

func newStatsEnvelope(s ws.HubStats) statsEnvelope {
	return statsEnvelope{
		OK: true,
		Stats: statsResp{
			TotalConnections: s.TotalConnections,
			ConnectedSockets: s.ConnectedSockets,
			UniqueUsers:      s.UniqueUsers,
			MessagesSent:     s.MessagesSent,
			MessagesFailed:   s.MessagesFailed,
		},
	}
}
