package handlers

import (
	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/app/service/statistics"
	"github.com/lovelyapp/backend/internal/app/service/webhook"
	"github.com/lovelyapp/backend/internal/models"
)

// Documentation-only envelopes. swag cannot resolve generic instantiations
// of response.Envelope, so each concrete body is spelled out.

// RespOK is a success envelope without data.
type RespOK struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RespError is the body of every 4xx/5xx JSON response.
type RespError struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type RespWebhook struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    webhook.Result `json:"data"`
}

type RespLogin struct {
	Success bool             `json:"success"`
	Data    auth.LoginResult `json:"data"`
}

type RespValidate struct {
	Success bool             `json:"success"`
	Data    ValidateResponse `json:"data"`
}

type RespProfile struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    models.Profile `json:"data"`
}

type RespSubscription struct {
	Success bool                `json:"success"`
	Data    models.Subscription `json:"data"`
}

type RespSubscriptionHistory struct {
	Success bool                     `json:"success"`
	Data    []models.SubscriptionLog `json:"data"`
}

type RespUserStats struct {
	Success bool             `json:"success"`
	Data    statistics.Stats `json:"data"`
}

type RespUserActivities struct {
	Success bool                  `json:"success"`
	Data    []statistics.Activity `json:"data"`
}

type RespWebhookLogs struct {
	Success bool                `json:"success"`
	Data    []models.WebhookLog `json:"data"`
}
