package app

import (
	"time"

	"github.com/lovelyapp/backend/internal/app/api/server"
	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/app/service/handoff"
	"github.com/lovelyapp/backend/internal/app/service/profile"
	"github.com/lovelyapp/backend/internal/app/service/statistics"
	"github.com/lovelyapp/backend/internal/app/service/subscription"
	"github.com/lovelyapp/backend/internal/app/service/webhook"
	"github.com/lovelyapp/backend/internal/app/service/webhook_log"
	"github.com/lovelyapp/backend/internal/platform/db"
	"github.com/lovelyapp/backend/internal/platform/lock"
	"github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/logger"
	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

// Platform is everything below the services: config, logging, storage and locks.
var Platform = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	lock.Module,
)

// Services is the domain layer without transport.
var Services = fx.Options(
	auth.Module,
	profile.Module,
	subscription.Module,
	statistics.Module,
	webhook_log.Module,
	webhook.Module,
	handoff.Module,
)

var Module = fx.Options(
	Platform,
	Services,
	server.Module,
)
