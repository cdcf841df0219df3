package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/types"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// UpdateRequest holds the editable profile fields. Nil fields are left unchanged.
type UpdateRequest struct {
	PartnerName   *string `json:"partnerName" validate:"omitempty,max=255"`
	MoodToday     *string `json:"moodToday" validate:"omitempty,max=255"`
	DarinessLevel *int    `json:"darinessLevel" validate:"omitempty,min=1,max=10"`
}

type Service struct {
	store    store.Store
	validate *validator.Validate
	log      *zap.SugaredLogger
}

func NewService(st store.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: st, validate: validator.New(), log: log}
}

// Get returns the user's profile, creating a default one on first read.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.store.FindProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p = &models.Profile{UserID: userID, DarinessLevel: types.DefaultDaringLevel}
	if err := s.store.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// created concurrently
			return s.store.FindProfile(ctx, userID)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("profile_created", "user_id", userID)
	return p, nil
}

// Update applies req to the user's profile, creating it when missing.
func (s *Service) Update(ctx context.Context, userID string, req *UpdateRequest) (*models.Profile, error) {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, apperror.Validation(verrs[0].Field(), fmt.Sprintf("Valor inválido para %s", verrs[0].Field()))
		}
		return nil, apperror.Validation("", "Dados inválidos")
	}

	var out *models.Profile
	err := s.store.InTx(ctx, func(tx store.Store) error {
		p, err := tx.FindProfile(ctx, userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			p = &models.Profile{UserID: userID, DarinessLevel: types.DefaultDaringLevel}
		}
		if req.PartnerName != nil {
			p.PartnerName = *req.PartnerName
		}
		if req.MoodToday != nil {
			p.MoodToday = *req.MoodToday
		}
		if req.DarinessLevel != nil {
			p.DarinessLevel = *req.DarinessLevel
		}
		out = p
		return tx.SaveProfile(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("profile_updated", "user_id", userID)
	return out, nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
