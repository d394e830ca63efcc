package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/internal/theme"
	"github.com/bookdragons/storefront/pkg/errors"
)

// ThemeCSS holds CSS values derived from the settings colours
type ThemeCSS struct {
	HeaderBackground string `json:"headerBackground"`
	HeroBackground   string `json:"heroBackground"`
}

// SiteSettingsView is the settings document as served to the storefront
type SiteSettingsView struct {
	domain.SiteSettings
	CSS ThemeCSS `json:"css"`
}

// SettingsService reads and writes the site settings global
type SettingsService struct {
	globals repository.GlobalsRepository
	logger  *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(globals repository.GlobalsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		globals: globals,
		logger:  logger,
	}
}

// Get returns the stored settings, or the defaults when none were saved yet
func (s *SettingsService) Get(ctx context.Context) (*SiteSettingsView, error) {
	settings := domain.DefaultSiteSettings()

	data, err := s.globals.Get(ctx, domain.SiteSettingsSlug)
	var notFound *errors.ErrNotFound
	switch {
	case stderrors.As(err, &notFound):
		s.logger.Debug("Site settings not saved yet, serving defaults")
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("decode site settings: %w", err)
		}
	}

	return &SiteSettingsView{SiteSettings: settings, CSS: DeriveCSS(settings)}, nil
}

// Update validates and stores a full settings document
func (s *SettingsService) Update(ctx context.Context, settings domain.SiteSettings) (*SiteSettingsView, error) {
	if err := ValidateSiteSettings(settings); err != nil {
		return nil, err
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	if err := s.globals.Put(ctx, domain.SiteSettingsSlug, data); err != nil {
		s.logger.Error("Failed to store site settings", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Site settings updated", zap.String("site_name", settings.General.SiteName))
	return &SiteSettingsView{SiteSettings: settings, CSS: DeriveCSS(settings)}, nil
}

// ValidateSiteSettings runs field validation plus the background checks
// that depend on the chosen hero background type
func ValidateSiteSettings(settings domain.SiteSettings) error {
	err := repository.ValidateRecord(settings)
	var verr *errors.ErrValidation
	if err != nil && !stderrors.As(err, &verr) {
		return err
	}
	if verr == nil {
		verr = &errors.ErrValidation{Message: "validation failed", Fields: map[string]string{}}
	}

	hero := settings.Hero
	switch hero.BackgroundType {
	case "gradient":
		if hero.GradientStart == "" {
			verr.Fields["hero.gradientStart"] = "is required"
		}
		if hero.GradientEnd == "" {
			verr.Fields["hero.gradientEnd"] = "is required"
		}
	case "color":
		if hero.BackgroundColor == "" {
			verr.Fields["hero.backgroundColor"] = "is required"
		}
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

// DeriveCSS computes the header and hero backgrounds
func DeriveCSS(settings domain.SiteSettings) ThemeCSS {
	css := ThemeCSS{
		HeaderBackground: theme.RGBA(settings.Header.BackgroundColor, settings.Header.BackgroundOpacity),
	}
	hero := settings.Hero
	switch hero.BackgroundType {
	case "gradient":
		css.HeroBackground = theme.LinearGradient(hero.GradientStart, hero.GradientEnd)
	case "image":
		css.HeroBackground = fmt.Sprintf("url(%q)", hero.BackgroundImage)
	default:
		css.HeroBackground = hero.BackgroundColor
	}
	return css
}
