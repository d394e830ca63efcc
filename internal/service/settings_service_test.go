package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository/memory"
	"github.com/bookdragons/storefront/pkg/errors"
)

func TestSettingsService_DefaultsUntilSaved(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	svc := NewSettingsService(repos.Globals, zap.NewNop())

	view, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSiteSettings(), view.SiteSettings)
	assert.Equal(t, "#ffffff", view.CSS.HeaderBackground)
	assert.Equal(t, "linear-gradient(135deg, #059669, #065f46)", view.CSS.HeroBackground)
}

func TestSettingsService_Update(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	svc := NewSettingsService(repos.Globals, zap.NewNop())
	ctx := context.Background()

	settings := domain.DefaultSiteSettings()
	settings.General.SiteName = "Bokdragen"
	settings.Header.BackgroundColor = "#059669"
	settings.Header.BackgroundOpacity = 90
	settings.Hero.BackgroundType = "color"
	settings.Hero.BackgroundColor = "#111827"

	_, err := svc.Update(ctx, settings)
	require.NoError(t, err)

	view, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bokdragen", view.General.SiteName)
	assert.Equal(t, "rgba(5, 150, 105, 0.9)", view.CSS.HeaderBackground)
	assert.Equal(t, "#111827", view.CSS.HeroBackground)
}

func TestValidateSiteSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *domain.SiteSettings)
		fields []string
	}{
		{"defaults are valid", func(s *domain.SiteSettings) {}, nil},
		{"missing site name", func(s *domain.SiteSettings) { s.General.SiteName = "" }, []string{"general.siteName"}},
		{"bad header colour", func(s *domain.SiteSettings) { s.Header.BackgroundColor = "green" }, []string{"header.backgroundColor"}},
		{"opacity above 100", func(s *domain.SiteSettings) { s.Header.BackgroundOpacity = 120 }, []string{"header.backgroundOpacity"}},
		{"unknown background type", func(s *domain.SiteSettings) { s.Hero.BackgroundType = "video" }, []string{"hero.backgroundType"}},
		{"gradient without colours", func(s *domain.SiteSettings) {
			s.Hero.GradientStart = ""
			s.Hero.GradientEnd = ""
		}, []string{"hero.gradientStart", "hero.gradientEnd"}},
		{"colour background without colour", func(s *domain.SiteSettings) { s.Hero.BackgroundType = "color" }, []string{"hero.backgroundColor"}},
		{"image background without image", func(s *domain.SiteSettings) { s.Hero.BackgroundType = "image" }, []string{"hero.backgroundImage"}},
		{"featured limit too high", func(s *domain.SiteSettings) { s.Featured.Limit = 50 }, []string{"featured.limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultSiteSettings()
			tt.modify(&settings)

			err := ValidateSiteSettings(settings)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *errors.ErrValidation
			require.True(t, stderrors.As(err, &verr), "got %v", err)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestDeriveCSS_Image(t *testing.T) {
	settings := domain.DefaultSiteSettings()
	settings.Hero.BackgroundType = "image"
	settings.Hero.BackgroundImage = "/media/hero.jpg"

	css := DeriveCSS(settings)
	assert.Equal(t, `url("/media/hero.jpg")`, css.HeroBackground)
}
