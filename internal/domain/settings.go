package domain

// SiteSettingsSlug is the globals key the site settings document is stored under
const SiteSettingsSlug = "site-settings"

// SiteSettings is the editable theming document for the storefront
type SiteSettings struct {
	General  GeneralSettings  `json:"general"`
	Header   HeaderSettings   `json:"header"`
	Hero     HeroSettings     `json:"hero"`
	Featured FeaturedSettings `json:"featured"`
}

type GeneralSettings struct {
	SiteName string `json:"siteName" validate:"required,max=100"`
}

type HeaderSettings struct {
	BackgroundColor   string `json:"backgroundColor" validate:"required,hexcolor"`
	BackgroundOpacity int    `json:"backgroundOpacity" validate:"min=0,max=100"`
	TextColor         string `json:"textColor" validate:"required,hexcolor"`
	Sticky            bool   `json:"sticky"`
	ShowCartIcon      bool   `json:"showCartIcon"`
}

type HeroSettings struct {
	Title           string `json:"title" validate:"max=200"`
	Subtitle        string `json:"subtitle" validate:"max=500"`
	ButtonText      string `json:"buttonText" validate:"max=60"`
	ButtonLink      string `json:"buttonLink" validate:"omitempty,uri"`
	BackgroundType  string `json:"backgroundType" validate:"required,oneof=color gradient image"`
	BackgroundColor string `json:"backgroundColor" validate:"omitempty,hexcolor"`
	BackgroundImage string `json:"backgroundImage,omitempty" validate:"required_if=BackgroundType image"`
	GradientStart   string `json:"gradientStart" validate:"omitempty,hexcolor"`
	GradientEnd     string `json:"gradientEnd" validate:"omitempty,hexcolor"`
	Height          string `json:"height" validate:"required,oneof=small medium large full"`
	TextAlign       string `json:"textAlign" validate:"required,oneof=left center right"`
}

type FeaturedSettings struct {
	Title string `json:"title" validate:"max=200"`
	Limit int    `json:"limit" validate:"min=1,max=12"`
}

// DefaultSiteSettings is served until an admin saves a document
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		General: GeneralSettings{SiteName: "Bookdragons"},
		Header: HeaderSettings{
			BackgroundColor:   "#ffffff",
			BackgroundOpacity: 100,
			TextColor:         "#1f2937",
			Sticky:            true,
			ShowCartIcon:      true,
		},
		Hero: HeroSettings{
			Title:          "Velkommen til Bookdragons",
			Subtitle:       "Finn din neste favorittbok",
			ButtonText:     "Se alle bøker",
			ButtonLink:     "/boker",
			BackgroundType: "gradient",
			GradientStart:  "#059669",
			GradientEnd:    "#065f46",
			Height:         "medium",
			TextAlign:      "center",
		},
		Featured: FeaturedSettings{
			Title: "Utvalgte bøker",
			Limit: 3,
		},
	}
}
