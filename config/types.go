package config

// AgencyConfig identifies the transit agency and the latitude window its
// topology must fit inside
type AgencyConfig struct {
	Tag    string  `yaml:"tag" validate:"required"`
	LatMin float64 `yaml:"latMin" validate:"required"`
	LatMax float64 `yaml:"latMax" validate:"required,gtfield=LatMin"`
}

// FeedConfig contains the upstream public XML feed configuration
type FeedConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ActiveConfig controls the active-subset freshness window
type ActiveConfig struct {
	ExpirySec int `yaml:"expirySec" validate:"gte=0"`
}

// GeoConfig contains nearest-stop lookup defaults
type GeoConfig struct {
	Precision int `yaml:"precision" validate:"gte=0,lte=12"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Agency AgencyConfig `yaml:"agency" validate:"required"`
	Feed   FeedConfig   `yaml:"feed"`
	Active ActiveConfig `yaml:"active"`
	Geo    GeoConfig    `yaml:"geo"`
}
