package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"matchpoint-api/internal/models"
)

// Config holds the application configuration. Everything here is resolved at
// startup and treated as immutable afterwards.
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Cache     CacheConfig
	OAuth     OAuthConfig
	LogLevel  string
	WarmCron  string // cron spec for the cache warmer, empty disables it
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	FrontendURL    string
	AllowedOrigins []string
}

// ProvidersConfig holds outbound job-board API settings.
type ProvidersConfig struct {
	RemotiveURL    string
	RemotiveLimit  int
	ArbeitnowURL   string
	ArbeitnowLimit int
	RequestTimeout time.Duration
}

// CacheConfig holds result-cache settings.
type CacheConfig struct {
	TTL     time.Duration
	MaxKeys int
}

// OAuthConfig holds the LinkedIn OAuth redirect-flow settings.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	UserinfoURL  string
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8000,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
			FrontendURL:  "http://localhost:5173",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://127.0.0.1:5173",
			},
		},
		Providers: ProvidersConfig{
			RemotiveURL:    "https://remotive.com/api/remote-jobs",
			RemotiveLimit:  100,
			ArbeitnowURL:   "https://www.arbeitnow.com/api/job-board-api",
			ArbeitnowLimit: 50,
			RequestTimeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			TTL:     300 * time.Second,
			MaxKeys: 128,
		},
		OAuth: OAuthConfig{
			RedirectURI: "http://localhost:8000/api/auth/linkedin/callback",
			AuthURL:     "https://www.linkedin.com/oauth/v2/authorization",
			TokenURL:    "https://www.linkedin.com/oauth/v2/accessToken",
			UserinfoURL: "https://api.linkedin.com/v2/userinfo",
		},
		LogLevel: "info",
	}
}

// Load returns the defaults overlaid with MATCHPOINT_* / LINKEDIN_*
// environment variables. Callers are expected to have run godotenv first.
func Load() *Config {
	cfg := DefaultConfig()

	cfg.Server.Port = getenvInt("MATCHPOINT_PORT", cfg.Server.Port)
	cfg.Server.FrontendURL = getenv("FRONTEND_URL", cfg.Server.FrontendURL)
	if origins := getenvCSV("MATCHPOINT_ALLOWED_ORIGINS"); len(origins) > 0 {
		cfg.Server.AllowedOrigins = origins
	}

	cfg.Providers.RemotiveURL = getenv("MATCHPOINT_REMOTIVE_URL", cfg.Providers.RemotiveURL)
	cfg.Providers.RemotiveLimit = getenvInt("MATCHPOINT_REMOTIVE_LIMIT", cfg.Providers.RemotiveLimit)
	cfg.Providers.ArbeitnowURL = getenv("MATCHPOINT_ARBEITNOW_URL", cfg.Providers.ArbeitnowURL)
	cfg.Providers.ArbeitnowLimit = getenvInt("MATCHPOINT_ARBEITNOW_LIMIT", cfg.Providers.ArbeitnowLimit)
	if secs := getenvInt("MATCHPOINT_REQUEST_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.Providers.RequestTimeout = time.Duration(secs) * time.Second
	}

	if secs := getenvInt("MATCHPOINT_CACHE_TTL_SECONDS", 0); secs > 0 {
		cfg.Cache.TTL = time.Duration(secs) * time.Second
	}

	cfg.OAuth.ClientID = getenv("LINKEDIN_CLIENT_ID", cfg.OAuth.ClientID)
	cfg.OAuth.ClientSecret = getenv("LINKEDIN_CLIENT_SECRET", cfg.OAuth.ClientSecret)
	cfg.OAuth.RedirectURI = getenv("LINKEDIN_REDIRECT_URI", cfg.OAuth.RedirectURI)

	cfg.LogLevel = getenv("MATCHPOINT_LOG_LEVEL", cfg.LogLevel)
	cfg.WarmCron = getenv("MATCHPOINT_WARM_CRON", cfg.WarmCron)

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvCSV(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Categories is the static category list served by GET /api/categories.
var Categories = []models.ListItem{
	{ID: "software-dev", Label: "Software Dev", Icon: "fa-code"},
	{ID: "design", Label: "Design", Icon: "fa-palette"},
	{ID: "product", Label: "Product", Icon: "fa-box"},
	{ID: "marketing", Label: "Marketing", Icon: "fa-bullhorn"},
	{ID: "data", Label: "Data", Icon: "fa-database"},
	{ID: "devops", Label: "DevOps & Infra", Icon: "fa-server"},
	{ID: "customer-support", Label: "Support", Icon: "fa-headset"},
	{ID: "sales", Label: "Sales", Icon: "fa-handshake"},
	{ID: "finance-legal", Label: "Finance & Legal", Icon: "fa-scale-balanced"},
	{ID: "hr", Label: "Human Resources", Icon: "fa-users"},
	{ID: "qa", Label: "QA", Icon: "fa-bug"},
	{ID: "writing", Label: "Writing", Icon: "fa-pen"},
}

// JobTypes is the static job-type list served by GET /api/job-types.
var JobTypes = []models.ListItem{
	{ID: "full_time", Label: "Full-time", Icon: "fa-briefcase"},
	{ID: "contract", Label: "Contract", Icon: "fa-file-contract"},
	{ID: "part_time", Label: "Part-time", Icon: "fa-clock"},
	{ID: "freelance", Label: "Freelance", Icon: "fa-laptop"},
	{ID: "internship", Label: "Internship", Icon: "fa-graduation-cap"},
}

// DefaultSkills is the skill set used when a request supplies none.
var DefaultSkills = []string{
	"javascript", "react", "design", "figma", "css", "html", "python",
	"product", "ui", "ux", "typescript", "node", "marketing", "data",
	"analytics", "devops", "aws", "docker", "sql", "git", "agile",
	"management", "engineering", "frontend", "backend", "mobile",
}

// USStates holds the two-letter US state and territory abbreviations used by
// the location predicate.
var USStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// USCities holds lowercase major US city names matched as substrings.
var USCities = []string{
	"new york", "san francisco", "los angeles", "chicago", "seattle", "austin",
	"boston", "denver", "atlanta", "portland", "miami", "dallas", "houston",
	"phoenix", "philadelphia", "san diego", "san jose", "detroit",
	"minneapolis", "washington", "charlotte", "nashville", "raleigh",
	"salt lake", "las vegas", "tampa", "orlando", "pittsburgh", "columbus",
	"indianapolis", "brooklyn", "manhattan", "oakland", "sacramento",
	"san antonio", "jacksonville", "fort worth", "memphis", "baltimore",
	"milwaukee", "albuquerque", "tucson", "fresno", "mesa", "kansas city",
	"omaha", "colorado springs", "reno", "cleveland", "cincinnati",
	"st louis", "st. louis",
}

// WorldwideTerms are location substrings treated as US-eligible on the
// assumption that remote-friendly roles accept US candidates.
var WorldwideTerms = []string{
	"worldwide", "anywhere", "global", "remote", "usa or", "us or",
	"north america",
}
