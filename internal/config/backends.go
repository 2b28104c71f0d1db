package config

import "time"

// Store selects the entitlement/counter store backend.
type Store struct {
	// Backend is one of "redis", "postgres" or "memory".
	Backend string `env:"STORE_BACKEND" envDefault:"redis"`
}

type Scraper struct {
	BaseURL     string        `env:"SCRAPER_BASE_URL" envDefault:"https://api.scraperapi.com"`
	APIKey      string        `env:"SCRAPER_API_KEY,required" json:"-"`
	CountryCode string        `env:"SCRAPER_COUNTRY_CODE" envDefault:"us"`
	Premium     bool          `env:"SCRAPER_PREMIUM" envDefault:"false"`
	Timeout     time.Duration `env:"SCRAPER_TIMEOUT" envDefault:"70s"`
}

type LLM struct {
	BaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	APIKey      string        `env:"LLM_API_KEY,required" json:"-"`
	Model       string        `env:"LLM_MODEL" envDefault:"gpt-4o"`
	Temperature float64       `env:"LLM_TEMPERATURE" envDefault:"0"`
	MaxSteps    int           `env:"LLM_MAX_STEPS" envDefault:"6"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

type Bot struct {
	Token         string `env:"BOT_TOKEN,required" json:"-"`
	AdminID       int64  `env:"BOT_ADMIN_ID"`
	FreeScanLimit int64  `env:"BOT_FREE_SCAN_LIMIT" envDefault:"3"`
}

type Payments struct {
	BaseURL       string        `env:"PAYMENTS_BASE_URL" envDefault:"https://api.commerce.coinbase.com"`
	APIKey        string        `env:"PAYMENTS_API_KEY" json:"-"`
	WebhookSecret string        `env:"PAYMENTS_WEBHOOK_SECRET,required" json:"-"`
	ProPriceUSD   string        `env:"PAYMENTS_PRO_PRICE_USD" envDefault:"9.99"`
	Timeout       time.Duration `env:"PAYMENTS_TIMEOUT" envDefault:"15s"`

	// SocialWebhookSecret keys the challenge-response handshake on the
	// social webhook route.
	SocialWebhookSecret string `env:"SOCIAL_WEBHOOK_SECRET" json:"-"`
}

type Analyzer struct {
	// ReduceBudget caps reducer output length, 1500-10000 characters.
	ReduceBudget   int           `env:"ANALYZER_REDUCE_BUDGET" envDefault:"8000"`
	FulfillmentFee float64       `env:"ANALYZER_FULFILLMENT_FEE" envDefault:"3.22"`
	CacheTTL       time.Duration `env:"ANALYZER_CACHE_TTL" envDefault:"10m"`
}

type Worker struct {
	Concurrency int           `env:"WORKER_CONCURRENCY" envDefault:"4"`
	TaskTimeout time.Duration `env:"WORKER_TASK_TIMEOUT" envDefault:"3m"`
}
