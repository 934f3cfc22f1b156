package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
	"time"     // time parses duration values such as the gateway timeout
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	PaystackSecret  string        // server-side gateway credential, never sent to clients
	PaystackBaseURL string        // gateway API base URL
	PaystackTimeout time.Duration // upper bound on a single gateway call

	SMTPHost string // SMTP relay host
	SMTPPort int    // SMTP relay port
	SMTPUser string // SMTP username
	SMTPPass string // SMTP password
	MailFrom string // From address used on outgoing mail

	ClientURL   string // public frontend base URL used in email links
	RabbitURL   string // AMQP broker URL for the notification queue
	MetricsPort string // port for the prometheus /metrics endpoint ("" disables)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Values with sane
// defaults (gateway base URL, timeout, mail port) are optional; SMTP and
// broker settings may be left empty in development, in which case the
// notification pipeline degrades to logging.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		PaystackSecret:  must("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL: getenv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackTimeout: parseDur(getenv("PAYSTACK_TIMEOUT", "10s")),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: atoi(getenv("SMTP_PORT", "587")),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getenv("MAIL_FROM", "no-reply@farwill.example"),

		ClientURL:   getenv("CLIENT_URL", "http://localhost:3000"),
		RabbitURL:   os.Getenv("RABBITMQ_URL"),
		MetricsPort: os.Getenv("METRICS_PORT"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
