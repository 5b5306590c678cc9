package settings

import (
	"bufio"
	"log"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

var Settings *AppSettings

type AppSettings struct {
	SQLiteDatabase string
	PostgresDSN    string
	Domain         string
	Port           string
	GrantsPath     string
	SessionExpires time.Duration
}

func NewSettings() *AppSettings {
	settings := AppSettings{
		SessionExpires: 24 * time.Hour,
		Domain:         getEnvOrDefault("ACCOUNTS_DOMAIN", "localhost"),
		Port:           getEnvOrDefault("ACCOUNTS_PORT", ":8080"),
		SQLiteDatabase: getEnvOrDefault("ACCOUNTS_DB_PATH", "file:.///db.sqlite"),
		PostgresDSN:    os.Getenv("ACCOUNTS_POSTGRES_DSN"),
		GrantsPath:     os.Getenv("ACCOUNTS_GRANTS_PATH"),
	}
	if !strings.HasPrefix(settings.Port, ":") {
		settings.Port = ":" + settings.Port
	}
	return &settings
}

func getEnvOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func (as *AppSettings) UsesPostgres() bool {
	return as.PostgresDSN != ""
}

func (as *AppSettings) SQLiteDbString(readonly bool) string {
	params := make(url.Values)
	params.Add("_journal_mode", "WAL")
	params.Add("_busy_timeout", "5000")
	params.Add("_synchronous", "NORMAL")
	params.Add("_cache_size", "-20000")
	params.Add("_foreign_keys", "ON")
	if readonly {
		params.Add("mode", "ro")
	} else {
		params.Add("_txlock", "IMMEDIATE")
		params.Add("mode", "rwc")
	}

	return as.SQLiteDatabase + "?" + params.Encode()
}

func ReadDotenv(path string) {
	re := regexp.MustCompile(`^[^0-9][A-Z0-9_]+=.+$`)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Fatal("err opening dotenv: ", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] != '#' && re.Match(line) {
			// values may themselves contain '=' (postgres DSNs do)
			split := strings.SplitN(string(line), "=", 2)
			name := strings.TrimSpace(split[0])
			value := strings.TrimSpace(split[1])
			value = strings.Trim(value, `"`)
			os.Setenv(name, value)
		}
	}
}
