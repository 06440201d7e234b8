package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"p9e.in/hotelflex/models"
	"p9e.in/hotelflex/pkg/sheets"
)

// Settings carries everything read from the environment at startup.
type Settings struct {
	Port          string
	SurveyVersion string
	// IncludeRebound toggles the rebound criterion for this deployment.
	// The export column always exists; only collection is switched off.
	IncludeRebound bool

	SheetsBucket    string
	SheetsObject    string
	SheetsCredsFile string
	WorkbookPath    string

	DBDSN         string
	JWTSecret     string
	AdminPassHash string
}

var (
	App Settings
	Log *zap.SugaredLogger
)

// Load reads .env plus the process environment and initializes logging.
func Load() {
	logger, _ := zap.NewProduction()
	Log = logger.Sugar()

	if err := godotenv.Load(); err != nil {
		Log.Info("no .env file found, using system environment variables")
	}

	App = Settings{
		Port:            envOr("PORT", "8080"),
		SurveyVersion:   envOr("SURVEY_VERSION", models.SurveyVersion),
		IncludeRebound:  envBool("SURVEY_INCLUDE_REBOUND", true),
		SheetsBucket:    os.Getenv("SHEETS_BUCKET"),
		SheetsObject:    envOr("SHEETS_OBJECT", "hotel-flex-responses.xlsx"),
		SheetsCredsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"),
		WorkbookPath:    os.Getenv("WORKBOOK_PATH"),
		DBDSN:           os.Getenv("DB_DSN"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminPassHash:   os.Getenv("ADMIN_PASS_HASH"),
	}
}

// NewSheetStore builds the workbook store from the settings. A nil store
// means "not configured": submissions still complete, with a warning status.
func NewSheetStore() sheets.Store {
	switch {
	case App.SheetsBucket != "":
		return sheets.NewGCSStore(App.SheetsBucket, App.SheetsObject, App.SheetsCredsFile)
	case App.WorkbookPath != "":
		return sheets.NewLocalStore(App.WorkbookPath)
	default:
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return fallback
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
