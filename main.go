package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"p9e.in/hotelflex/config"
	"p9e.in/hotelflex/handlers"
	"p9e.in/hotelflex/models"
	"p9e.in/hotelflex/pkg/session"
	"p9e.in/hotelflex/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	config.Load()
	config.Connect()

	handlers.Sessions = session.NewManager(models.DefaultCatalog(), config.App.IncludeRebound)
	handlers.SheetStore = config.NewSheetStore()
	if handlers.SheetStore == nil {
		config.Log.Warn("no workbook target configured; submissions will complete with a warning status")
	}

	handler := routes.RegisterRoutes()
	handlerWithCORS := enableCORS(handler)
	config.Log.Infow("server starting", "port", config.App.Port, "surveyVersion", config.App.SurveyVersion)
	config.Log.Fatal(http.ListenAndServe(":"+config.App.Port, handlerWithCORS))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
