// Command diary runs the terminal diary and reminder application.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/app"
	"github.com/piappstudio/digitaldiary/internal/credential"
	"github.com/piappstudio/digitaldiary/internal/export"
	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/seed"
	"github.com/piappstudio/digitaldiary/internal/storage"
	"github.com/piappstudio/digitaldiary/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	seedData := flag.Bool("seed", false, "replace all data with sample entries and reminders")
	setPasscode := flag.String("set-passcode", "", "store an app-lock passcode and exit")
	clearPasscode := flag.Bool("clear-passcode", false, "remove the app-lock passcode and exit")
	flag.Parse()

	if *setPasscode != "" {
		if err := credential.SetPasscode(*setPasscode); err != nil {
			log.Fatalf("setting passcode: %v", err)
		}
		fmt.Println("Passcode stored. Enable app_lock in the config to use it.")
		return
	}
	if *clearPasscode {
		if err := credential.ClearPasscode(); err != nil {
			log.Fatalf("clearing passcode: %v", err)
		}
		fmt.Println("Passcode cleared.")
		return
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	s, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer s.Close()

	if *seedData {
		if err := seed.Run(context.Background(), s); err != nil {
			log.Fatalf("seeding data: %v", err)
		}
		fmt.Println("Sample data inserted.")
	}

	files, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		log.Fatalf("preparing media directory: %v", err)
	}
	exporter, err := export.New(files, cfg.ExportDir)
	if err != nil {
		log.Fatalf("preparing export directory: %v", err)
	}

	p := tea.NewProgram(app.New(s, cfg, files, exporter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
