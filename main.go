// Package main provides the entry point for the Part Annotator application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"part-annotator/internal/app"
	"part-annotator/internal/version"
	"part-annotator/ui/mainwindow"
	"part-annotator/ui/prefs"
)

const appTitle = "Part Annotator"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("com.partannotator.app")

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open a project given on the command line, else reopen the last one.
	projectPath := appPrefs.String(prefs.KeyLastProject)
	if len(os.Args) > 1 {
		projectPath = os.Args[1]
	}
	if projectPath != "" {
		if err := appState.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	setupReloadWatch(win)

	win.ShowAndRun()
}

// setupReloadWatch prompts for a restart when the binary is recompiled
// while the application is running.
func setupReloadWatch(win *mainwindow.MainWindow) {
	reloader, err := app.NewReloader(2 * time.Second)
	if err != nil {
		log.Printf("Reload watch disabled: %v", err)
		return
	}
	log.Printf("Reload watch: %s", reloader.ExecPath())

	reloader.OnUpdate(func() {
		dialog.ShowConfirm("New Build",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Restarting into new binary")
				if err := reloader.Restart(); err != nil {
					log.Printf("Restart failed: %v", err)
				}
			}, win)
	})
	reloader.Start()
}
