// Package main provides the entry point for the Mask Painter application.
package main

import (
	"os"
	"time"

	"mask-painter/internal/app"
	"mask-painter/internal/version"
	"mask-painter/ui/mainwindow"
	"mask-painter/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
)

const appTitle = "Mask Painter"

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("MASK_PAINTER_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithField("version", version.Version).Infof("Starting %s", appTitle)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.MaskPainterTheme{})

	state := app.NewState(log)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state, appPrefs)
	win.Resize(fyne.NewSize(1200, 800))

	// Handle command line arguments
	if len(os.Args) > 1 {
		imagePath := os.Args[1]
		if err := state.LoadImage(imagePath); err != nil {
			log.WithError(err).WithField("path", imagePath).Error("Failed to load image")
		}
	}

	setupHotReload(win, log)

	win.ShowAndRun()

	win.SavePreferences()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow, log *logrus.Logger) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Warn("Hot reload: unable to determine executable path")
		return
	}

	log.WithFields(logrus.Fields{
		"binary":   reloader.ExecPath(),
		"modified": reloader.StartupTime().Format("15:04:05"),
	}).Info("Hot reload: watching binary")

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		log.Info("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Info("Hot reload: saving preferences before restart")
					win.SavePreferences()
					log.Info("Hot reload: restarting")
					if err := reloader.Restart(); err != nil {
						log.WithError(err).Error("Hot reload: restart failed")
					}
				} else {
					reloader.ResetBaseline()
					reloader.Start()
				}
			}, win.Window)
	})

	reloader.Start()
}
