// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"part-annotator/internal/app"
	"part-annotator/internal/imageres"
	"part-annotator/internal/version"
	"part-annotator/internal/viewport"
	"part-annotator/ui/canvas"
	"part-annotator/ui/panels"
	"part-annotator/ui/prefs"
)

const projectExtension = ".partproj"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.MarkerCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	modeLabel *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Part Annotator")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1200, 800))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	vpCfg := viewport.Config{
		ZoomMin:  mw.prefs.FloatWithFallback(prefs.KeyZoomMin, viewport.DefaultZoomMin),
		ZoomMax:  mw.prefs.FloatWithFallback(prefs.KeyZoomMax, viewport.DefaultZoomMax),
		ZoomStep: mw.prefs.FloatWithFallback(prefs.KeyZoomStep, viewport.DefaultZoomStep),
	}
	ctrlCfg := viewport.ControllerConfig{
		ClickThreshold: mw.prefs.FloatWithFallback(prefs.KeyClickThreshold, viewport.DefaultClickThreshold),
	}

	mw.canvas = canvas.New(mw.state, vpCfg, ctrlCfg)

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")
	mw.modeLabel = widget.NewLabel(mw.state.Mode().String())

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil, nil, nil,
		mw.canvas,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.28)

	statusRow := container.NewBorder(nil, nil, nil, mw.modeLabel, mw.statusBar)
	content := container.NewBorder(
		nil,
		container.NewPadded(statusRow),
		nil, nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onResetView)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Reset View", mw.onResetView),
	)

	modeMenu := fyne.NewMenu("Mode",
		fyne.NewMenuItem("Preview", func() { mw.enterMode(viewport.ModePreview) }),
		fyne.NewMenuItem("Upload Image", func() { mw.enterMode(viewport.ModeUpload) }),
		fyne.NewMenuItem("Annotate", func() { mw.enterMode(viewport.ModeAnnotation) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, modeMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Part Annotator - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Part Annotator - " + filepath.Base(path))
			mw.updateStatus("Project saved: " + path)
		}
	})

	mw.state.On(app.EventImageLoading, func(data interface{}) {
		if res, ok := data.(*imageres.Resource); ok {
			mw.updateStatus("Loading image: " + res.DisplayName())
		}
	})

	mw.state.On(app.EventImageLoaded, func(_ interface{}) {
		mw.updateStatus("Image loaded")
	})

	mw.state.On(app.EventImageFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus(fmt.Sprintf("Image load failed: %v", err))
		}
	})

	mw.state.On(app.EventModeChanged, func(_ interface{}) {
		mw.modeLabel.SetText(mw.state.Mode().String())
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) enterMode(target viewport.Mode) {
	if err := mw.state.EnterMode(target); err != nil {
		mw.updateStatus(fmt.Sprintf("Cannot switch mode: %v", err))
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.Set(prefs.KeyLastDir, filepath.Dir(filePath))
	mw.prefs.Set(prefs.KeyLastProject, filePath)
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus(fmt.Sprintf("Could not save preferences: %v", err))
	}
}

// Menu action handlers

func (mw *MainWindow) onNewProject() {
	confirm := func() {
		mw.state.Reset()
		mw.canvas.ResetView()
		mw.SetTitle("Part Annotator")
		mw.updateStatus("New project")
	}
	if mw.state.Modified() {
		dialog.ShowConfirm("New Project", "Discard unsaved changes?", func(ok bool) {
			if ok {
				confirm()
			}
		}, mw.Window)
		return
	}
	confirm()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{projectExtension}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	path := mw.state.ProjectPath()
	if path == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(path); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if filepath.Ext(path) != projectExtension {
			path += projectExtension
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("annotations" + projectExtension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.canvas.ZoomIn()
	mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", mw.canvas.Zoom()*100))
}

func (mw *MainWindow) onZoomOut() {
	mw.canvas.ZoomOut()
	mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", mw.canvas.Zoom()*100))
}

func (mw *MainWindow) onResetView() {
	mw.canvas.ResetView()
	mw.updateStatus("View reset")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("Part Annotator %s\n\nAnnotate product photos with named part markers.", version.Version),
		mw.Window)
}
