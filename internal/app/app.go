// Package app wires a loaded cartridge, the system bus, and a graphics
// backend into a runnable emulator, and loads the JSON configuration
// that picks the backend and window geometry.
package app

import (
	"fmt"
	"log"
	"time"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/graphics"
	"gones/internal/input"
)

// Application owns the emulated system, the window it renders into, and
// the run loop that drives both one frame at a time (at Ebitengine's 60 Hz
// tick in a window; unpaced on the headless and terminal backends).
type Application struct {
	config  *Config
	system  *bus.System
	backend graphics.Backend
	window  graphics.Window
	video   *graphics.VideoProcessor

	romPath string
	running bool
	paused  bool

	frameCount uint64
	startTime  time.Time
}

// ApplicationError identifies which component/operation an application
// failure came from.
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("app: %s %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// NewApplication creates an application from a config file path (loaded
// or defaulted) and a ROM path.
func NewApplication(configPath, romPath string) (*Application, error) {
	config := NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, &ApplicationError{"config", "load", err}
	}

	cart, err := cartridge.LoadFile(romPath)
	if err != nil {
		return nil, &ApplicationError{"cartridge", "load", err}
	}

	video := graphics.NewVideoProcessor(config.Video.Brightness, config.Video.Contrast, config.Video.Saturation)
	video.SetEmphasis(config.Video.EmphasizeRed, config.Video.EmphasizeGreen, config.Video.EmphasizeBlue)

	return &Application{
		config:    config,
		system:    bus.New(cart),
		video:     video,
		romPath:   romPath,
		startTime: time.Now(),
	}, nil
}

// Initialize creates the graphics backend named by the configuration
// (or headless, when headless is forced) and opens its window.
func (a *Application) Initialize(headless bool) error {
	backendType := graphics.BackendType(a.config.Video.Backend)
	if headless {
		backendType = graphics.BackendHeadless
	}

	backend, err := graphics.CreateBackend(backendType)
	if err != nil {
		return &ApplicationError{"graphics", "create backend", err}
	}
	a.backend = backend

	if err := a.backend.Initialize(graphics.Config{
		Headless:   headless,
		Fullscreen: a.config.Window.Fullscreen,
		VSync:      a.config.Video.VSync,
		Filter:     a.config.Video.Filter,
	}); err != nil {
		return &ApplicationError{"graphics", "initialize", err}
	}

	width, height := a.config.WindowResolution()
	window, err := a.backend.CreateWindow(fmt.Sprintf("gones — %s", a.romPath), width, height)
	if err != nil {
		return &ApplicationError{"graphics", "create window", err}
	}
	a.window = window

	return nil
}

// Run drives the emulator until the window closes: each iteration steps
// one frame, presents it, and applies any button/quit events the window
// collected since the previous iteration.
func (a *Application) Run() error {
	if ew, ok := a.window.(interface{ SetEmulatorUpdateFunc(func() error) }); ok {
		ew.SetEmulatorUpdateFunc(a.runFrame)
		if runner, ok := a.window.(interface{ Run() error }); ok {
			a.running = true
			return runner.Run()
		}
	}

	// Backends with no native event loop (headless, terminal) are driven
	// directly here instead.
	a.running = true
	for a.running && !a.window.ShouldClose() {
		if err := a.runFrame(); err != nil {
			return err
		}
	}
	return nil
}

// runFrame advances the system by one frame, unless paused, and
// presents the result.
func (a *Application) runFrame() error {
	a.applyEvents()
	if !a.running {
		return nil
	}
	if a.paused {
		return nil
	}

	frame := a.system.StepFrame()
	a.frameCount++
	if a.config.Debug.ShowFPS && a.frameCount%60 == 0 {
		log.Printf("gones: frame %d, %.1f fps average", a.frameCount, a.AverageFPS())
	}

	buffer := [256 * 240]uint32(frame)
	processed := a.video.ProcessFrame(buffer[:])
	var out [256 * 240]uint32
	copy(out[:], processed)

	if err := a.window.RenderFrame(out); err != nil {
		return &ApplicationError{"graphics", "render frame", err}
	}
	a.window.SwapBuffers()
	return nil
}

// applyEvents drains pending window events and folds them into
// controller state or application control flags.
func (a *Application) applyEvents() {
	for _, event := range a.window.PollEvents() {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			a.running = false
		case graphics.InputEventTypeButton:
			if b, ok := toNESButton(event.Button); ok {
				a.system.SetButton(1, b, event.Pressed)
			}
		}
	}
}

// toNESButton maps a graphics.Button (the windowing layer's own key
// vocabulary) onto the controller latch's Button bits.
func toNESButton(b graphics.Button) (input.Button, bool) {
	switch b {
	case graphics.ButtonA:
		return input.ButtonA, true
	case graphics.ButtonB:
		return input.ButtonB, true
	case graphics.ButtonSelect:
		return input.ButtonSelect, true
	case graphics.ButtonStart:
		return input.ButtonStart, true
	case graphics.ButtonUp:
		return input.ButtonUp, true
	case graphics.ButtonDown:
		return input.ButtonDown, true
	case graphics.ButtonLeft:
		return input.ButtonLeft, true
	case graphics.ButtonRight:
		return input.ButtonRight, true
	default:
		return 0, false
	}
}

// Pause sets whether the run loop stops stepping the system.
func (a *Application) Pause(paused bool) {
	a.paused = paused
}

// Reset returns the system's CPU, PPU, APU, and controllers to their
// power-up state without reloading the cartridge; work RAM and SRAM keep
// their contents.
func (a *Application) Reset() {
	a.system.Reset()
}

// FrameCount returns the number of frames rendered since startup.
func (a *Application) FrameCount() uint64 {
	return a.frameCount
}

// AverageFPS returns the mean frame rate achieved since startup.
func (a *Application) AverageFPS() float64 {
	elapsed := time.Since(a.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(a.frameCount) / elapsed
}

// Cleanup releases the graphics backend's resources.
func (a *Application) Cleanup() error {
	a.running = false
	if a.window != nil {
		if err := a.window.Cleanup(); err != nil {
			return err
		}
	}
	if a.backend != nil {
		return a.backend.Cleanup()
	}
	return nil
}
