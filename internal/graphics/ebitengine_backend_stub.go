//go:build headless
// +build headless

package graphics

import "errors"

// errHeadlessBuild is returned by every EbitengineBackend/EbitengineWindow
// method in a `-tags headless` build, where the real Ebitengine backend in
// ebitengine_backend.go is compiled out entirely (it pulls in a GUI/GL
// dependency this build tag exists to avoid). Callers should select
// BackendHeadless or BackendTerminal instead; CreateBackend returns this
// stub for BackendEbitengine (the config default) and for any unrecognised
// backend name.
var errHeadlessBuild = errors.New("gones: built with -tags headless; pass -nogui or select a non-Ebitengine backend")

// EbitengineBackend is a placeholder satisfying the Backend interface in
// headless builds, where the real implementation doesn't exist to link
// against.
type EbitengineBackend struct{}

// EbitengineWindow is a placeholder satisfying the Window interface in
// headless builds.
type EbitengineWindow struct{}

// NewEbitengineBackend returns the headless stand-in backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(config Config) error {
	return errHeadlessBuild
}

func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	return nil, errHeadlessBuild
}

func (b *EbitengineBackend) Cleanup() error {
	return nil
}

func (b *EbitengineBackend) IsHeadless() bool {
	return true
}

func (b *EbitengineBackend) GetName() string {
	return "Ebitengine-Stub"
}

func (w *EbitengineWindow) SetTitle(title string)         {}
func (w *EbitengineWindow) GetSize() (width, height int)  { return 0, 0 }
func (w *EbitengineWindow) ShouldClose() bool             { return true }
func (w *EbitengineWindow) SwapBuffers()                  {}
func (w *EbitengineWindow) PollEvents() []InputEvent      { return nil }
func (w *EbitengineWindow) Cleanup() error                { return nil }
func (w *EbitengineWindow) Run() error                    { return errHeadlessBuild }

func (w *EbitengineWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	return errHeadlessBuild
}

func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {}
