package graphics

import "testing"

func TestCreateBackendHeadless(t *testing.T) {
	b, err := CreateBackend(BackendHeadless)
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if !b.IsHeadless() {
		t.Error("headless backend should report IsHeadless() == true")
	}
	if got := b.GetName(); got != "Headless" {
		t.Errorf("GetName() = %q, want Headless", got)
	}
}

func TestHeadlessBackendRequiresInitializeBeforeWindow(t *testing.T) {
	b := NewHeadlessBackend()
	if _, err := b.CreateWindow("test", 256, 240); err == nil {
		t.Fatal("expected error creating a window before Initialize")
	}

	if err := b.Initialize(Config{Headless: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, err := b.CreateWindow("test", 256, 240); err != nil {
		t.Errorf("CreateWindow after Initialize: %v", err)
	}
}

func TestHeadlessWindowRenderFrameWithDumpingDisabled(t *testing.T) {
	b := NewHeadlessBackend()
	if err := b.Initialize(Config{Headless: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	win, err := b.CreateWindow("test", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	hw := win.(*HeadlessWindow)
	hw.SetOutputPath("")
	hw.SetDumpEvery(0)

	var frame [256 * 240]uint32
	if err := win.RenderFrame(frame); err != nil {
		t.Errorf("RenderFrame with dumping disabled should not error: %v", err)
	}
	if win.ShouldClose() {
		t.Error("freshly created window should not be closed")
	}
}

func TestTerminalBackendLifecycle(t *testing.T) {
	b := NewTerminalBackend()
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	win, err := b.CreateWindow("test", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if w, h := win.GetSize(); w != 256 || h != 240 {
		t.Errorf("GetSize() = (%d,%d), want (256,240)", w, h)
	}
	if err := win.Cleanup(); err != nil {
		t.Errorf("Cleanup: %v", err)
	}
	if !win.ShouldClose() {
		t.Error("window should report ShouldClose() == true after Cleanup")
	}
}

func TestVideoProcessorNoOpAtDefaults(t *testing.T) {
	vp := NewVideoProcessor(1.0, 1.0, 1.0)
	frame := []uint32{0x112233, 0x445566}
	out := vp.ProcessFrame(frame)
	for i := range frame {
		if out[i] != frame[i] {
			t.Errorf("ProcessFrame at defaults changed pixel %d: %#06x -> %#06x", i, frame[i], out[i])
		}
	}
}

func TestVideoProcessorBrightnessBelowOneDarkens(t *testing.T) {
	vp := NewVideoProcessor(0.5, 1.0, 1.0)
	frame := []uint32{0x808080}
	out := vp.ProcessFrame(frame)
	r := (out[0] >> 16) & 0xFF
	if r == 0x80 || r > 0x80 {
		t.Errorf("expected brightness 0.5 to darken 0x80 component, got %#02x", r)
	}
}

func TestVideoProcessorEmphasisAttenuatesOtherChannels(t *testing.T) {
	vp := NewVideoProcessor(1.0, 1.0, 1.0)
	vp.SetEmphasis(true, false, false)

	frame := []uint32{0x808080}
	out := vp.ProcessFrame(frame)
	r := (out[0] >> 16) & 0xFF
	g := (out[0] >> 8) & 0xFF
	b := out[0] & 0xFF

	if r != 0x80 {
		t.Errorf("emphasized red channel should pass through unchanged, got %#02x", r)
	}
	if g >= 0x80 || b >= 0x80 {
		t.Errorf("non-emphasized channels should be attenuated, got g=%#02x b=%#02x", g, b)
	}
}

func TestVideoProcessorNoEmphasisIsNoOpAtDefaults(t *testing.T) {
	vp := NewVideoProcessor(1.0, 1.0, 1.0)
	vp.SetEmphasis(false, false, false)

	frame := []uint32{0x112233}
	out := vp.ProcessFrame(frame)
	if out[0] != frame[0] {
		t.Errorf("no emphasis at default brightness/contrast/saturation should be a no-op, got %#06x", out[0])
	}
}
