package input

import "testing"

func TestNewControllerIsIdle(t *testing.T) {
	c := New()
	if c.buttons != 0 || c.strobe || c.shift != 0 {
		t.Fatalf("expected zero-value controller, got %+v", c)
	}
}

func TestSetButtonTracksOnlyThatBit(t *testing.T) {
	c := New()
	c.SetButton(ButtonStart, true)
	if c.buttons != uint8(ButtonStart) {
		t.Errorf("buttons = %#02x, want %#02x", c.buttons, uint8(ButtonStart))
	}
	c.SetButton(ButtonStart, false)
	if c.buttons != 0 {
		t.Errorf("buttons = %#02x, want 0 after release", c.buttons)
	}
}

func TestStrobeHighReturnsLiveAButton(t *testing.T) {
	c := New()
	c.Strobe(true)
	for i := 0; i < 8; i++ {
		if got := c.Read(); got&1 != 0 {
			t.Fatalf("read %d = %#02x, want A bit clear", i, got)
		}
	}
	c.SetButton(ButtonA, true)
	if got := c.Read(); got&1 != 1 {
		t.Errorf("read after pressing A = %#02x, want bit0 set", got)
	}
}

func TestEightReadsThenTerminator(t *testing.T) {
	// Canonical order: A,B,Select,Start,Up,Down,Left,Right = 1,0,0,1,0,0,0,1
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonStart, true)
	c.SetButton(ButtonRight, true)
	c.Strobe(true)
	c.Strobe(false)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		got := c.Read() & 1
		if got != w {
			t.Errorf("read %d = %d, want %d", i, got, w)
		}
	}
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != terminator {
			t.Errorf("post-sequence read = %#02x, want terminator %#02x", got, terminator)
		}
	}
}

func TestOpenBusBitAlwaysSet(t *testing.T) {
	c := New()
	if c.Read()&openBusBit == 0 {
		t.Error("expected open-bus bit set on read")
	}
}

func TestInputRoutesByAddress(t *testing.T) {
	in := NewInput()
	in.SetButton(1, ButtonA, true)
	in.SetButton(2, ButtonB, true)
	in.Write(0x4016, 1)
	in.Write(0x4016, 0)

	if got := in.Read(0x4016) & 1; got != 1 {
		t.Errorf("controller 1 first read = %d, want 1 (A pressed)", got)
	}
	if got := in.Read(0x4017) & 1; got != 0 {
		t.Errorf("controller 2 first read = %d, want 0 (A not pressed)", got)
	}
}
