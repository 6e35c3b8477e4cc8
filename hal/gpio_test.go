package hal

import (
	"strings"
	"testing"
)

func TestConfigurePinsAppliesToEveryPin(t *testing.T) {
	a := newVirtualPin("A", GPIOCapInput|GPIOCapPullUp)
	b := newVirtualPin("B", GPIOCapInput|GPIOCapPullUp)
	c := newVirtualPin("C", GPIOCapInput|GPIOCapPullUp)

	if err := ConfigurePins(ButtonConfig, a, b, c); err != nil {
		t.Fatalf("ConfigurePins: %v", err)
	}
	for _, p := range []*virtualPin{a, b, c} {
		if !p.configured || p.cfg != ButtonConfig {
			t.Fatalf("pin %s: got cfg %+v configured=%v, want %+v", p.name, p.cfg, p.configured, ButtonConfig)
		}
	}
}

func TestConfigurePinsReportsEveryFailure(t *testing.T) {
	ok := newVirtualPin("OK", GPIOCapInput|GPIOCapPullUp)
	noPull := newVirtualPin("NOPULL", GPIOCapInput)
	outOnly := newVirtualPin("OUT", GPIOCapOutput)

	err := ConfigurePins(ButtonConfig, noPull, ok, outOnly, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"NOPULL: pull-up unsupported", "OUT: input unsupported", "pin #3: missing"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %q", msg, want)
		}
	}
	if !ok.configured {
		t.Fatal("expected the valid pin to be configured despite other failures")
	}
}

func TestCheckConfigIRQ(t *testing.T) {
	cfg := PinConfig{Mode: GPIOModeInput, IRQ: GPIOIRQFalling}
	if err := checkConfig("P", GPIOCapInput, cfg); err == nil {
		t.Fatal("expected interrupts to be rejected without GPIOCapIRQ")
	}
	if err := checkConfig("P", GPIOCapInput|GPIOCapIRQ, cfg); err != nil {
		t.Fatalf("checkConfig: %v", err)
	}
	if err := checkConfig("P", GPIOCapInput, PinConfig{Mode: GPIOModeInput, IRQ: 9}); err == nil {
		t.Fatal("expected invalid irq policy to be rejected")
	}
}

func TestVirtualPinButtonLevels(t *testing.T) {
	p := newVirtualPin("BTN", GPIOCapInput|GPIOCapPullUp)
	if _, err := p.Read(); err == nil {
		t.Fatal("expected read before configure to fail")
	}
	if err := p.Configure(ButtonConfig); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	level, err := p.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected released button to read high through the pull-up")
	}

	p.setPressed(true)
	if level, _ = p.Read(); level {
		t.Fatal("expected pressed button to read low")
	}

	p.setPressed(false)
	if level, _ = p.Read(); !level {
		t.Fatal("expected released button to read high again")
	}
}

func TestVirtualPinWriteRequiresOutput(t *testing.T) {
	p := newVirtualPin("SPK", GPIOCapOutput|GPIOCapInput)
	if err := p.Configure(ButtonConfig); err == nil {
		t.Fatal("expected pull-up to be rejected")
	}
	if err := p.Configure(SpeakerPinConfig); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := p.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if level, _ := p.Read(); !level {
		t.Fatal("expected output to read back its written level")
	}
}
