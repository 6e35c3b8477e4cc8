package hal

import "testing"

func TestToneDuty(t *testing.T) {
	if got := ToneDuty(8, true); got != 0x7F {
		t.Fatalf("ToneDuty(8, true) = %#x, want 0x7f", got)
	}
	if got := ToneDuty(8, false); got != 0 {
		t.Fatalf("ToneDuty(8, false) = %#x, want 0", got)
	}
	if got := MaxDuty(8); got != 0xFF {
		t.Fatalf("MaxDuty(8) = %#x, want 0xff", got)
	}
	if got := MaxDuty(0); got != 0 {
		t.Fatalf("MaxDuty(0) = %d, want 0", got)
	}
}

func TestValidateTimer(t *testing.T) {
	good := PWMTimerConfig{Timer: 3, FreqHz: 440, Resolution: 8, Mode: PWMHighSpeed}
	if err := validateTimer(good); err != nil {
		t.Fatalf("validateTimer: %v", err)
	}

	bad := good
	bad.FreqHz = 0
	if err := validateTimer(bad); err == nil {
		t.Fatal("expected zero frequency to be rejected")
	}
	bad = good
	bad.Resolution = 0
	if err := validateTimer(bad); err == nil {
		t.Fatal("expected zero resolution to be rejected")
	}
	bad = good
	bad.Mode = 7
	if err := validateTimer(bad); err == nil {
		t.Fatal("expected unknown speed mode to be rejected")
	}
}
