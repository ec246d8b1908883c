package ubx

import (
	"bytes"
	"testing"
)

func TestDynModel_Names(t *testing.T) {
	cases := []struct {
		model DynModel
		want  string
	}{
		{ModelPortable, "Portable"},
		{ModelStationary, "Stationary"},
		{ModelPedestrian, "Pedestrian"},
		{ModelAutomotive, "Automotive"},
		{ModelSea, "Sea"},
		{ModelAirborne4G, "Airborne <4g"},
		{ModelAirborne1G, "Airborne <1g"},
		{ModelAirborne2G, "Airborne <2g"},
		{ModelWrist, "Wrist"},
		{ModelBike, "Bike"},
		{DynModel(10), "Unknown"},
		{DynModel(99), "Unknown"},
		{DynModel(255), "Unknown"},
	}
	for _, c := range cases {
		if got := c.model.String(); got != c.want {
			t.Fatalf("model %d: got %q, want %q", c.model, got, c.want)
		}
	}
}

func TestNAV5Payload_Layout(t *testing.T) {
	p := NAV5Payload(ModelAirborne1G)
	if len(p) != 36 {
		t.Fatalf("payload length %d, want 36", len(p))
	}
	if p[0] != 0x01 || p[1] != 0x00 {
		t.Fatalf("mask bytes % X, want 01 00", p[:2])
	}
	if p[2] != 0x06 {
		t.Fatalf("model byte %02X, want 06", p[2])
	}
	if p[3] != 0x02 {
		t.Fatalf("fixMode byte %02X, want 02", p[3])
	}
	if !bytes.Equal(p[4:], make([]byte, 32)) {
		t.Fatalf("reserved tail not zeroed: % X", p[4:])
	}
}

func TestRSTPayload_Layout(t *testing.T) {
	cases := []struct {
		resetType byte
		mask      uint16
		want      []byte
	}{
		{ResetHardware, BBRColdStart, []byte{0xFF, 0xFF, 0x00, 0x00}},
		{ResetSoftware, BBRHotStart, []byte{0x00, 0x00, 0x01, 0x00}},
		{ResetHardwareImmediate, BBRWarmStart, []byte{0x01, 0x00, 0x08, 0x00}},
	}
	for _, c := range cases {
		got := RSTPayload(c.resetType, c.mask)
		if !bytes.Equal(got, c.want) {
			t.Fatalf("RSTPayload(%02X, %04X) = % X, want % X", c.resetType, c.mask, got, c.want)
		}
	}
}
