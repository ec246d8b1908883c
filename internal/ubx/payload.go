package ubx

import "encoding/binary"

// DynModel is a u-blox dynamic platform model code. The navigation filter
// is tuned for the expected vehicle dynamics.
type DynModel byte

const (
	ModelPortable   DynModel = 0
	ModelStationary DynModel = 1
	ModelPedestrian DynModel = 2
	ModelAutomotive DynModel = 3
	ModelSea        DynModel = 4
	ModelAirborne4G DynModel = 5
	ModelAirborne1G DynModel = 6
	ModelAirborne2G DynModel = 7
	ModelWrist      DynModel = 8
	ModelBike       DynModel = 9
)

var dynModelNames = map[DynModel]string{
	ModelPortable:   "Portable",
	ModelStationary: "Stationary",
	ModelPedestrian: "Pedestrian",
	ModelAutomotive: "Automotive",
	ModelSea:        "Sea",
	ModelAirborne4G: "Airborne <4g",
	ModelAirborne1G: "Airborne <1g",
	ModelAirborne2G: "Airborne <2g",
	ModelWrist:      "Wrist",
	ModelBike:       "Bike",
}

// String returns the u-blox name for the model, or "Unknown" for codes
// outside the documented table. Unknown codes are still valid wire values.
func (m DynModel) String() string {
	if name, ok := dynModelNames[m]; ok {
		return name
	}
	return "Unknown"
}

// CFG-NAV5 apply-mask bits. Only the dynModel bit is used here.
const nav5MaskDynModel uint16 = 0x0001

// nav5FixModeAuto selects automatic 2D/3D fix mode.
const nav5FixModeAuto byte = 2

// nav5PayloadLen is the fixed CFG-NAV5 structure size.
const nav5PayloadLen = 36

// NAV5Payload builds the 36-byte CFG-NAV5 set payload that changes only
// the dynamic platform model. The mask selects dynModel alone, fix mode is
// auto 2D/3D, and the remaining tuning fields (altitude, DOP and accuracy
// masks, static hold) are zero.
func NAV5Payload(model DynModel) []byte {
	p := make([]byte, nav5PayloadLen)
	binary.LittleEndian.PutUint16(p[0:2], nav5MaskDynModel)
	p[2] = byte(model)
	p[3] = nav5FixModeAuto
	return p
}

// CFG-RST navigation-data retention masks (navBbrMask).
const (
	BBRHotStart  uint16 = 0x0000
	BBRWarmStart uint16 = 0x0001
	BBRColdStart uint16 = 0xFFFF
)

// CFG-RST reset types.
const (
	ResetHardware          byte = 0x00
	ResetSoftware          byte = 0x01
	ResetHardwareImmediate byte = 0x08
)

// RSTPayload builds the 4-byte CFG-RST payload: retention mask, reset
// type, one reserved byte.
func RSTPayload(resetType byte, bbrMask uint16) []byte {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint16(p[0:2], bbrMask)
	p[2] = resetType
	return p
}
