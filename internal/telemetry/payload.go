package telemetry

// On-wire device section names used by the onboard agent.
const (
	DeviceSpeed      = "BYDAutoSpeedDevice"
	DeviceStatistic  = "BYDAutoStatisticDevice"
	DeviceGearbox    = "BYDAutoGearboxDevice"
	DeviceInstrument = "BYDAutoInstrumentDevice"
	DeviceAC         = "BYDAutoAcDevice"
	DeviceCharging   = "BYDAutoChargingDevice"
	DevicePM25       = "BYDAutoPM2p5Device"
)

// DeviceData is one raw device section. Values are whatever the JSON decoder
// produced: numbers, nested objects or arrays.
type DeviceData map[string]any

// Payload is a raw telemetry submission from the agent.
type Payload struct {
	Timestamp int64                 `json:"timestamp"`
	ProcessID *int64                `json:"processId,omitempty"`
	Devices   map[string]DeviceData `json:"devices"`
	Location  *Location             `json:"location,omitempty"`
}

// Location carries the GPS fix reported alongside the device sections.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}
