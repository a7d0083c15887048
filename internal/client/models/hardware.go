package models

// DefaultLocation is the location new operators and the device start at.
const DefaultLocation = "LOK-001"

// Bin names a compartment of the sorting bin.
type Bin string

const (
	BinPlastik Bin = "plastik"
	BinKertas  Bin = "kertas"
	BinKaleng  Bin = "kaleng"
)

var AllBins = []Bin{BinPlastik, BinKertas, BinKaleng}

// Ultrasonic holds the distance calibration of one compartment sensor, in
// centimetres. Empty is the reading for an empty bin, Full for a full one.
type Ultrasonic struct {
	Empty int `json:"empty"`
	Full  int `json:"full"`
}

// HardwareConfig is the device configuration (slot swms_hw).
type HardwareConfig struct {
	Location   string             `json:"location"`
	Servo1     int                `json:"servo1"`
	Servo2     int                `json:"servo2"`
	LCDLine1   string             `json:"lcdLine1"`
	LCDLine2   string             `json:"lcdLine2"`
	Ultrasonic map[Bin]Ultrasonic `json:"ultrasonic"`
}

// HardwareLog is one entry of the device console (slot swms_hw_logs).
type HardwareLog struct {
	ID  string    `json:"id"`
	At  Timestamp `json:"at"`
	Msg string    `json:"msg"`
}

// LogType classifies activity log entries.
type LogType string

const (
	LogEvent  LogType = "event"
	LogStatus LogType = "status"
	LogInfo   LogType = "info"
)

// ActivityLog is one entry of the field activity feed (slot swms_logs).
type ActivityLog struct {
	ID       string    `json:"id"`
	At       Timestamp `json:"at"`
	Location string    `json:"location"`
	Type     LogType   `json:"type"`
	Message  string    `json:"message"`
}

// MaxLogEntries bounds both log slots.
const MaxLogEntries = 200

// Record is the generic shape of entries in slots whose views are not part
// of this client. They are stored and exported verbatim.
type Record = map[string]any
