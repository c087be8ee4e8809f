package pump

// Forward enumeration tables match the device's panel vocabulary. The
// reverse maps used on every status read are built once at process start
// instead of being re-derived per request.

// PumpModes maps operating-mode labels to the code reported in the status
// frame. Code 0 means the motor is idle; any other code indicates a running
// mode.
var PumpModes = map[string]byte{
	"STOPPED":     0x00,
	"MANUAL":      0x01,
	"SPEED_1":     0x02,
	"SPEED_2":     0x03,
	"SPEED_3":     0x04,
	"SPEED_4":     0x05,
	"FEATURE_1":   0x06,
	"QUICK_CLEAN": 0x07,
	"TIME_OUT":    0x08,
}

// ProgramModes maps schedule-slot mode labels to their register value.
var ProgramModes = map[string]byte{
	"MANUAL":    0,
	"EGG_TIMER": 1,
	"SCHEDULE":  2,
	"DISABLED":  3,
}

// Weekdays maps day labels to the device clock's weekday code.
var Weekdays = map[string]byte{
	"SUNDAY":    1,
	"MONDAY":    2,
	"TUESDAY":   3,
	"WEDNESDAY": 4,
	"THURSDAY":  5,
	"FRIDAY":    6,
	"SATURDAY":  7,
}

var (
	pumpModeLabels    map[byte]string
	programModeLabels map[byte]string
	weekdayLabels     map[byte]string
)

func init() {
	pumpModeLabels = reverse(PumpModes)
	programModeLabels = reverse(ProgramModes)
	weekdayLabels = reverse(Weekdays)
}

func reverse(m map[string]byte) map[byte]string {
	out := make(map[byte]string, len(m))
	for label, code := range m {
		out[code] = label
	}
	return out
}

// ModeLabel translates an operating-mode code into its label, or "UNKNOWN".
func ModeLabel(code byte) string {
	if label, ok := pumpModeLabels[code]; ok {
		return label
	}
	return "UNKNOWN"
}

// ModeRunning reports whether an operating-mode code indicates the pump is
// running. Schedule slots may only be edited while this is false.
func ModeRunning(code byte) bool {
	return code != 0
}

// ProgramModeLabel translates a slot mode register into its label.
func ProgramModeLabel(code byte) string {
	if label, ok := programModeLabels[code]; ok {
		return label
	}
	return "UNKNOWN"
}

// ProgramModeCode resolves a slot mode label to its register value.
func ProgramModeCode(label string) (byte, bool) {
	code, ok := ProgramModes[label]
	return code, ok
}

// WeekdayLabel translates a clock weekday code into its label. The device
// reports Sunday for anything out of range, and so do we.
func WeekdayLabel(code byte) string {
	if label, ok := weekdayLabels[code]; ok {
		return label
	}
	return "SUNDAY"
}
