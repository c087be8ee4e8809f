package pump

import "fmt"

// Field identifies one readable/writable device setting. Values are
// symbolic; drivers map them onto whatever registers or commands the wire
// protocol uses.
type Field uint16

const (
	FieldRun Field = iota + 1
	FieldTargetRPM
	FieldRamp
	FieldCelsius
	FieldFahrenheit
	FieldContrast
	FieldAddress
	FieldID
	FieldAMPM
	FieldMaxRPM
	FieldMinRPM
	FieldQuickRPM
	FieldQuickTimerHours
	FieldQuickTimerMinutes
	FieldPrimeEnable
	FieldPrimeMaxTime
	FieldPrimeSensitivity
	FieldPrimeDelay
	FieldAntifreezeEnable
	FieldAntifreezeRPM
	FieldAntifreezeTemp
	FieldSVRSRestartEnable
	FieldSVRSRestartTimer
	FieldTimeOutTimerHours
	FieldTimeOutTimerMinutes
	FieldRunningProgram
	FieldSelectedProgram
)

// ProgramSetting is one register within a schedule slot.
type ProgramSetting uint16

const (
	ProgramRPM ProgramSetting = iota
	ProgramMode
	ProgramScheduleStartHour
	ProgramScheduleStartMinute
	ProgramScheduleEndHour
	ProgramScheduleEndMinute
	ProgramEggTimerHours
	ProgramEggTimerMinutes
)

// ProgramSlots is the number of schedule slots the device carries.
const ProgramSlots = 8

const (
	programFieldBase   Field = 0x0100
	programFieldStride Field = 0x0010
)

// ProgramField returns the Field addressing one setting of slot 1..8.
func ProgramField(slot int, s ProgramSetting) Field {
	return programFieldBase + Field(slot-1)*programFieldStride + Field(s)
}

// ValidSlot reports whether slot addresses one of the device's 8 programs.
func ValidSlot(slot int) bool {
	return slot >= 1 && slot <= ProgramSlots
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	if f >= programFieldBase {
		slot := int((f-programFieldBase)/programFieldStride) + 1
		return fmt.Sprintf("program_%d[%d]", slot, uint16((f-programFieldBase)%programFieldStride))
	}
	return fmt.Sprintf("field(0x%04X)", uint16(f))
}

var fieldNames = map[Field]string{
	FieldRun:                 "run",
	FieldTargetRPM:           "speed",
	FieldRamp:                "ramp",
	FieldCelsius:             "celsius",
	FieldFahrenheit:          "fahrenheit",
	FieldContrast:            "contrast",
	FieldAddress:             "address",
	FieldID:                  "id",
	FieldAMPM:                "ampm",
	FieldMaxRPM:              "max_rpm",
	FieldMinRPM:              "min_rpm",
	FieldQuickRPM:            "quick_rpm",
	FieldQuickTimerHours:     "quick_timer_hours",
	FieldQuickTimerMinutes:   "quick_timer_minutes",
	FieldPrimeEnable:         "prime_enable",
	FieldPrimeMaxTime:        "prime_max_time",
	FieldPrimeSensitivity:    "prime_sensitivity",
	FieldPrimeDelay:          "prime_delay",
	FieldAntifreezeEnable:    "antifreeze_enable",
	FieldAntifreezeRPM:       "antifreeze_rpm",
	FieldAntifreezeTemp:      "antifreeze_temp",
	FieldSVRSRestartEnable:   "svrs_restart_enable",
	FieldSVRSRestartTimer:    "svrs_restart_timer",
	FieldTimeOutTimerHours:   "time_out_timer_hours",
	FieldTimeOutTimerMinutes: "time_out_timer_minutes",
	FieldRunningProgram:      "running_program",
	FieldSelectedProgram:     "selected_program",
}
