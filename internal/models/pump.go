package models

// PumpStatus is the live snapshot returned by GET /status. Nothing here is
// cached; every request round-trips to the device.
type PumpStatus struct {
	State bool   `json:"state"`
	Speed int    `json:"speed"`
	Watts int    `json:"watts"`
	Mode  string `json:"mode"`
	Time  [2]int `json:"time"` // [hour, minute]
}

// Datetime is the device-resident clock as exposed in GET /config.
type Datetime struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	DOW    string `json:"dow"` // e.g. "SUNDAY"
	DOM    int    `json:"dom"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	DST    bool   `json:"dst"`
}

// ProgramInfo summarizes one schedule slot.
type ProgramInfo struct {
	ProgramID     int    `json:"program_id"`
	RPM           int    `json:"rpm"`
	Mode          string `json:"mode"` // MANUAL | EGG_TIMER | SCHEDULE | DISABLED
	ScheduleStart [2]int `json:"schedule_start"`
	ScheduleEnd   [2]int `json:"schedule_end"`
	EggTimer      [2]int `json:"egg_timer"`
}

// PumpConfig is the full configuration object returned by GET /config.
type PumpConfig struct {
	Ramp              int           `json:"ramp"`
	Celsius           bool          `json:"celsius"`
	Fahrenheit        bool          `json:"fahrenheit"`
	Contrast          int           `json:"contrast"`
	Address           int           `json:"address"`
	ID                int           `json:"id"`
	AMPM              bool          `json:"ampm"`
	MaxRPM            int           `json:"max_rpm"`
	MinRPM            int           `json:"min_rpm"`
	QuickRPM          int           `json:"quick_rpm"`
	QuickTimer        [2]int        `json:"quick_timer"`
	PrimeEnable       bool          `json:"prime_enable"`
	PrimeMaxTime      int           `json:"prime_max_time"`
	PrimeSensitivity  int           `json:"prime_sensitivity"`
	PrimeDelay        int           `json:"prime_delay"`
	AntifreezeEnable  bool          `json:"antifreeze_enable"`
	AntifreezeRPM     int           `json:"antifreeze_rpm"`
	AntifreezeTemp    int           `json:"antifreeze_temp"`
	SVRSRestartEnable bool          `json:"svrs_restart_enable"`
	SVRSRestartTimer  int           `json:"svrs_restart_timer"`
	TimeOutTimer      [2]int        `json:"time_out_timer"`
	RunningProgram    int           `json:"running_program"`
	Datetime          Datetime      `json:"datetime"`
	Programs          []ProgramInfo `json:"programs"`
}
