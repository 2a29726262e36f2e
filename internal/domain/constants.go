package domain

// Meet program exchange constants
const (
	ProtocolVersion     = "1.2.3"
	TimingSystemType    = "Swim Meet Timer"
	TimingSystemVersion = "1.0.0"
	TimersPerLaneCount  = 1
)

// Files exchanged with the meet program, relative to a meet directory
const (
	HeartbeatFilename      = "timing_system_configuration.json"
	MeetDetailsFilename    = "meet_details.json"
	SessionSummaryFilename = "session_summary.csv"
)

// DefaultSessionNumber is used when a submission does not name a session
const DefaultSessionNumber = 1
