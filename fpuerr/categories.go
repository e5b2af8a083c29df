package fpuerr

// list of error numbers
const (
	// x87/stack
	StackOverflow Errno = iota
	StackUnderflow
	InvalidRegisterIndex

	// conversion matrix (x87/fp80)
	InvalidByteSliceLength

	// cmd/x87sweep, internal/oracle
	OracleUnavailable
	ScenarioFileCannotOpen
	ScenarioFileMalformed
)
