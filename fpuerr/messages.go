package fpuerr

var messages = map[Errno]string{
	// x87/stack
	StackOverflow:        "stack overflow: ST(%d) is already occupied",
	StackUnderflow:       "stack underflow: ST(%d) is empty",
	InvalidRegisterIndex: "invalid register index ST(%d)",

	// conversion matrix (x87/fp80)
	InvalidByteSliceLength: "expected a %d byte slice, got %d",

	// cmd/x87sweep, internal/oracle
	OracleUnavailable:      "reference oracle unavailable (%s)",
	ScenarioFileCannotOpen: "cannot open scenario file (%s)",
	ScenarioFileMalformed:  "malformed scenario file (%s): %s",
}
