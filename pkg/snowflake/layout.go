package snowflake

// Bit widths of the ID parts, high to low. One sign bit is left unused so
// every ID is a positive int64.
const (
	TimestampBits    = 37
	DatacenterIDBits = 5
	MachineIDBits    = 10
	SequenceBits     = 12
)

// Shifts for composing an ID.
const (
	machineIDShift    = SequenceBits
	datacenterIDShift = SequenceBits + MachineIDBits
	timestampShift    = SequenceBits + MachineIDBits + DatacenterIDBits
)

// Inclusive upper bounds for each part.
const (
	MaxMachineID      = int64(-1) ^ (int64(-1) << MachineIDBits)    // 1023
	MaxDatacenterID   = int64(-1) ^ (int64(-1) << DatacenterIDBits) // 31
	MaxSequence       = int64(-1) ^ (int64(-1) << SequenceBits)     // 4095
	MaxTimestampDelta = int64(-1) ^ (int64(-1) << TimestampBits)
)

const (
	timestampMask    = uint64(MaxTimestampDelta)
	datacenterIDMask = uint64(MaxDatacenterID)
	machineIDMask    = uint64(MaxMachineID)
	sequenceMask     = uint64(MaxSequence)
)

// Encode packs the four parts into one ID. It performs no range checks;
// callers must have validated the inputs already.
func Encode(timestampDelta, datacenterID, machineID, sequence int64) int64 {
	return int64(
		(uint64(timestampDelta)&timestampMask)<<timestampShift |
			(uint64(datacenterID)&datacenterIDMask)<<datacenterIDShift |
			(uint64(machineID)&machineIDMask)<<machineIDShift |
			uint64(sequence)&sequenceMask,
	)
}

// DecodeTimestampDelta extracts the milliseconds-since-epoch delta. Add the
// generator's epoch to obtain an absolute wall-clock timestamp; see
// Generator.Timestamp.
func DecodeTimestampDelta(id int64) int64 {
	return int64(uint64(id) >> timestampShift & timestampMask)
}

// DecodeDatacenterID extracts the datacenter id.
func DecodeDatacenterID(id int64) int64 {
	return int64(uint64(id) >> datacenterIDShift & datacenterIDMask)
}

// DecodeMachineID extracts the machine id.
func DecodeMachineID(id int64) int64 {
	return int64(uint64(id) >> machineIDShift & machineIDMask)
}

// DecodeSequence extracts the per-millisecond sequence.
func DecodeSequence(id int64) int64 {
	return int64(uint64(id) & sequenceMask)
}
