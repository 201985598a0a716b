package core

const (
	OneKilobyte = 1024
	OneMegabyte = 1024 * OneKilobyte // 1024 (1KB) * 1024 => 1MB
	OneGigabyte = 1024 * OneMegabyte

	DefaultMemoryBudget = 64 * OneMegabyte
	MinimumMemoryBudget = 1

	WorkDirName   = "extsort" // Default work directory under os.TempDir()
	RunFileName   = "runs.tmp"
	RunFilePerm   = 0644
	WorkDirPerm   = 0755
	CursorBufSize = 4 * OneKilobyte // read buffer per open RunCursor
	SinkBufSize   = 64 * OneKilobyte

	// DefaultGenMultiplier is the input volume, in records per budget byte,
	// produced by the data generator.
	DefaultGenMultiplier = 10
	DefaultGenMaxValue   = 100
)
