package statuses

// Status is owned by the storage layer and driven by engine results.
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusStale    Status = "stale"
	StatusFinished Status = "finished"
)

type Result string

const (
	ResultBlackWin Result = "blackWin"
	ResultWhiteWin Result = "whiteWin"
	ResultDraw     Result = "draw"
)
