package event

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}
