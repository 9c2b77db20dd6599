package domain

// SyncState is the advertised synchronization state.
type SyncState string

const (
	SyncStateSynced  SyncState = "synced"
	SyncStatePending SyncState = "pending"
	SyncStateSyncing SyncState = "syncing"
)

// SyncStatus is derived from the mutation queue, never stored.
// @Description Synchronization state of the local mutation queue.
type SyncStatus struct {
	State   SyncState `json:"state" example:"pending" enums:"synced,pending,syncing"`
	Pending int       `json:"pending" example:"2"`
	Online  bool      `json:"online" example:"true"`
}

// ConnectivityRequest reports a connectivity transition observed by the host.
// @Description Host-observed connectivity state.
type ConnectivityRequest struct {
	Online *bool `json:"online" validate:"required" example:"true"`
}
