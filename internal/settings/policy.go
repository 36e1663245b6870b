package settings

// MsgBusyRejected is shown when an exclusive-access setting is changed while
// another application holds the camera
const MsgBusyRejected = "Cannot change: camera is in use"

// IsExclusive reports whether key reconfigures the video stream itself.
// These settings can only change while no other application is streaming.
func IsExclusive(key Key) bool {
	switch key {
	case KeyResolution, KeyFormat, KeyFrameRate:
		return true
	default:
		return false
	}
}

// MayMutate reports whether key may be changed given the busy state
func MayMutate(key Key, deviceBusy bool) bool {
	return !(deviceBusy && IsExclusive(key))
}
