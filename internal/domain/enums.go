package domain

// PermissionState is the device's notification permission as last reported
// by the client. It gates alert delivery; it is read, never asserted.
type PermissionState string

const (
	PermissionGranted      PermissionState = "GRANTED"
	PermissionDenied       PermissionState = "DENIED"
	PermissionUndetermined PermissionState = "UNDETERMINED"
)

func (p PermissionState) String() string { return string(p) }

func (p PermissionState) IsValid() bool {
	switch p {
	case PermissionGranted, PermissionDenied, PermissionUndetermined:
		return true
	}
	return false
}
