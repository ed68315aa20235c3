//go:build windows

package status

import "github.com/yusufpapurcu/wmi"

// win32LogicalDisk is the subset of the WMI Win32_LogicalDisk class needed
// for volume labels. Field names must match the WMI schema exactly.
type win32LogicalDisk struct {
	DeviceID   string
	VolumeName string
}

// volumeLabels maps device IDs (e.g. "C:") to their volume labels via WMI.
// Best effort: a failed query just means unlabeled drives.
func volumeLabels() map[string]string {
	var disks []win32LogicalDisk
	if err := wmi.Query("SELECT DeviceID, VolumeName FROM Win32_LogicalDisk", &disks); err != nil {
		return nil
	}

	labels := make(map[string]string, len(disks))
	for _, d := range disks {
		if d.VolumeName != "" {
			labels[d.DeviceID] = d.VolumeName
		}
	}
	return labels
}
