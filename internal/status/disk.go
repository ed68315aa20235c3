// Package status collects disk capacity figures for the status command.
package status

import (
	"github.com/shirou/gopsutil/v4/disk"
)

// Drive is one mounted volume's capacity snapshot.
type Drive struct {
	Path        string
	Label       string
	Fstype      string
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// CollectDrives returns usage for every mounted physical volume. Volumes
// that fail to stat are skipped; an empty result with nil error means
// nothing was mountable.
func CollectDrives() ([]Drive, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	labels := volumeLabels()

	var drives []Drive
	for _, p := range parts {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			continue
		}
		drives = append(drives, Drive{
			Path:        p.Mountpoint,
			Label:       labels[p.Device],
			Fstype:      p.Fstype,
			Total:       usage.Total,
			Free:        usage.Free,
			Used:        usage.Used,
			UsedPercent: usage.UsedPercent,
		})
	}
	return drives, nil
}
