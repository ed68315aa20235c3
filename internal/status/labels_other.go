//go:build !windows

package status

// volumeLabels has no WMI to ask outside Windows.
func volumeLabels() map[string]string {
	return nil
}
