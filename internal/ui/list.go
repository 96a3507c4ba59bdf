package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mia-z/spotty-api/pkg/models"
)

var (
	_ list.Item = deviceItem{}
)

// deviceItem wraps [models.Device] to implement [list.Item].
type deviceItem struct {
	device models.Device
}

func (i deviceItem) FilterValue() string { return i.device.Name }
func (i deviceItem) Title() string {
	if i.device.IsActive {
		return "▶ " + i.device.Name
	}
	return i.device.Name
}
func (i deviceItem) Description() string {
	desc := i.device.Type
	if i.device.VolumePercent != nil {
		desc = fmt.Sprintf("%s • volume %d%%", desc, *i.device.VolumePercent)
	}
	if i.device.IsRestricted {
		desc += " • restricted"
	}
	return desc
}

// id returns the device id, which the API may omit for restricted devices.
func (i deviceItem) id() string {
	if i.device.ID == nil {
		return ""
	}
	return *i.device.ID
}
